/*
Package logs opens the per invocation log file and builds zerolog loggers over it
*/
package logs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"go-ml.dev/pkg/zorros"
)

const TimeLayout = "02_01_2006_15_04_05"

/*
Sink is an open log file and the logger writing to it
*/
type Sink struct {
	Path   string
	Logger zerolog.Logger
	file   *os.File
}

/*
Open creates dir/DD_MM_YYYY_HH_MM_SS.log, records are also written to the
console when it's not nil
*/
func Open(dir string, level zerolog.Level, console io.Writer) (*Sink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, zorros.Trace(err)
	}
	path := filepath.Join(dir, time.Now().Format(TimeLayout)+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open log file: %v", err.Error())
	}
	var w io.Writer = f
	if console != nil {
		w = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen})
	}
	l := zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()
	return &Sink{Path: path, Logger: l, file: f}, nil
}

/*
Named returns logger tagging records with the component name
*/
func (s *Sink) Named(component string) zerolog.Logger {
	return s.Logger.With().Str("component", component).Logger()
}

func (s *Sink) Close() error {
	return s.file.Close()
}

/*
ParseLevel converts level name to the zerolog level, info for the empty name
*/
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, zorros.Wrapf(err, "bad log level `%v`: %v", name, err.Error())
	}
	return l, nil
}
