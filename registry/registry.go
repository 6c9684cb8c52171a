/*
Package registry keeps the history of training runs in a sqlite database
*/
package registry

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/mathscore/model"
	"go-ml.dev/pkg/zorros"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	run_id    TEXT    NOT NULL,
	at        INTEGER NOT NULL,
	position  INTEGER NOT NULL,
	candidate TEXT    NOT NULL,
	train_r2  REAL    NOT NULL,
	test_r2   REAL    NOT NULL,
	selected  INTEGER NOT NULL,
	accepted  INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
)`

/*
Entry is an evaluated candidate of a run
*/
type Entry struct {
	RunID     string
	At        time.Time
	Candidate string
	Train     float64
	Test      float64
	Selected  bool
	Accepted  bool
}

type Registry struct {
	db *sql.DB
}

/*
Open opens or creates the registry database
*/
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, zorros.Trace(err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, zorros.Wrapf(err, "failed to initialize registry `%v`: %v", path, err.Error())
	}
	return &Registry{db}, nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}

/*
Record appends every candidate of the report as one row
*/
func (r *Registry) Record(report *model.Report) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return zorros.Trace(err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	at := time.Now().Unix()
	for i, s := range report.Scores {
		_, err = tx.Exec(
			`INSERT INTO evaluations VALUES (?,?,?,?,?,?,?,?)`,
			report.RunID, at, i, s.Name, s.Train, s.Test,
			i == report.TheBest, i == report.TheBest && report.Accepted)
		if err != nil {
			return zorros.Trace(err)
		}
	}
	if err = tx.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return
}

/*
History returns entries of the run in roster order, all runs if runID is empty
*/
func (r *Registry) History(runID string) ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT run_id, at, candidate, train_r2, test_r2, selected, accepted
		 FROM evaluations WHERE ? = '' OR run_id = ? ORDER BY at, run_id, position`,
		runID, runID)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err = rows.Scan(&e.RunID, &at, &e.Candidate, &e.Train, &e.Test, &e.Selected, &e.Accepted); err != nil {
			return nil, zorros.Trace(err)
		}
		e.At = time.Unix(at, 0)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return entries, nil
}
