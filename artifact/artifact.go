/*
Package artifact stores fitted objects as xz compressed gob streams
*/
package artifact

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
)

/*
Save encodes v into the output, the previous content is replaced only
when the whole stream is written
*/
func Save(out iokit.Output, v interface{}) (err error) {
	wh, err := out.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	xw, err := xz.NewWriter(wh)
	if err != nil {
		return zorros.Trace(err)
	}
	if err = gob.NewEncoder(xw).Encode(v); err != nil {
		return zorros.Wrapf(err, "failed to encode %T: %v", v, err.Error())
	}
	if err = xw.Close(); err != nil {
		return zorros.Trace(err)
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return
}

/*
SaveFile saves v to the local file creating parent directories
*/
func SaveFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zorros.Trace(err)
	}
	return Save(iokit.File(path), v)
}

/*
Load decodes the file content into v. The missing file error satisfies os.IsNotExist
*/
func Load(path string, v interface{}) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	rd, err := iokit.File(path).Open()
	if err != nil {
		return zorros.Trace(err)
	}
	defer rd.Close()
	xr, err := xz.NewReader(rd)
	if err != nil {
		return zorros.Wrapf(err, "`%v` is not an artifact: %v", path, err.Error())
	}
	if err = gob.NewDecoder(xr).Decode(v); err != nil {
		return zorros.Wrapf(err, "failed to decode `%v`: %v", path, err.Error())
	}
	return nil
}

// Exists reports whether the artifact file is present
func Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
