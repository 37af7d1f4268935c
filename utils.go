package urbangraph

import (
	"bytes"
	"image"
	"image/png"
	"os"
)

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, buff.Bytes(), 0644)
}

// writeFile writes data produced by fn to fpath
func writeFile(fpath string, fn func() ([]byte, error)) error {
	data, err := fn()
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0644)
}
