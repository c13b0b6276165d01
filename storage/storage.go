// Package storage persists uploaded images and hands back public URLs.
package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ObjectStore is the contract the handlers upload through.
type ObjectStore interface {
	Put(ext string, r io.Reader) (url string, err error)
	Delete(url string) error
}

// Disk stores objects under a local directory served at /uploads.
type Disk struct {
	Dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{Dir: dir}, nil
}

// Put writes the object under a fresh uuid name and returns its public
// URL path.
func (d *Disk) Put(ext string, r io.Reader) (string, error) {
	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return "/uploads/" + name, nil
}

// Delete removes a previously stored object. Unknown URLs are a no-op.
func (d *Disk) Delete(url string) error {
	name := filepath.Base(url)
	err := os.Remove(filepath.Join(d.Dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
