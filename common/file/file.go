package file

import (
	"errors"
	"os"
	"path/filepath"
)

var errEmptyPath = errors.New("file path cannot be empty")

// Write writes selected data to a file or returns an error if it fails. This
// func also ensures that all files are set to this permission (only rw access
// for the running user)
func Write(file string, data []byte) error {
	if file == "" {
		return errEmptyPath
	}
	basePath := filepath.Dir(file)
	if !Exists(basePath) {
		if err := os.MkdirAll(basePath, 0o770); err != nil {
			return err
		}
	}
	return os.WriteFile(file, data, 0o600)
}

// Writer creates a writer to a file or returns an error if it fails. This
// func also ensures that all files are set to this permission (only rw access
// for the running user)
func Writer(file string) (*os.File, error) {
	if file == "" {
		return nil, errEmptyPath
	}
	basePath := filepath.Dir(file)
	if !Exists(basePath) {
		if err := os.MkdirAll(basePath, 0o770); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
}

// Exists returns whether or not a file or path exists
func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}
