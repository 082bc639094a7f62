package main

import (
	"errors"
	"os"
	"path/filepath"
)

// tempFile is the part of *os.File the writer needs.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// Filesystem calls made by writeFileAtomic; tests swap them out.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic replaces path with data. The bytes go to a sibling temp
// file first; path only changes on the final rename.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	staged, err := stageFile(filepath.Dir(path), filepath.Base(path), data)
	if err != nil {
		return err
	}
	if err := chmodFile(staged, perm); err != nil {
		return discard(staged, err)
	}
	if err := renameFile(staged, path); err != nil {
		return discard(staged, err)
	}
	return nil
}

// stageFile writes data into a new temp file in dir and returns its path.
// On failure nothing is left behind.
func stageFile(dir, base string, data []byte) (string, error) {
	f, err := createTempFile(dir, base+".tmp-*")
	if err != nil {
		return "", err
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		return "", discard(name, errors.Join(err, f.Close()))
	}
	if err := f.Close(); err != nil {
		return "", discard(name, err)
	}
	return name, nil
}

// discard removes a staged file and returns cause.
func discard(name string, cause error) error {
	_ = removeFile(name)
	return cause
}
