package commonpaths

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

var (
	home string
)

func init() {
	var err error
	home, err = homedir.Dir()
	if err != nil {
		panic(err)
	}
}

// DefaultDir is where jdwpspy keeps its state, ~/.jdwpspy
func DefaultDir() string {
	return filepath.Join(home, ".jdwpspy")
}

func DefaultCaptureDir() string {
	return filepath.Join(DefaultDir(), "captures")
}

// Expand resolves a leading ~ in p to the home directory.
func Expand(p string) (string, error) {
	return homedir.Expand(p)
}
