package common

import (
	"os"
	"path/filepath"
)

// DefaultHistoryFile is where practice sessions land when no file is
// given on the command line.
func DefaultHistoryFile() string {
	return filepath.Join(DataDir(), "history")
}

func DataDir() string {
	return filepath.Join(dataHome(), "ditdah")
}

// https://specifications.freedesktop.org/basedir/latest/#variables
func dataHome() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return dir
}
