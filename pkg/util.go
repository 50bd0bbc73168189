package lib

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// IsPNG reports whether path has a .png extension, ignoring case.
func IsPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}
