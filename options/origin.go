package options

import (
	"os"
	"path/filepath"
	"sync"
)

// The load origin is the location playman itself was loaded from. In a browser
// runtime this would be the loader script's origin; here it is the directory
// of the running executable unless the embedding application overrides it
// (e.g. with the http:// origin of a hosted asset bundle).
var (
	originMu   sync.Mutex
	loadOrigin string
)

// LoadOrigin returns the discovered or overridden load origin.
func LoadOrigin() string {
	originMu.Lock()
	defer originMu.Unlock()

	if loadOrigin == "" {
		loadOrigin = ExecDir()
	}
	return loadOrigin
}

// SetLoadOrigin overrides the discovered load origin.
func SetLoadOrigin(origin string) {
	originMu.Lock()
	defer originMu.Unlock()

	loadOrigin = origin
}

// ExecDir resolves the directory containing the running executable, degrading
// to the working directory when the executable path cannot be determined.
func ExecDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return "."
		}
		return wd
	}
	return filepath.Dir(exe)
}
