package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Vars for common.go operations
var (
	// ErrNilPointer defines an error for a nil pointer
	ErrNilPointer = errors.New("nil pointer")

	errCannotCreateEmptyDirectory = errors.New("cannot create an empty directory")
)

// NewHTTPClientWithTimeout initialises a new HTTP client and its underlying
// transport IdleConnTimeout with the specified timeout duration
func NewHTTPClientWithTimeout(t time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		IdleConnTimeout: t,
	}
	return &http.Client{
		Transport: tr,
		Timeout:   t,
	}
}

// EncodeURLValues concatenates url values onto a url string and returns a
// string
func EncodeURLValues(urlPath string, values url.Values) string {
	u := urlPath
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}

// GetDefaultDataDir returns the default data directory for the client
func GetDefaultDataDir(env string) string {
	if env == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "CoinbaseV1")
	}

	usr, err := user.Current()
	if err == nil {
		return filepath.Join(usr.HomeDir, ".cbv1")
	}

	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, ".cbv1")
}

// DefaultDataDir returns the default data directory for the running platform
func DefaultDataDir() string {
	return GetDefaultDataDir(runtime.GOOS)
}

// CreateDir creates a directory based on the supplied parameter
func CreateDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errCannotCreateEmptyDirectory
	}
	_, err := os.Stat(dir)
	if !os.IsNotExist(err) {
		return err
	}
	if err = os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return nil
}

// StringSliceContains returns whether a string is present in the slice
func StringSliceContains(haystack []string, needle string) bool {
	for x := range haystack {
		if haystack[x] == needle {
			return true
		}
	}
	return false
}
