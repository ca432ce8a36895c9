package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var errExceedsMaxFileSize = errors.New("write length exceeds max file size")

// Rotate is an io.Writer backed by a file which is optionally rolled over once
// MaxSize megabytes have been written
type Rotate struct {
	FileName string
	Rotate   *bool
	MaxSize  int64

	size   int64
	output *os.File
	mu     sync.Mutex
}

// Write implementation to satisfy io.Writer interface
func (r *Rotate) Write(output []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	writeLen := int64(len(output))
	if writeLen > r.max() {
		return 0, fmt.Errorf("%w: %v > %v", errExceedsMaxFileSize, writeLen, r.max())
	}

	if r.output == nil {
		if err = r.openOrCreateFile(writeLen); err != nil {
			return 0, err
		}
	}

	if r.Rotate != nil && *r.Rotate && r.size+writeLen > r.max() {
		if err = r.rotateFile(); err != nil {
			return 0, err
		}
	}

	n, err = r.output.Write(output)
	r.size += int64(n)
	return n, err
}

func (r *Rotate) openOrCreateFile(n int64) error {
	logFile := filepath.Join(logPath, r.FileName)
	info, err := os.Stat(logFile)
	if err != nil {
		if os.IsNotExist(err) {
			return r.openNew()
		}
		return fmt.Errorf("error opening log file info: %w", err)
	}

	if r.Rotate != nil && *r.Rotate && info.Size()+n >= r.max() {
		return r.rotateFile()
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return r.openNew()
	}
	r.output = file
	r.size = info.Size()
	return nil
}

func (r *Rotate) openNew() error {
	name := filepath.Join(logPath, r.FileName)
	if _, err := os.Stat(name); err == nil {
		timestamp := time.Now().Format("2006-01-02T15-04-05.000")
		if err = os.Rename(name, name+"."+timestamp); err != nil {
			return fmt.Errorf("can't rename log file: %w", err)
		}
	}

	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("can't open new logfile: %w", err)
	}
	r.output = file
	r.size = 0
	return nil
}

// Close handler for open file
func (r *Rotate) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.close()
}

func (r *Rotate) close() error {
	if r.output == nil {
		return nil
	}
	err := r.output.Close()
	r.output = nil
	return err
}

func (r *Rotate) rotateFile() error {
	if err := r.close(); err != nil {
		return err
	}
	return r.openNew()
}

func (r *Rotate) max() int64 {
	if r.MaxSize <= 0 {
		return DefaultMaxFileSize * megabyte
	}
	return r.MaxSize * megabyte
}
