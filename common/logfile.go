package common

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// rotatingFile is an append-only log file that compresses itself into a
// timestamped .gz backup once it would grow past maxSize.
type rotatingFile struct {
	mu         sync.Mutex
	path       string
	maxSize    int64
	maxBackups int
	file       *os.File
	size       int64
}

// isSymlink checks if a path is a symbolic link.
// Returns false if path doesn't exist (safe to create).
func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// openRotatingFile opens LogFileName inside dir, creating dir if needed.
// Symlinked directories and files are refused.
func openRotatingFile(dir string, maxSize int64, maxBackups int) (*rotatingFile, error) {
	if isSymlink(dir) {
		return nil, fmt.Errorf("security error: log directory is a symlink")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, LogFileName)
	if isSymlink(path) {
		return nil, fmt.Errorf("security error: log file is a symlink")
	}

	f := &rotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if info, err := os.Stat(path); err == nil && info.Size() >= maxSize {
		f.rotate()
	}
	if err := f.open(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *rotatingFile) open() error {
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	f.file = file
	f.size = info.Size()
	return nil
}

// Write appends p, rotating first when p would push the file past maxSize.
func (f *rotatingFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.size > 0 && f.size+int64(len(p)) > f.maxSize {
		f.rotate()
		if err := f.open(); err != nil {
			return 0, err
		}
	}
	if f.file == nil {
		return 0, os.ErrClosed
	}

	n, err := f.file.Write(p)
	f.size += int64(n)
	return n, err
}

// rotate moves the current file to a compressed backup and prunes old ones.
// The file is left closed.
func (f *rotatingFile) rotate() {
	if f.file != nil {
		f.file.Close()
		f.file = nil
	}

	backup := f.path + "." + time.Now().Format("20060102-150405.000") + ".gz"
	if err := gzipFile(f.path, backup); err != nil {
		os.Rename(f.path, strings.TrimSuffix(backup, ".gz"))
	} else {
		os.Remove(f.path)
	}
	f.size = 0

	f.prune()
}

// prune keeps the newest maxBackups backups. Backup names sort by time.
func (f *rotatingFile) prune() {
	matches, err := filepath.Glob(f.path + ".*")
	if err != nil || len(matches) <= f.maxBackups {
		return
	}
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-f.maxBackups] {
		os.Remove(old)
	}
}

// Close closes the underlying file.
func (f *rotatingFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}
