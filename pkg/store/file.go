package store

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matzehuels/svgbudget/pkg/errors"
)

// FileStore appends reports to a JSON lines file. Lines that fail to
// decode are skipped on read.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store writing to path, creating its directory.
func NewFileStore(path string) (*FileStore, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Path returns the history file.
func (s *FileStore) Path() string { return s.path }

// Save appends r as one line.
func (s *FileStore) Save(ctx context.Context, r Report) error {
	line, err := json.Marshal(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *FileStore) readAll() ([]Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Report
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var r Report
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out, sc.Err()
}

// Get returns the report with the given id.
func (s *FileStore) Get(ctx context.Context, id string) (*Report, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, notFound(id)
}

// List returns matching reports, newest first.
func (s *FileStore) List(ctx context.Context, q Query) ([]Report, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	slices.Reverse(all)
	out := make([]Report, 0, min(len(all), q.limit()))
	for _, r := range all {
		if len(out) == q.limit() {
			break
		}
		if q.match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
