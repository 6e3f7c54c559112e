package fsjson

import (
	"os"
	"path/filepath"
	"sync"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// Store reads and writes whole JSON documents under a data directory.
// Writes go to a temp file in the same directory and are renamed over the
// original, so readers never observe a partial document. A per-file mutex
// serializes the read-modify-write cycles of concurrent requests, closing
// the lost-update race the original flat-file design accepted.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, crerr.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrap(err, "create data directory")
	}

	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// lockFor returns the mutex guarding one document file.
func (s *Store) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}

// read decodes the named document into out. A missing file is not an
// error; the caller keeps out's zero value and gets ok=false.
func (s *Store) read(name string, out any) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, crerr.Wrapf(err, "read document %s", name)
	}

	if err := sonic.Unmarshal(raw, out); err != nil {
		return false, crerr.Wrapf(err, "decode document %s", name)
	}
	return true, nil
}

// write replaces the named document atomically.
func (s *Store) write(name string, doc any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(doc); err != nil {
		return crerr.Wrapf(err, "encode document %s", name)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", name)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.B); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return crerr.Wrapf(err, "write temp file for %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return crerr.Wrapf(err, "close temp file for %s", name)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return crerr.Wrapf(err, "replace document %s", name)
	}
	return nil
}
