package statestore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/learnx/learnx/core"
)

// fileStore persists the client's small local state (saved credential, per
// user chat ids) as one JSON document, the counterpart of the browser's
// localStorage. Writes go through a temp file and rename so a crash cannot
// leave a half-written document behind.
type fileStore struct {
	path string

	mu   sync.Mutex
	data map[string]map[string]string // namespace -> key -> value
}

var _ core.KVStore = (*fileStore)(nil)

func NewFileStore(path string) (*fileStore, error) {
	s := &fileStore{path: path, data: make(map[string]map[string]string)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	raw, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading state file")
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// a corrupt state file is as good as no state file
		s.data = make(map[string]map[string]string)
	}
	return nil
}

func (s *fileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	tmp, err := ioutil.TempFile(dir, ".state-*")
	if err != nil {
		return errors.Wrap(err, "creating temp state file")
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "writing state")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temp state file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing state file")
}

func (s *fileStore) Get(namespace, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		return "", false, nil
	}
	val, ok := ns[key]
	return val, ok, nil
}

func (s *fileStore) Set(namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]string)
		s.data[namespace] = ns
	}
	ns[key] = value
	return s.flush()
}

func (s *fileStore) Delete(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		return nil
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(s.data, namespace)
	}
	return s.flush()
}
