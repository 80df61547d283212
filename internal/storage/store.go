// Package storage keeps uploaded resumes on disk, one directory per editing
// session.
//
// A session directory holds the upload as original.docx and the working copy
// as current.docx. Edits are applied to current.docx by writing a temporary
// file next to it and renaming it into place.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/benjaminschreck/go-resumedit/pkg/resumedit"
)

const (
	originalName = "original.docx"
	currentName  = "current.docx"
)

// ErrNotDocx is returned for uploads that are not Word documents.
var ErrNotDocx = errors.New("only .docx supported")

// Store manages session directories under Root.
type Store struct {
	Root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	return &Store{Root: root, locks: make(map[string]*sync.Mutex)}, nil
}

// Create stores an upload as a new session and returns its id. The content
// must be a readable DOCX package.
func (s *Store) Create(filename string, r io.Reader) (string, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".docx") {
		return "", ErrNotDocx
	}

	id := uuid.NewString()
	dir := s.sessionDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create session dir: %w", err)
	}

	original := filepath.Join(dir, originalName)
	if err := writeFile(original, r); err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	if _, err := resumedit.Open(original); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	if err := copyFile(original, filepath.Join(dir, currentName)); err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	resumedit.WithFields(resumedit.Fields{"session": id, "file": filename}).Info("stored upload")
	return id, nil
}

// CurrentPath returns the working copy of a session.
func (s *Store) CurrentPath(id string) (string, error) {
	return s.existing(id, currentName)
}

// OriginalPath returns the untouched upload of a session.
func (s *Store) OriginalPath(id string) (string, error) {
	return s.existing(id, originalName)
}

// Open loads the working copy of a session.
func (s *Store) Open(id string) (*resumedit.Document, error) {
	path, err := s.CurrentPath(id)
	if err != nil {
		return nil, err
	}
	return resumedit.Open(path)
}

// Edit loads the working copy, applies fn and saves the result over the
// working copy. When fn fails nothing is written. Edits of one session are
// serialized within the process.
func (s *Store) Edit(id string, fn func(*resumedit.Document) error) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	path, err := s.CurrentPath(id)
	if err != nil {
		return err
	}
	doc, err := resumedit.Open(path)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}
	return SaveDocument(doc, path)
}

// SaveDocument writes doc over path without ever leaving a partial file
// behind.
func SaveDocument(doc *resumedit.Document, path string) error {
	content, err := doc.Bytes()
	if err != nil {
		return err
	}
	return replaceFile(path, content)
}

// Reset discards all edits of a session by copying the original back over
// the working copy.
func (s *Store) Reset(id string) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	original, err := s.OriginalPath(id)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(original)
	if err != nil {
		return fmt.Errorf("failed to read original: %w", err)
	}
	return replaceFile(filepath.Join(s.sessionDir(id), currentName), content)
}

func (s *Store) sessionDir(id string) string {
	return filepath.Join(s.Root, id)
}

// existing resolves a file of a session, rejecting ids that are not UUIDs so
// that a caller cannot escape Root.
func (s *Store) existing(id, name string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", &resumedit.NotFoundError{What: "resume", Message: "Resume not found"}
	}
	path := filepath.Join(s.sessionDir(id), name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &resumedit.NotFoundError{What: "resume", Message: "Resume not found"}
		}
		return "", err
	}
	return path, nil
}

func (s *Store) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	return writeFile(dst, in)
}

// replaceFile writes content to a temporary file in the target directory and
// renames it over path.
func replaceFile(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
