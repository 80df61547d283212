package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/benjaminschreck/go-resumedit/internal/testdocx"
	"github.com/benjaminschreck/go-resumedit/pkg/resumedit"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "sessions"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestCreate(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create("Resume.DOCX", bytes.NewReader(testdocx.Resume()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	original, err := s.OriginalPath(id)
	if err != nil {
		t.Fatalf("OriginalPath failed: %v", err)
	}
	current, err := s.CurrentPath(id)
	if err != nil {
		t.Fatalf("CurrentPath failed: %v", err)
	}
	if filepath.Dir(original) != filepath.Dir(current) || filepath.Dir(current) != filepath.Join(s.Root, id) {
		t.Errorf("unexpected session layout: %s, %s", original, current)
	}

	a, _ := os.ReadFile(original)
	b, _ := os.ReadFile(current)
	if !bytes.Equal(a, b) {
		t.Error("current copy differs from the upload")
	}
}

func TestCreateRejectsNonDocx(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"wrong extension", "resume.pdf", testdocx.Resume()},
		{"not a package", "resume.docx", []byte("hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.filename, bytes.NewReader(tt.content))
			if !errors.Is(err, ErrNotDocx) {
				t.Errorf("error = %v, want ErrNotDocx", err)
			}
		})
	}

	entries, err := os.ReadDir(s.Root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected uploads left %d session dirs behind", len(entries))
	}
}

func TestUnknownSession(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"9b2f4a56-2a4f-4b8e-9a53-5c0f2f0d7c11", "../../etc", ""} {
		if _, err := s.CurrentPath(id); !resumedit.IsNotFound(err) {
			t.Errorf("CurrentPath(%q) error = %v, want not found", id, err)
		}
		if err := s.Edit(id, func(*resumedit.Document) error { return nil }); !resumedit.IsNotFound(err) {
			t.Errorf("Edit(%q) error = %v, want not found", id, err)
		}
	}
}

func TestEdit(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Create("resume.docx", bytes.NewReader(testdocx.Resume()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = s.Edit(id, func(doc *resumedit.Document) error {
		return doc.UpdateSummary("Edited through the store")
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	doc, err := s.Open(id)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got, _ := doc.GetSummary(); got != "Edited through the store" {
		t.Errorf("GetSummary() = %q", got)
	}

	// The original is untouched
	original, _ := s.OriginalPath(id)
	orig, err := resumedit.Open(original)
	if err != nil {
		t.Fatalf("Open original failed: %v", err)
	}
	if got, _ := orig.GetSummary(); !strings.HasPrefix(got, "Backend engineer") {
		t.Errorf("original summary = %q", got)
	}

	// No temp files are left behind
	entries, _ := os.ReadDir(filepath.Join(s.Root, id))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "tmp-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestEditFailureKeepsCurrent(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Create("resume.docx", bytes.NewReader(testdocx.Resume()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	current, _ := s.CurrentPath(id)
	before, _ := os.ReadFile(current)

	err = s.Edit(id, func(doc *resumedit.Document) error {
		return doc.ReplaceBullets(1, nil, resumedit.DefaultBulletOptions())
	})
	if !resumedit.IsEmptyInput(err) {
		t.Fatalf("Edit error = %v, want empty input", err)
	}

	after, _ := os.ReadFile(current)
	if !bytes.Equal(before, after) {
		t.Error("failed edit rewrote the working copy")
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Create("resume.docx", bytes.NewReader(testdocx.Resume()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Edit(id, func(doc *resumedit.Document) error { return doc.UpdateSummary("changed") }); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if err := s.Reset(id); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	doc, err := s.Open(id)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got, _ := doc.GetSummary(); !strings.HasPrefix(got, "Backend engineer") {
		t.Errorf("summary after reset = %q", got)
	}
}

func TestConcurrentEditsAreSerialized(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Create("resume.docx", bytes.NewReader(testdocx.Resume()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	lines := [][]string{{"One"}, {"Two", "Three"}, {"Four"}, {"Five", "Six", "Seven"}}
	var wg sync.WaitGroup
	errs := make(chan error, len(lines))
	for _, l := range lines {
		wg.Add(1)
		go func(l []string) {
			defer wg.Done()
			errs <- s.Edit(id, func(doc *resumedit.Document) error {
				return doc.ReplaceBullets(2, l, resumedit.DefaultBulletOptions())
			})
		}(l)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("Edit failed: %v", err)
		}
	}

	doc, err := s.Open(id)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	got, err := doc.BulletTexts(2)
	if err != nil {
		t.Fatalf("BulletTexts failed: %v", err)
	}
	found := false
	for _, l := range lines {
		if len(got) == len(l) && strings.Join(got, "|") == strings.Join(l, "|") {
			found = true
		}
	}
	if !found {
		t.Errorf("bullets %q are not the result of any single edit", got)
	}
}

func TestSaveDocument(t *testing.T) {
	doc, err := resumedit.OpenBytes(testdocx.Resume())
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "resume.docx")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := SaveDocument(doc, path); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	if _, err := resumedit.Open(path); err != nil {
		t.Errorf("saved file does not open: %v", err)
	}
}
