package resumedit

import (
	"io"
	"testing"

	"github.com/benjaminschreck/go-resumedit/internal/testdocx"
	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

var (
	textPara         = testdocx.Para
	headingPara      = testdocx.Heading
	blankPara        = testdocx.Blank
	bulletPara       = testdocx.Bullet
	entryTable       = testdocx.EntryTable
	skillPara        = testdocx.Skill
	sampleResumeBody = testdocx.ResumeBody
	testContentTypes = testdocx.ContentTypes
)

// createResumeDOCX builds an in-memory DOCX whose body is the given XML.
func createResumeDOCX(t *testing.T, body string) []byte {
	t.Helper()
	content, err := testdocx.Build(body)
	if err != nil {
		t.Fatalf("failed to build DOCX: %v", err)
	}
	return content
}

// openResume opens a document built from body with logging silenced.
func openResume(t *testing.T, body string) *Document {
	t.Helper()
	doc, err := OpenBytes(createResumeDOCX(t, body))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	doc.SetLogger(NewLogger(io.Discard, LogOff))
	doc.SetConfig(DefaultConfig())
	return doc
}

// reopen serializes doc and parses it again.
func reopen(t *testing.T, doc *Document) *Document {
	t.Helper()
	content, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	again, err := OpenBytes(content)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	again.SetLogger(NewLogger(io.Discard, LogOff))
	return again
}

// layout describes the body as one token per element: "T" for a table,
// "_" for a blank paragraph, "B:text" for a bullet and the text otherwise.
func layout(d *Document) []string {
	var out []string
	for _, elem := range d.body() {
		switch el := elem.(type) {
		case *docxml.Table:
			out = append(out, "T")
		case *docxml.Paragraph:
			text := normalizeText(el.GetText())
			switch {
			case text == "":
				out = append(out, "_")
			case d.IsBullet(el):
				out = append(out, "B:"+text)
			default:
				out = append(out, text)
			}
		default:
			out = append(out, "raw")
		}
	}
	return out
}

// layoutFrom returns the layout starting at the first element equal to from.
func layoutFrom(t *testing.T, d *Document, from string) []string {
	t.Helper()
	all := layout(d)
	for i, tok := range all {
		if tok == from {
			return all[i:]
		}
	}
	t.Fatalf("layout has no %q: %v", from, all)
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intPtr(v int) *int {
	return &v
}
