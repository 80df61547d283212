package resumedit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// Document is an opened resume. It owns the parsed main document part and
// the package it came from; edits mutate the in-memory tree until Save or
// Write is called.
//
// A Document is not safe for concurrent use.
type Document struct {
	reader    *DocxReader
	xml       *docxml.Document
	rels      []Relationship
	relsDirty bool
	styles    map[string]string
	config    *Config
	logger    *Logger

	// Derived views of the body, rebuilt after every structural change.
	paragraphs []*docxml.Paragraph
	tables     []*docxml.Table
	position   map[docxml.BodyElement]int
}

// Open reads a DOCX file from disk
func Open(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	doc, err := OpenBytes(content)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return doc, nil
}

// OpenBytes parses a DOCX held in memory
func OpenBytes(content []byte) (*Document, error) {
	return Read(bytes.NewReader(content), int64(len(content)))
}

// Read parses a DOCX package from r
func Read(r io.ReaderAt, size int64) (*Document, error) {
	reader, err := NewDocxReader(r, size)
	if err != nil {
		return nil, err
	}

	content, err := reader.GetPart(documentPartName)
	if err != nil {
		return nil, err
	}
	parsed, err := docxml.ParseDocument(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	rels, err := reader.GetRelationships(documentPartName)
	if err != nil {
		return nil, err
	}

	styles, err := reader.readStyleNames()
	if err != nil {
		return nil, err
	}

	doc := &Document{
		reader: reader,
		xml:    parsed,
		rels:   rels,
		styles: styles,
		config: GetGlobalConfig(),
		logger: GetLogger(),
	}
	doc.reindex()

	doc.logger.WithFields(Fields{
		"paragraphs": len(doc.paragraphs),
		"tables":     len(doc.tables),
	}).Debug("opened document")

	return doc, nil
}

// SetConfig replaces the configuration used by subsequent edits
func (d *Document) SetConfig(config *Config) {
	if config == nil {
		config = DefaultConfig()
	}
	d.config = config
}

// SetLogger replaces the logger used by subsequent edits
func (d *Document) SetLogger(logger *Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// Write serializes the document package to w. Parts other than the main
// document and, when a hyperlink target changed, its relationships are
// copied unchanged.
func (d *Document) Write(w io.Writer) error {
	content, err := docxml.MarshalDocument(d.xml)
	if err != nil {
		return NewDocumentError("write", "", err)
	}

	replaced := map[string][]byte{documentPartName: content}
	if d.relsDirty {
		rels, err := marshalRelationships(d.rels)
		if err != nil {
			return NewDocumentError("write", "", err)
		}
		replaced[relationshipsPartFor(documentPartName)] = rels
	}

	if err := d.reader.writePackage(w, replaced); err != nil {
		return NewDocumentError("write", "", err)
	}
	return nil
}

// Bytes returns the serialized document package
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document to path. The package is built in memory first so
// a failed serialization never truncates an existing file.
func (d *Document) Save(path string) error {
	content, err := d.Bytes()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewDocumentError("save", path, err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return NewDocumentError("save", path, err)
	}
	return nil
}

// Paragraphs returns the top-level paragraphs of the body in document order
func (d *Document) Paragraphs() []*docxml.Paragraph {
	return d.paragraphs
}

// Tables returns the top-level tables of the body in document order
func (d *Document) Tables() []*docxml.Table {
	return d.tables
}

// body returns the ordered body elements.
func (d *Document) body() []docxml.BodyElement {
	return d.xml.Body.Elements
}

// reindex rebuilds the paragraph and table lists and the position index.
func (d *Document) reindex() {
	elems := d.body()
	// Fresh slices: callers may still hold the previous views.
	d.paragraphs = nil
	d.tables = nil
	d.position = make(map[docxml.BodyElement]int, len(elems))

	for i, elem := range elems {
		d.position[elem] = i
		switch el := elem.(type) {
		case *docxml.Paragraph:
			d.paragraphs = append(d.paragraphs, el)
		case *docxml.Table:
			d.tables = append(d.tables, el)
		}
	}
}

// positionOf returns the body index of elem.
func (d *Document) positionOf(elem docxml.BodyElement) (int, bool) {
	i, ok := d.position[elem]
	return i, ok
}

// previousElement returns the body element right before anchor, or the last
// body element when anchor is nil.
func (d *Document) previousElement(anchor docxml.BodyElement) docxml.BodyElement {
	elems := d.body()
	if anchor == nil {
		if len(elems) == 0 {
			return nil
		}
		return elems[len(elems)-1]
	}
	i, ok := d.positionOf(anchor)
	if !ok || i == 0 {
		return nil
	}
	return elems[i-1]
}

// Structural edits build a new element slice so views taken before the edit
// stay intact.

// insertBefore places elem right before anchor. A nil anchor appends at the
// end of the body, ahead of the final section properties.
func (d *Document) insertBefore(anchor, elem docxml.BodyElement) error {
	body := d.xml.Body
	if anchor == nil {
		body.Elements = append(body.Elements, elem)
		d.reindex()
		return nil
	}

	i, ok := d.positionOf(anchor)
	if !ok {
		return fmt.Errorf("anchor element is not part of the document body")
	}
	elems := make([]docxml.BodyElement, 0, len(body.Elements)+1)
	elems = append(elems, body.Elements[:i]...)
	elems = append(elems, elem)
	elems = append(elems, body.Elements[i:]...)
	body.Elements = elems
	d.reindex()
	return nil
}

// remove deletes elem from the body. It reports whether elem was present.
func (d *Document) remove(elem docxml.BodyElement) bool {
	i, ok := d.positionOf(elem)
	if !ok {
		return false
	}
	body := d.xml.Body
	elems := make([]docxml.BodyElement, 0, len(body.Elements)-1)
	elems = append(elems, body.Elements[:i]...)
	elems = append(elems, body.Elements[i+1:]...)
	body.Elements = elems
	d.reindex()
	return true
}

// relationship returns the document relationship with the given id.
func (d *Document) relationship(id string) *Relationship {
	for i := range d.rels {
		if d.rels[i].ID == id {
			return &d.rels[i]
		}
	}
	return nil
}

// styleName returns the display name of a paragraph style id, falling back
// to the id itself.
func (d *Document) styleName(styleID string) string {
	if name, ok := d.styles[styleID]; ok && name != "" {
		return name
	}
	return styleID
}

// maxBlankRemoval returns the configured bound for blank cleanup passes.
func (d *Document) maxBlankRemoval() int {
	if d.config == nil || d.config.MaxBlankRemoval <= 0 {
		return MaxBlankRemoval
	}
	return d.config.MaxBlankRemoval
}
