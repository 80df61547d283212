package resumedit

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	documentPartName = "word/document.xml"
	stylesPartName   = "word/styles.xml"
	relationshipsNS  = "http://schemas.openxmlformats.org/package/2006/relationships"
	targetModeExtern = "External"
)

// DocxReader handles reading the parts of a DOCX package
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	if _, ok := dr.Parts[documentPartName]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", documentPartName)
	}

	return dr, nil
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}

	return content, nil
}

// HasPart reports whether the package contains partName.
func (dr *DocxReader) HasPart(partName string) bool {
	_, ok := dr.Parts[partName]
	return ok
}

// GetRelationships retrieves relationships for a given part
func (dr *DocxReader) GetRelationships(partName string) ([]Relationship, error) {
	relPath := relationshipsPartFor(partName)
	if !dr.HasPart(relPath) {
		// A part without relationships is valid
		return []Relationship{}, nil
	}

	content, err := dr.GetPart(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}

	return rels.Relationship, nil
}

// relationshipsPartFor maps "word/document.xml" to "word/_rels/document.xml.rels".
func relationshipsPartFor(partName string) string {
	dir := ""
	base := partName
	if idx := strings.LastIndex(partName, "/"); idx != -1 {
		dir = partName[:idx]
		base = partName[idx+1:]
	}
	if dir == "" {
		return fmt.Sprintf("_rels/%s.rels", base)
	}
	return fmt.Sprintf("%s/_rels/%s.rels", dir, base)
}

// marshalRelationships serializes a relationships part.
func marshalRelationships(rels []Relationship) ([]byte, error) {
	out := Relationships{Namespace: relationshipsNS, Relationship: rels}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to marshal relationships: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// styleSheet is the subset of word/styles.xml the classifier needs.
type styleSheet struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		StyleID string `xml:"styleId,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// readStyleNames maps paragraph style ids to their display names. A missing
// styles part yields an empty map.
func (dr *DocxReader) readStyleNames() (map[string]string, error) {
	names := make(map[string]string)
	if !dr.HasPart(stylesPartName) {
		return names, nil
	}

	content, err := dr.GetPart(stylesPartName)
	if err != nil {
		return nil, err
	}

	var sheet styleSheet
	if err := xml.Unmarshal(content, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}
	for _, s := range sheet.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		names[s.StyleID] = s.Name.Val
	}
	return names, nil
}

// writePackage writes the package to w, keeping the original part order.
// Parts named in replaced are written with the new content; the rest are
// copied without recompression.
func (dr *DocxReader) writePackage(w io.Writer, replaced map[string][]byte) error {
	zw := zip.NewWriter(w)

	for _, file := range dr.reader.File {
		content, ok := replaced[file.Name]
		if !ok {
			if err := zw.Copy(file); err != nil {
				return fmt.Errorf("failed to copy part %s: %w", file.Name, err)
			}
			continue
		}

		header := &zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", file.Name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to write part %s: %w", file.Name, err)
		}
	}

	return zw.Close()
}
