package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Document represents a Word document structure
type Document struct {
	XMLName xml.Name
	// Attrs preserves the root element attributes (namespaces, mc:Ignorable)
	Attrs []xml.Attr
	// Extra keeps root children other than the body, e.g. w:background
	Extra []*RawXMLElement
	Body  *Body
}

// UnmarshalXML implements custom XML unmarshaling to preserve root attributes
func (doc *Document) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	doc.XMLName = start.Name
	doc.Attrs = copyAttrs(start.Attr)

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if isW(t.Name, "body") {
				var body Body
				if err := d.DecodeElement(&body, &t); err != nil {
					return err
				}
				doc.Body = &body
				continue
			}
			raw, err := decodeRaw(d, t)
			if err != nil {
				return err
			}
			doc.Extra = append(doc.Extra, raw)
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for Document
func (doc *Document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	defer bindPrefixes(e, declaredPrefixes(doc.Attrs))()

	attrs := qualifyAttrs(e, doc.Attrs)
	attrs = ensureDeclared(attrs, "w", NamespaceW)
	attrs = ensureDeclared(attrs, "r", NamespaceR)

	start := xml.StartElement{Name: wName("document"), Attr: attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, raw := range doc.Extra {
		if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	if doc.Body != nil {
		if err := doc.Body.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// ensureDeclared adds an xmlns declaration for prefix unless one exists.
func ensureDeclared(attrs []xml.Attr, prefix, uri string) []xml.Attr {
	for _, a := range attrs {
		if a.Name.Local == "xmlns:"+prefix {
			return attrs
		}
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: uri})
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement
	// SectionProperties at the end of the body (critical for Word compatibility)
	SectionProperties *RawXMLElement
}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if isW(t.Name, "sectPr") {
				raw, err := decodeRaw(d, t)
				if err != nil {
					return err
				}
				b.SectionProperties = raw
				continue
			}
			elem, err := decodeBodyElement(d, t)
			if err != nil {
				return err
			}
			b.Elements = append(b.Elements, elem)
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling to preserve element order
func (b *Body) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("body")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		if err := elem.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	if b.SectionProperties != nil {
		if err := b.SectionProperties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// ParseDocument parses a Word document XML
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Body == nil {
		doc.Body = &Body{}
	}

	return &doc, nil
}

// MarshalDocument serializes the document, including the XML declaration
// Word expects.
func MarshalDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")

	enc := xml.NewEncoder(&buf)
	if err := doc.MarshalXML(enc, xml.StartElement{}); err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush document: %w", err)
	}

	return buf.Bytes(), nil
}
