package xml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Table represents a table in the document. Table, grid, row and cell
// properties are preserved verbatim; only the row/cell/paragraph structure
// is modelled.
type Table struct {
	Properties *RawXMLElement
	Grid       *RawXMLElement
	// Content holds *TableRow and preserved elements in order
	Content []interface{}
}

// isBodyElement implements the BodyElement interface
func (t *Table) isBodyElement() {}

// UnmarshalXML implements custom XML unmarshaling to preserve row order
func (t *Table) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch {
			case isW(tok.Name, "tr"):
				var row TableRow
				if err := d.DecodeElement(&row, &tok); err != nil {
					return err
				}
				t.Content = append(t.Content, &row)
			case isW(tok.Name, "tblPr"):
				raw, err := decodeRaw(d, tok)
				if err != nil {
					return err
				}
				t.Properties = raw
			case isW(tok.Name, "tblGrid"):
				raw, err := decodeRaw(d, tok)
				if err != nil {
					return err
				}
				t.Grid = raw
			default:
				raw, err := decodeRaw(d, tok)
				if err != nil {
					return err
				}
				t.Content = append(t.Content, raw)
			}
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for Table to ensure proper namespacing
func (t *Table) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("tbl")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if t.Properties != nil {
		if err := t.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	if t.Grid != nil {
		if err := t.Grid.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	for _, content := range t.Content {
		if err := content.(xml.Marshaler).MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Rows returns the rows of the table in order.
func (t *Table) Rows() []*TableRow {
	var rows []*TableRow
	for _, content := range t.Content {
		if r, ok := content.(*TableRow); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// TableRow represents a table row
type TableRow struct {
	// Content holds *TableCell and preserved elements (trPr, tblPrEx...) in order
	Content []interface{}
}

// UnmarshalXML implements custom XML unmarshaling for TableRow
func (r *TableRow) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			if isW(t.Name, "tc") {
				var cell TableCell
				if err := d.DecodeElement(&cell, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, &cell)
				continue
			}
			raw, err := decodeRaw(d, t)
			if err != nil {
				return err
			}
			r.Content = append(r.Content, raw)
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for TableRow
func (r *TableRow) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("tr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, content := range r.Content {
		if err := content.(xml.Marshaler).MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Cells returns the cells of the row in order.
func (r *TableRow) Cells() []*TableCell {
	var cells []*TableCell
	for _, content := range r.Content {
		if c, ok := content.(*TableCell); ok {
			cells = append(cells, c)
		}
	}
	return cells
}

// TableCell represents a table cell
type TableCell struct {
	Properties *RawXMLElement
	// Content holds paragraphs, nested tables and preserved elements
	Content []BodyElement
}

// UnmarshalXML implements custom XML unmarshaling for TableCell
func (c *TableCell) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			if isW(t.Name, "tcPr") {
				raw, err := decodeRaw(d, t)
				if err != nil {
					return err
				}
				c.Properties = raw
				continue
			}
			elem, err := decodeBodyElement(d, t)
			if err != nil {
				return err
			}
			c.Content = append(c.Content, elem)
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for TableCell
func (c *TableCell) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("tc")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Properties != nil {
		if err := c.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	for _, elem := range c.Content {
		if err := elem.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Paragraphs returns the paragraphs directly inside the cell.
func (c *TableCell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, elem := range c.Content {
		if p, ok := elem.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// AddParagraph appends an empty paragraph to the cell.
func (c *TableCell) AddParagraph() *Paragraph {
	p := &Paragraph{}
	c.Content = append(c.Content, p)
	return p
}

// GetText returns the text of the cell's paragraphs joined by newlines.
func (c *TableCell) GetText() string {
	var lines []string
	for _, p := range c.Paragraphs() {
		lines = append(lines, p.GetText())
	}
	return strings.Join(lines, "\n")
}

// decodeBodyElement decodes a block-level element: a paragraph, a table,
// or anything else as raw XML.
func decodeBodyElement(d *xml.Decoder, start xml.StartElement) (BodyElement, error) {
	switch {
	case isW(start.Name, "p"):
		var para Paragraph
		if err := d.DecodeElement(&para, &start); err != nil {
			return nil, err
		}
		return &para, nil
	case isW(start.Name, "tbl"):
		var table Table
		if err := d.DecodeElement(&table, &start); err != nil {
			return nil, err
		}
		return &table, nil
	default:
		raw, err := decodeRaw(d, start)
		if err != nil {
			return nil, err
		}
		return raw, nil
	}
}
