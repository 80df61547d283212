package xml

import (
	"encoding/xml"
	"io"
)

// RawXMLElement is an element the model does not interpret. It is kept as a
// small node tree so it can be written back unchanged in its original
// position.
type RawXMLElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	// Children holds *RawXMLElement and xml.CharData values in document order.
	Children []interface{}
}

// isBodyElement implements the BodyElement interface
func (r *RawXMLElement) isBodyElement() {}

// isParagraphContent implements the ParagraphContent interface
func (r *RawXMLElement) isParagraphContent() {}

// isRunContent implements the RunContent interface
func (r *RawXMLElement) isRunContent() {}

// UnmarshalXML captures the element and everything below it.
func (r *RawXMLElement) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	r.XMLName = start.Name
	r.Attrs = copyAttrs(start.Attr)

	for {
		token, err := d.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			child := &RawXMLElement{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			r.Children = append(r.Children, child)
		case xml.CharData:
			r.Children = append(r.Children, t.Copy())
		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML writes the element with its original prefixes.
func (r *RawXMLElement) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: qualify(e, r.XMLName), Attr: qualifyAttrs(e, r.Attrs)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, child := range r.Children {
		switch c := child.(type) {
		case *RawXMLElement:
			if err := c.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		case xml.CharData:
			if err := e.EncodeToken(c); err != nil {
				return err
			}
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Clone returns a deep copy of the element.
func (r *RawXMLElement) Clone() *RawXMLElement {
	if r == nil {
		return nil
	}
	out := &RawXMLElement{
		XMLName:  r.XMLName,
		Attrs:    copyAttrs(r.Attrs),
		Children: make([]interface{}, 0, len(r.Children)),
	}
	for _, child := range r.Children {
		switch c := child.(type) {
		case *RawXMLElement:
			out.Children = append(out.Children, c.Clone())
		case xml.CharData:
			out.Children = append(out.Children, c.Copy())
		}
	}
	return out
}

// Find returns the first descendant (depth-first) whose local name matches.
func (r *RawXMLElement) Find(local string) *RawXMLElement {
	for _, child := range r.Children {
		c, ok := child.(*RawXMLElement)
		if !ok {
			continue
		}
		if c.XMLName.Local == local {
			return c
		}
		if found := c.Find(local); found != nil {
			return found
		}
	}
	return nil
}

// Attr returns the value of the attribute with the given local name.
func (r *RawXMLElement) Attr(local string) string {
	for _, a := range r.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// decodeRaw reads the element started by start as a raw element.
func decodeRaw(d *xml.Decoder, start xml.StartElement) (*RawXMLElement, error) {
	raw := &RawXMLElement{}
	if err := raw.UnmarshalXML(d, start); err != nil {
		return nil, err
	}
	return raw, nil
}

func copyAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)
	return out
}

// attrValue returns the value of the first attribute with the given local name.
func attrValue(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// withoutAttrs returns attrs minus any whose local name is listed.
func withoutAttrs(attrs []xml.Attr, locals ...string) []xml.Attr {
	var out []xml.Attr
	for _, a := range attrs {
		drop := false
		for _, l := range locals {
			if a.Name.Local == l {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, a)
		}
	}
	return out
}
