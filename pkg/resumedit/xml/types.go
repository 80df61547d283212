package xml

import (
	"encoding/xml"
	"strings"
)

// BodyElement represents any element that can appear in a document body
// (or inside a table cell)
type BodyElement interface {
	xml.Marshaler
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
type ParagraphContent interface {
	xml.Marshaler
	isParagraphContent()
}

// RunContent represents any content that can appear in a run
type RunContent interface {
	xml.Marshaler
	isRunContent()
}

// OnOff is a toggle property such as <w:b/> or <w:keepNext w:val="0"/>.
type OnOff struct {
	Val string
}

// On returns an OnOff that is switched on.
func On() *OnOff {
	return &OnOff{}
}

// Off returns an OnOff that explicitly switches the property off.
func Off() *OnOff {
	return &OnOff{Val: "0"}
}

// Enabled reports whether the toggle is on. A missing w:val means on.
func (o *OnOff) Enabled() bool {
	if o == nil {
		return false
	}
	switch strings.ToLower(o.Val) {
	case "", "1", "true", "on":
		return true
	}
	return false
}

// UnmarshalXML implements custom XML unmarshaling for OnOff
func (o *OnOff) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	o.Val, _ = attrValue(start.Attr, "val")
	return d.Skip()
}

// marshalOnOff writes a toggle property under the given local name.
func marshalOnOff(e *xml.Encoder, local string, o *OnOff) error {
	start := xml.StartElement{Name: wName(local)}
	if o.Val != "" {
		start.Attr = []xml.Attr{wAttr("val", o.Val)}
	}
	return e.EncodeElement(struct{}{}, start)
}

// Style represents a style reference (pStyle, rStyle)
type Style struct {
	Val string
}

// UnmarshalXML implements custom XML unmarshaling for Style
func (s *Style) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	s.Val, _ = attrValue(start.Attr, "val")
	return d.Skip()
}

// marshalVal writes an element carrying a single w:val attribute.
func marshalVal(e *xml.Encoder, local, val string) error {
	start := xml.StartElement{
		Name: wName(local),
		Attr: []xml.Attr{wAttr("val", val)},
	}
	return e.EncodeElement(struct{}{}, start)
}

// marshalAttrs writes an empty element carrying the given attributes.
func marshalAttrs(e *xml.Encoder, local string, attrs []xml.Attr) error {
	start := xml.StartElement{Name: wName(local), Attr: attrs}
	return e.EncodeElement(struct{}{}, start)
}

func cloneOnOff(o *OnOff) *OnOff {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func cloneStyle(s *Style) *Style {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
