package xml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Paragraph represents a paragraph in the document
type Paragraph struct {
	// Attrs keeps paragraph attributes such as w14:paraId and rsids
	Attrs      []xml.Attr
	Properties *ParagraphProperties
	// Content maintains the order of runs, hyperlinks and preserved elements
	Content []ParagraphContent
}

// isBodyElement implements the BodyElement interface
func (p *Paragraph) isBodyElement() {}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Attrs = copyAttrs(start.Attr)
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
			switch {
			case isW(t.Name, "pPr"):
				var props ParagraphProperties
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				p.Properties = &props
			case isW(t.Name, "r"):
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &run)
			case isW(t.Name, "hyperlink"):
				var hyperlink Hyperlink
				if err := d.DecodeElement(&hyperlink, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &hyperlink)
			default:
				// bookmarks, proofing marks, fields, content controls...
				raw, err := decodeRaw(d, t)
				if err != nil {
					return err
				}
				p.Content = append(p.Content, raw)
			}
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p *Paragraph) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("p"), Attr: qualifyAttrs(e, p.Attrs)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil {
		if err := p.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	for _, content := range p.Content {
		if err := content.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of the direct runs and hyperlinks
// of a paragraph
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			sb.WriteString(c.GetText())
		case *Hyperlink:
			sb.WriteString(c.GetText())
		}
	}
	return sb.String()
}

// Runs returns the runs that are direct children of the paragraph. Runs
// inside hyperlinks are not included.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, content := range p.Content {
		if r, ok := content.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// Hyperlinks returns the hyperlinks of the paragraph in order.
func (p *Paragraph) Hyperlinks() []*Hyperlink {
	var links []*Hyperlink
	for _, content := range p.Content {
		if h, ok := content.(*Hyperlink); ok {
			links = append(links, h)
		}
	}
	return links
}

// AddRun appends a run to the paragraph.
func (p *Paragraph) AddRun(r *Run) *Run {
	p.Content = append(p.Content, r)
	return r
}

// StyleID returns the paragraph style id, or "" when none is set.
func (p *Paragraph) StyleID() string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

// HasNumbering reports whether the paragraph carries w:numPr.
func (p *Paragraph) HasNumbering() bool {
	return p.Properties != nil && p.Properties.Numbering != nil
}

// EnsureProperties returns the paragraph properties, creating them if needed.
func (p *Paragraph) EnsureProperties() *ParagraphProperties {
	if p.Properties == nil {
		p.Properties = &ParagraphProperties{}
	}
	return p.Properties
}

// SetAlignment sets w:jc.
func (p *Paragraph) SetAlignment(val string) {
	p.EnsureProperties().Alignment = &Alignment{Val: val}
}

// Clone returns a deep copy of the paragraph. Paragraph identifiers are
// dropped since they must stay unique within the part.
func (p *Paragraph) Clone() *Paragraph {
	out := &Paragraph{
		Attrs:      withoutAttrs(p.Attrs, "paraId", "textId"),
		Properties: p.Properties.Clone(),
	}
	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			out.Content = append(out.Content, c.Clone())
		case *Hyperlink:
			out.Content = append(out.Content, c.Clone())
		case *RawXMLElement:
			out.Content = append(out.Content, c.Clone())
		}
	}
	return out
}

// ParagraphProperties represents paragraph formatting properties
type ParagraphProperties struct {
	Style           *Style
	KeepNext        *OnOff
	KeepLines       *OnOff
	PageBreakBefore *OnOff
	WidowControl    *OnOff
	Numbering       *NumberingProperties
	Spacing         *Spacing
	Indentation     *Indentation
	Alignment       *Alignment
	// RunProperties are the paragraph mark run properties
	RunProperties *RunProperties
	// Extra stores properties the model does not interpret
	Extra []*RawXMLElement
}

// paragraphPropertiesOrder is the schema order of pPr children.
var paragraphPropertiesOrder = []string{
	"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl",
	"numPr", "suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens",
	"kinsoku", "wordWrap", "overflowPunct", "topLinePunct", "autoSpaceDE",
	"autoSpaceDN", "bidi", "adjustRightInd", "snapToGrid", "spacing", "ind",
	"contextualSpacing", "mirrorIndents", "suppressOverlap", "jc", "textDirection",
	"textAlignment", "textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr",
	"sectPr", "pPrChange",
}

// UnmarshalXML implements custom XML unmarshaling to preserve unknown elements
func (p *ParagraphProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			if t.Name.Space != NamespaceW && t.Name.Space != "w" {
				raw, err := decodeRaw(d, t)
				if err != nil {
					return err
				}
				p.Extra = append(p.Extra, raw)
				continue
			}
			switch t.Name.Local {
			case "pStyle":
				p.Style = &Style{}
				err = d.DecodeElement(p.Style, &t)
			case "keepNext":
				p.KeepNext = &OnOff{}
				err = d.DecodeElement(p.KeepNext, &t)
			case "keepLines":
				p.KeepLines = &OnOff{}
				err = d.DecodeElement(p.KeepLines, &t)
			case "pageBreakBefore":
				p.PageBreakBefore = &OnOff{}
				err = d.DecodeElement(p.PageBreakBefore, &t)
			case "widowControl":
				p.WidowControl = &OnOff{}
				err = d.DecodeElement(p.WidowControl, &t)
			case "numPr":
				p.Numbering = &NumberingProperties{}
				err = d.DecodeElement(p.Numbering, &t)
			case "spacing":
				p.Spacing = &Spacing{}
				err = d.DecodeElement(p.Spacing, &t)
			case "ind":
				p.Indentation = &Indentation{}
				err = d.DecodeElement(p.Indentation, &t)
			case "jc":
				p.Alignment = &Alignment{}
				p.Alignment.Val, _ = attrValue(t.Attr, "val")
				err = d.Skip()
			case "rPr":
				p.RunProperties = &RunProperties{}
				err = d.DecodeElement(p.RunProperties, &t)
			default:
				var raw *RawXMLElement
				raw, err = decodeRaw(d, t)
				if err == nil {
					p.Extra = append(p.Extra, raw)
				}
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for ParagraphProperties,
// writing children in schema order
func (p *ParagraphProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("pPr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	written := make(map[*RawXMLElement]bool)
	for _, local := range paragraphPropertiesOrder {
		var err error
		switch local {
		case "pStyle":
			if p.Style != nil {
				err = marshalVal(e, "pStyle", p.Style.Val)
			}
		case "keepNext":
			if p.KeepNext != nil {
				err = marshalOnOff(e, "keepNext", p.KeepNext)
			}
		case "keepLines":
			if p.KeepLines != nil {
				err = marshalOnOff(e, "keepLines", p.KeepLines)
			}
		case "pageBreakBefore":
			if p.PageBreakBefore != nil {
				err = marshalOnOff(e, "pageBreakBefore", p.PageBreakBefore)
			}
		case "widowControl":
			if p.WidowControl != nil {
				err = marshalOnOff(e, "widowControl", p.WidowControl)
			}
		case "numPr":
			if p.Numbering != nil {
				err = p.Numbering.MarshalXML(e, xml.StartElement{})
			}
		case "spacing":
			if p.Spacing != nil {
				err = p.Spacing.MarshalXML(e, xml.StartElement{})
			}
		case "ind":
			if p.Indentation != nil {
				err = p.Indentation.MarshalXML(e, xml.StartElement{})
			}
		case "jc":
			if p.Alignment != nil {
				err = marshalVal(e, "jc", p.Alignment.Val)
			}
		case "rPr":
			if p.RunProperties != nil {
				err = p.RunProperties.MarshalXML(e, xml.StartElement{})
			}
		}
		if err != nil {
			return err
		}
		if err := marshalExtras(e, p.Extra, local, written); err != nil {
			return err
		}
	}
	if err := marshalRemaining(e, p.Extra, written); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Clone returns a deep copy of the properties.
func (p *ParagraphProperties) Clone() *ParagraphProperties {
	if p == nil {
		return nil
	}
	out := &ParagraphProperties{
		Style:           cloneStyle(p.Style),
		KeepNext:        cloneOnOff(p.KeepNext),
		KeepLines:       cloneOnOff(p.KeepLines),
		PageBreakBefore: cloneOnOff(p.PageBreakBefore),
		WidowControl:    cloneOnOff(p.WidowControl),
		Spacing:         p.Spacing.Clone(),
		Indentation:     p.Indentation.Clone(),
		RunProperties:   p.RunProperties.Clone(),
	}
	if p.Numbering != nil {
		n := *p.Numbering
		out.Numbering = &n
	}
	if p.Alignment != nil {
		a := *p.Alignment
		out.Alignment = &a
	}
	for _, raw := range p.Extra {
		out.Extra = append(out.Extra, raw.Clone())
	}
	return out
}

// NumberingProperties represents w:numPr, which turns a paragraph into a
// list item
type NumberingProperties struct {
	Level string
	ID    string
}

// UnmarshalXML implements custom XML unmarshaling for NumberingProperties
func (n *NumberingProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "ilvl":
				n.Level, _ = attrValue(t.Attr, "val")
			case "numId":
				n.ID, _ = attrValue(t.Attr, "val")
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML implements custom XML marshaling for NumberingProperties
func (n *NumberingProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("numPr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Level != "" {
		if err := marshalVal(e, "ilvl", n.Level); err != nil {
			return err
		}
	}
	if n.ID != "" {
		if err := marshalVal(e, "numId", n.ID); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Alignment represents paragraph justification (w:jc)
type Alignment struct {
	Val string
}

// Spacing represents paragraph spacing. Values are twentieths of a point,
// kept as strings so an explicit "0" survives.
type Spacing struct {
	Before   string
	After    string
	Line     string
	LineRule string
	// Other keeps attributes such as beforeAutospacing
	Other []xml.Attr
}

// UnmarshalXML implements custom XML unmarshaling for Spacing
func (s *Spacing) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "before":
			s.Before = a.Value
		case "after":
			s.After = a.Value
		case "line":
			s.Line = a.Value
		case "lineRule":
			s.LineRule = a.Value
		default:
			s.Other = append(s.Other, a)
		}
	}
	return d.Skip()
}

// MarshalXML implements custom XML marshaling for Spacing
func (s *Spacing) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	var attrs []xml.Attr
	if s.Before != "" {
		attrs = append(attrs, wAttr("before", s.Before))
	}
	if s.After != "" {
		attrs = append(attrs, wAttr("after", s.After))
	}
	if s.Line != "" {
		attrs = append(attrs, wAttr("line", s.Line))
	}
	if s.LineRule != "" {
		attrs = append(attrs, wAttr("lineRule", s.LineRule))
	}
	attrs = append(attrs, qualifyAttrs(e, s.Other)...)
	return marshalAttrs(e, "spacing", attrs)
}

// SetBefore sets space-before, dropping attributes that would override it.
func (s *Spacing) SetBefore(val string) {
	s.Before = val
	s.Other = withoutAttrs(s.Other, "beforeLines", "beforeAutospacing")
}

// Clone returns a copy of the spacing.
func (s *Spacing) Clone() *Spacing {
	if s == nil {
		return nil
	}
	c := *s
	c.Other = copyAttrs(s.Other)
	return &c
}

// Indentation represents paragraph indentation
type Indentation struct {
	Left      string
	Right     string
	FirstLine string
	Hanging   string
	// Other keeps attributes such as start/end and the *Chars variants
	Other []xml.Attr
}

// UnmarshalXML implements custom XML unmarshaling for Indentation
func (i *Indentation) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "left":
			i.Left = a.Value
		case "right":
			i.Right = a.Value
		case "firstLine":
			i.FirstLine = a.Value
		case "hanging":
			i.Hanging = a.Value
		default:
			i.Other = append(i.Other, a)
		}
	}
	return d.Skip()
}

// MarshalXML implements custom XML marshaling for Indentation
func (i *Indentation) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	var attrs []xml.Attr
	if i.Left != "" {
		attrs = append(attrs, wAttr("left", i.Left))
	}
	if i.Right != "" {
		attrs = append(attrs, wAttr("right", i.Right))
	}
	if i.FirstLine != "" {
		attrs = append(attrs, wAttr("firstLine", i.FirstLine))
	}
	if i.Hanging != "" {
		attrs = append(attrs, wAttr("hanging", i.Hanging))
	}
	attrs = append(attrs, qualifyAttrs(e, i.Other)...)
	return marshalAttrs(e, "ind", attrs)
}

// Clone returns a copy of the indentation.
func (i *Indentation) Clone() *Indentation {
	if i == nil {
		return nil
	}
	c := *i
	c.Other = copyAttrs(i.Other)
	return &c
}

// Hyperlink represents a hyperlink in the document
type Hyperlink struct {
	// ID is the relationship id (r:id) of an external target
	ID string
	// Attrs keeps the remaining attributes (anchor, history, tooltip...)
	Attrs   []xml.Attr
	Content []ParagraphContent
}

// isParagraphContent implements the ParagraphContent interface
func (h *Hyperlink) isParagraphContent() {}

// UnmarshalXML implements custom XML unmarshaling for Hyperlink
func (h *Hyperlink) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "id" && (a.Name.Space == NamespaceR || a.Name.Space == "r") {
			h.ID = a.Value
			continue
		}
		h.Attrs = append(h.Attrs, a)
	}

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
			if isW(t.Name, "r") {
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				h.Content = append(h.Content, &run)
				continue
			}
			raw, err := decodeRaw(d, t)
			if err != nil {
				return err
			}
			h.Content = append(h.Content, raw)
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for Hyperlink to ensure proper namespacing
func (h *Hyperlink) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("hyperlink")}
	if h.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "r:id"}, Value: h.ID})
	}
	start.Attr = append(start.Attr, qualifyAttrs(e, h.Attrs)...)

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, content := range h.Content {
		if err := content.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a hyperlink
func (h *Hyperlink) GetText() string {
	var sb strings.Builder
	for _, content := range h.Content {
		if r, ok := content.(*Run); ok {
			sb.WriteString(r.GetText())
		}
	}
	return sb.String()
}

// Runs returns the runs inside the hyperlink.
func (h *Hyperlink) Runs() []*Run {
	var runs []*Run
	for _, content := range h.Content {
		if r, ok := content.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// Clone returns a deep copy of the hyperlink.
func (h *Hyperlink) Clone() *Hyperlink {
	out := &Hyperlink{ID: h.ID, Attrs: copyAttrs(h.Attrs)}
	for _, content := range h.Content {
		switch c := content.(type) {
		case *Run:
			out.Content = append(out.Content, c.Clone())
		case *RawXMLElement:
			out.Content = append(out.Content, c.Clone())
		}
	}
	return out
}
