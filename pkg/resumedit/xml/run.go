package xml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	Properties *RunProperties
	// Content keeps text, breaks, tabs and preserved elements in order
	Content []RunContent
}

// isParagraphContent implements the ParagraphContent interface
func (r *Run) isParagraphContent() {}

// NewRun creates a run holding text.
func NewRun(text string) *Run {
	r := &Run{}
	r.SetText(text)
	return r
}

// UnmarshalXML implements custom XML unmarshaling to preserve content order
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			case isW(t.Name, "rPr"):
				var props RunProperties
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Properties = &props
			case isW(t.Name, "t"):
				var text Text
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, &text)
			case isW(t.Name, "br"):
				var br Break
				if err := d.DecodeElement(&br, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, &br)
			case isW(t.Name, "tab"):
				if err := d.Skip(); err != nil {
					return err
				}
				r.Content = append(r.Content, &Tab{})
			default:
				// Preserve unknown elements (drawings, field chars, ...) as raw XML
				raw, err := decodeRaw(d, t)
				if err != nil {
					return err
				}
				r.Content = append(r.Content, raw)
			}
		case xml.EndElement:
			return nil
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling for Run to ensure proper namespacing
func (r *Run) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("r")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := r.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	for _, content := range r.Content {
		if err := content.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text content of a run. Tabs and breaks render as
// "\t" and "\n".
func (r *Run) GetText() string {
	var sb strings.Builder
	for _, content := range r.Content {
		switch c := content.(type) {
		case *Text:
			sb.WriteString(c.Content)
		case *Tab:
			sb.WriteString("\t")
		case *Break:
			if c.Type == "" || c.Type == "textWrapping" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// SetText replaces all text, tabs and breaks of the run with a single text
// element. Preserved non-text content such as drawings is kept.
func (r *Run) SetText(text string) {
	kept := r.Content[:0]
	for _, content := range r.Content {
		switch content.(type) {
		case *Text, *Tab, *Break:
			continue
		}
		kept = append(kept, content)
	}
	r.Content = kept
	if text == "" {
		return
	}
	r.Content = append(r.Content, NewText(text))
}

// Clone returns a deep copy of the run.
func (r *Run) Clone() *Run {
	out := &Run{Properties: r.Properties.Clone()}
	for _, content := range r.Content {
		switch c := content.(type) {
		case *Text:
			t := *c
			out.Content = append(out.Content, &t)
		case *Break:
			b := *c
			out.Content = append(out.Content, &b)
		case *Tab:
			out.Content = append(out.Content, &Tab{})
		case *RawXMLElement:
			out.Content = append(out.Content, c.Clone())
		}
	}
	return out
}

// RunProperties represents run formatting properties
type RunProperties struct {
	Style     *Style
	Fonts     *Fonts
	Bold      *OnOff
	BoldCs    *OnOff
	Italic    *OnOff
	ItalicCs  *OnOff
	Color     *Color
	Size      *Size
	SizeCs    *Size
	Underline *Underline
	// Extra stores properties the model does not interpret
	Extra []*RawXMLElement
}

// runPropertiesOrder is the schema order of rPr children.
var runPropertiesOrder = []string{
	"ins", "del", "moveFrom", "moveTo",
	"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike",
	"dstrike", "outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid",
	"vanish", "webHidden", "color", "spacing", "w", "kern", "position", "sz",
	"szCs", "highlight", "u", "effect", "bdr", "shd", "fitText", "vertAlign",
	"rtl", "cs", "em", "lang", "eastAsianLayout", "specVanish", "oMath", "rPrChange",
}

// UnmarshalXML implements custom XML unmarshaling to preserve unknown elements
func (p *RunProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			case "rStyle":
				p.Style = &Style{}
				err = d.DecodeElement(p.Style, &t)
			case "rFonts":
				p.Fonts = &Fonts{Attrs: copyAttrs(t.Attr)}
				err = d.Skip()
			case "b":
				p.Bold = &OnOff{}
				err = d.DecodeElement(p.Bold, &t)
			case "bCs":
				p.BoldCs = &OnOff{}
				err = d.DecodeElement(p.BoldCs, &t)
			case "i":
				p.Italic = &OnOff{}
				err = d.DecodeElement(p.Italic, &t)
			case "iCs":
				p.ItalicCs = &OnOff{}
				err = d.DecodeElement(p.ItalicCs, &t)
			case "color":
				p.Color = &Color{Attrs: copyAttrs(t.Attr)}
				err = d.Skip()
			case "sz":
				p.Size = &Size{}
				p.Size.Val, _ = attrValue(t.Attr, "val")
				err = d.Skip()
			case "szCs":
				p.SizeCs = &Size{}
				p.SizeCs.Val, _ = attrValue(t.Attr, "val")
				err = d.Skip()
			case "u":
				p.Underline = &Underline{Attrs: copyAttrs(t.Attr)}
				err = d.Skip()
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

// MarshalXML implements custom XML marshaling for RunProperties, writing
// children in schema order
func (p *RunProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("rPr")}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	written := make(map[*RawXMLElement]bool)
	for _, local := range runPropertiesOrder {
		var err error
		switch local {
		case "rStyle":
			if p.Style != nil {
				err = marshalVal(e, "rStyle", p.Style.Val)
			}
		case "rFonts":
			if p.Fonts != nil {
				err = marshalAttrs(e, "rFonts", qualifyAttrs(e, p.Fonts.Attrs))
			}
		case "b":
			if p.Bold != nil {
				err = marshalOnOff(e, "b", p.Bold)
			}
		case "bCs":
			if p.BoldCs != nil {
				err = marshalOnOff(e, "bCs", p.BoldCs)
			}
		case "i":
			if p.Italic != nil {
				err = marshalOnOff(e, "i", p.Italic)
			}
		case "iCs":
			if p.ItalicCs != nil {
				err = marshalOnOff(e, "iCs", p.ItalicCs)
			}
		case "color":
			if p.Color != nil {
				err = marshalAttrs(e, "color", qualifyAttrs(e, p.Color.Attrs))
			}
		case "sz":
			if p.Size != nil {
				err = marshalVal(e, "sz", p.Size.Val)
			}
		case "szCs":
			if p.SizeCs != nil {
				err = marshalVal(e, "szCs", p.SizeCs.Val)
			}
		case "u":
			if p.Underline != nil {
				err = marshalAttrs(e, "u", qualifyAttrs(e, p.Underline.Attrs))
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
func (p *RunProperties) Clone() *RunProperties {
	if p == nil {
		return nil
	}
	out := &RunProperties{
		Style:    cloneStyle(p.Style),
		Bold:     cloneOnOff(p.Bold),
		BoldCs:   cloneOnOff(p.BoldCs),
		Italic:   cloneOnOff(p.Italic),
		ItalicCs: cloneOnOff(p.ItalicCs),
	}
	if p.Fonts != nil {
		out.Fonts = &Fonts{Attrs: copyAttrs(p.Fonts.Attrs)}
	}
	if p.Color != nil {
		out.Color = &Color{Attrs: copyAttrs(p.Color.Attrs)}
	}
	if p.Size != nil {
		s := *p.Size
		out.Size = &s
	}
	if p.SizeCs != nil {
		s := *p.SizeCs
		out.SizeCs = &s
	}
	if p.Underline != nil {
		out.Underline = &Underline{Attrs: copyAttrs(p.Underline.Attrs)}
	}
	for _, raw := range p.Extra {
		out.Extra = append(out.Extra, raw.Clone())
	}
	return out
}

// Fonts represents the rFonts element. All attributes (ascii, hAnsi,
// eastAsia, cs and the theme variants) are kept.
type Fonts struct {
	Attrs []xml.Attr
}

// ASCII returns the font used for ASCII text.
func (f *Fonts) ASCII() string {
	if f == nil {
		return ""
	}
	v, _ := attrValue(f.Attrs, "ascii")
	return v
}

// NewFonts returns an rFonts element naming one font for ASCII and
// high-ANSI text.
func NewFonts(name string) *Fonts {
	return &Fonts{Attrs: []xml.Attr{
		{Name: xml.Name{Space: NamespaceW, Local: "ascii"}, Value: name},
		{Name: xml.Name{Space: NamespaceW, Local: "hAnsi"}, Value: name},
	}}
}

// Color represents text color
type Color struct {
	Attrs []xml.Attr
}

// Val returns the RGB value or "auto".
func (c *Color) Val() string {
	if c == nil {
		return ""
	}
	v, _ := attrValue(c.Attrs, "val")
	return v
}

// Size represents font size in half-points
type Size struct {
	Val string
}

// Underline represents underline formatting
type Underline struct {
	Attrs []xml.Attr
}

// Val returns the underline style, e.g. "single" or "none".
func (u *Underline) Val() string {
	if u == nil {
		return ""
	}
	v, _ := attrValue(u.Attrs, "val")
	return v
}

// Text represents text content
type Text struct {
	Space   string
	Content string
}

// isRunContent implements the RunContent interface
func (t *Text) isRunContent() {}

// NewText creates a text element, preserving surrounding whitespace when
// the content has any.
func NewText(content string) *Text {
	t := &Text{Content: content}
	if strings.TrimSpace(content) != content {
		t.Space = "preserve"
	}
	return t
}

// UnmarshalXML implements custom XML unmarshaling for Text
func (t *Text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	t.Space, _ = attrValue(start.Attr, "space")
	var content struct {
		Value string `xml:",chardata"`
	}
	if err := d.DecodeElement(&content, &start); err != nil {
		return err
	}
	t.Content = content.Value
	return nil
}

// MarshalXML implements custom XML marshaling for Text to ensure proper namespacing
func (t *Text) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("t")}
	if t.Space == "preserve" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xml:space"}, Value: "preserve"})
	}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line break
type Break struct {
	Type  string
	Clear string
}

// isRunContent implements the RunContent interface
func (b *Break) isRunContent() {}

// UnmarshalXML implements custom XML unmarshaling for Break
func (b *Break) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	b.Type, _ = attrValue(start.Attr, "type")
	b.Clear, _ = attrValue(start.Attr, "clear")
	return d.Skip()
}

// MarshalXML implements xml.Marshaler to ensure Break is written as w:br
func (b *Break) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: wName("br")}
	if b.Type != "" {
		start.Attr = append(start.Attr, wAttr("type", b.Type))
	}
	if b.Clear != "" {
		start.Attr = append(start.Attr, wAttr("clear", b.Clear))
	}
	return e.EncodeElement(struct{}{}, start)
}

// Tab represents a tab character inside a run
type Tab struct{}

// isRunContent implements the RunContent interface
func (t *Tab) isRunContent() {}

// MarshalXML implements xml.Marshaler for Tab
func (t *Tab) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return e.EncodeElement(struct{}{}, xml.StartElement{Name: wName("tab")})
}

// marshalExtras writes the preserved elements named local that have not
// been written yet.
func marshalExtras(e *xml.Encoder, extras []*RawXMLElement, local string, written map[*RawXMLElement]bool) error {
	for _, raw := range extras {
		if written[raw] || raw.XMLName.Local != local {
			continue
		}
		if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
		written[raw] = true
	}
	return nil
}

// marshalRemaining writes preserved elements whose names are not part of a
// known schema order.
func marshalRemaining(e *xml.Encoder, extras []*RawXMLElement, written map[*RawXMLElement]bool) error {
	for _, raw := range extras {
		if written[raw] {
			continue
		}
		if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
		written[raw] = true
	}
	return nil
}
