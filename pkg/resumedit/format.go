package resumedit

import (
	"strings"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// Paragraph alignment values (w:jc).
const (
	AlignLeft    = "left"
	AlignRight   = "right"
	AlignJustify = "both"
)

// RunFormat is the visible character formatting copied from one run to
// another: bold, italic, underline, font, size and color. A nil field means
// the property is inherited.
type RunFormat struct {
	Bold      *docxml.OnOff
	Italic    *docxml.OnOff
	Underline *docxml.Underline
	Fonts     *docxml.Fonts
	Size      *docxml.Size
	SizeCs    *docxml.Size
	Color     *docxml.Color
}

// CaptureRunFormat snapshots the formatting of r. It returns nil for a nil
// run.
func CaptureRunFormat(r *docxml.Run) *RunFormat {
	if r == nil {
		return nil
	}
	f := &RunFormat{}
	if r.Properties == nil {
		return f
	}
	src := r.Properties.Clone()
	f.Bold = src.Bold
	f.Italic = src.Italic
	f.Underline = src.Underline
	f.Fonts = src.Fonts
	f.Size = src.Size
	f.SizeCs = src.SizeCs
	f.Color = src.Color
	return f
}

// properties returns fresh run properties carrying the format, or nil when
// the format sets nothing.
func (f *RunFormat) properties() *docxml.RunProperties {
	if f == nil {
		return nil
	}
	props := &docxml.RunProperties{}
	f.ApplyTo(&docxml.Run{Properties: props})
	if props.Bold == nil && props.Italic == nil && props.Underline == nil &&
		props.Fonts == nil && props.Size == nil && props.SizeCs == nil && props.Color == nil {
		return nil
	}
	return props
}

// ApplyTo copies the format onto r. Bold, italic, underline, font and size
// are set exactly, clearing them on r when unset in the format; color is only
// written when the format has one. Other properties of r are left alone.
func (f *RunFormat) ApplyTo(r *docxml.Run) {
	if f == nil || r == nil {
		return
	}
	if r.Properties == nil {
		r.Properties = &docxml.RunProperties{}
	}
	dst := r.Properties
	src := &docxml.RunProperties{
		Bold:      f.Bold,
		Italic:    f.Italic,
		Underline: f.Underline,
		Fonts:     f.Fonts,
		Size:      f.Size,
		SizeCs:    f.SizeCs,
		Color:     f.Color,
	}
	src = src.Clone()

	dst.Bold = src.Bold
	dst.Italic = src.Italic
	dst.Underline = src.Underline
	dst.Fonts = src.Fonts
	dst.Size = src.Size
	dst.SizeCs = src.SizeCs
	if src.Color != nil {
		dst.Color = src.Color
	}
}

// Template is a paragraph format snapshot used to build new paragraphs that
// look like an existing one.
type Template struct {
	// Properties are the paragraph properties to clone, including list
	// numbering when captured from a bullet
	Properties *docxml.ParagraphProperties
	// Run is the format of the first run, if there was one
	Run *RunFormat
}

// CaptureTemplate snapshots the paragraph format (style, alignment,
// indentation, spacing and the keep/widow toggles) of the first paragraph of
// block, and the format of the first run found anywhere in block. An empty
// block yields an empty template.
func CaptureTemplate(block []*docxml.Paragraph) *Template {
	if len(block) == 0 {
		return &Template{}
	}
	p := block[0]

	tpl := &Template{}
	if src := p.Properties; src != nil {
		tpl.Properties = &docxml.ParagraphProperties{
			KeepNext:        cloneToggle(src.KeepNext),
			KeepLines:       cloneToggle(src.KeepLines),
			PageBreakBefore: cloneToggle(src.PageBreakBefore),
			WidowControl:    cloneToggle(src.WidowControl),
			Spacing:         src.Spacing.Clone(),
			Indentation:     src.Indentation.Clone(),
		}
		if src.Style != nil {
			tpl.Properties.Style = &docxml.Style{Val: src.Style.Val}
		}
		if src.Alignment != nil {
			tpl.Properties.Alignment = &docxml.Alignment{Val: src.Alignment.Val}
		}
	}
	for _, bp := range block {
		if runs := bp.Runs(); len(runs) > 0 {
			tpl.Run = CaptureRunFormat(runs[0])
			break
		}
	}
	return tpl
}

// CaptureListTemplate snapshots a bullet paragraph completely, including the
// numbering properties that make it a list item. A paragraph without any
// properties cannot be reproduced and yields ErrMissingListFormat.
func CaptureListTemplate(p *docxml.Paragraph) (*Template, error) {
	if p == nil || p.Properties == nil {
		return nil, ErrMissingListFormat
	}
	tpl := &Template{Properties: p.Properties.Clone()}
	if runs := p.Runs(); len(runs) > 0 {
		tpl.Run = CaptureRunFormat(runs[0])
	}
	return tpl, nil
}

// NewParagraph builds a paragraph with the template's format and a single
// run holding text.
func (t *Template) NewParagraph(text string) *docxml.Paragraph {
	p := &docxml.Paragraph{Properties: t.Properties.Clone()}
	run := docxml.NewRun(text)
	run.Properties = t.Run.properties()
	p.AddRun(run)
	return p
}

// inheritSpacingBefore takes the spacing before from p, keeping the rest of
// the captured spacing.
func (t *Template) inheritSpacingBefore(p *docxml.Paragraph) {
	var before string
	if p.Properties != nil && p.Properties.Spacing != nil {
		before = p.Properties.Spacing.Before
	}
	if t.Properties == nil {
		t.Properties = &docxml.ParagraphProperties{}
	}
	if t.Properties.Spacing == nil {
		if before == "" {
			return
		}
		t.Properties.Spacing = &docxml.Spacing{}
	}
	t.Properties.Spacing.Before = before
}

// withoutNumbering returns a copy of the template whose paragraphs are not
// list items.
func (t *Template) withoutNumbering() *Template {
	out := &Template{Properties: t.Properties.Clone(), Run: t.Run}
	if out.Properties != nil {
		out.Properties.Numbering = nil
	}
	return out
}

// SetTextKeepFirstRunFormat replaces the visible text of p with text. The
// first direct run keeps its formatting and receives the text; other direct
// runs are emptied. A paragraph without runs gets a new plain run.
func SetTextKeepFirstRunFormat(p *docxml.Paragraph, text string) {
	runs := p.Runs()
	if len(runs) == 0 {
		p.AddRun(docxml.NewRun(text))
		return
	}
	for _, r := range runs[1:] {
		r.SetText("")
	}
	runs[0].SetText(text)
}

// ClearParagraph empties the text of every direct run of p. Paragraph and
// run formatting stay in place.
func ClearParagraph(p *docxml.Paragraph) {
	for _, r := range p.Runs() {
		r.SetText("")
	}
}

// CleanLines trims each line and drops the empty ones.
func CleanLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func cloneToggle(o *docxml.OnOff) *docxml.OnOff {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
