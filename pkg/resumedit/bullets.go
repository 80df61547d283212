package resumedit

import (
	"fmt"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// MaxBlankRemoval is the default bound on blank paragraphs removed in front
// of an anchor in one pass.
const MaxBlankRemoval = 50

// BulletOptions controls a bullet block replacement.
type BulletOptions struct {
	// NextTableOverride names the table the new block must end before. When
	// nil the next table after the entry is used.
	NextTableOverride *int
	// KeepBlankLineBeforeNext leaves exactly one blank paragraph between the
	// new block and whatever follows it.
	KeepBlankLineBeforeNext bool
}

// DefaultBulletOptions returns the options used when the caller has no
// preference.
func DefaultBulletOptions() BulletOptions {
	return BulletOptions{KeepBlankLineBeforeNext: true}
}

// BulletsAfterTable returns the bullet block that belongs to the table at
// tableIndex: the first run of consecutive bullet paragraphs after it, with
// blank paragraphs ignored. Scanning stops at the next table or at the first
// non-bullet text once bullets have started.
func (d *Document) BulletsAfterTable(tableIndex int) ([]*docxml.Paragraph, error) {
	pos, err := d.TablePosition(tableIndex)
	if err != nil {
		return nil, err
	}

	var bullets []*docxml.Paragraph
	started := false
scan:
	for _, elem := range d.body()[pos+1:] {
		switch el := elem.(type) {
		case *docxml.Table:
			break scan
		case *docxml.Paragraph:
			if isBlank(el) {
				continue
			}
			if d.IsBullet(el) {
				bullets = append(bullets, el)
				started = true
			} else if started {
				break scan
			}
		}
	}
	return bullets, nil
}

// BulletTexts returns the trimmed texts of the bullet block under a table.
func (d *Document) BulletTexts(tableIndex int) ([]string, error) {
	bullets, err := d.BulletsAfterTable(tableIndex)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(bullets))
	for _, b := range bullets {
		texts = append(texts, normalizeText(b.GetText()))
	}
	return texts, nil
}

// bulletReplacement is a fully validated bullet edit. Nothing in the
// document has been touched while it is being planned.
type bulletReplacement struct {
	table    *docxml.Table
	old      []*docxml.Paragraph
	lines    []string
	template *Template
	// anchor is the element the new block ends before; nil means the end of
	// the body
	anchor docxml.BodyElement
	spacer *Template
	keep   bool
}

// ReplaceBullets replaces the bullet block under the table at tableIndex
// with one bullet per non-empty line, cloning the list formatting of the
// existing bullets. All preconditions are checked before the document
// is modified, so a failed call leaves it unchanged.
func (d *Document) ReplaceBullets(tableIndex int, lines []string, opts BulletOptions) error {
	logger := d.logger.WithField("table", tableIndex)

	plan, err := d.planBulletReplacement(tableIndex, lines, opts)
	if err != nil {
		logger.Warn("bullet replacement rejected: %v", err)
		return err
	}

	logger.WithFields(Fields{
		"old": len(plan.old),
		"new": len(plan.lines),
	}).Debug("replacing bullet block")

	return d.applyBulletReplacement(plan)
}

func (d *Document) planBulletReplacement(tableIndex int, lines []string, opts BulletOptions) (*bulletReplacement, error) {
	table, err := d.Table(tableIndex)
	if err != nil {
		return nil, err
	}

	old, err := d.BulletsAfterTable(tableIndex)
	if err != nil {
		return nil, err
	}
	if len(old) == 0 {
		return nil, fmt.Errorf("table %d: %w", tableIndex, ErrNoBulletBlock)
	}

	cleaned := CleanLines(lines)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("table %d: %w", tableIndex, ErrEmptyReplacement)
	}

	tpl, err := CaptureListTemplate(old[0])
	if err != nil {
		return nil, fmt.Errorf("table %d: %w", tableIndex, err)
	}
	// The first bullet sits flush under the entry header. Later bullets carry
	// the spacing every new bullet after the first should get.
	if len(old) > 1 {
		tpl.inheritSpacingBefore(old[1])
	}

	anchor, err := d.resolveBulletAnchor(tableIndex, old, opts.NextTableOverride)
	if err != nil {
		return nil, err
	}

	return &bulletReplacement{
		table:    table,
		old:      old,
		lines:    cleaned,
		template: tpl,
		anchor:   anchor,
		spacer:   d.spacerTemplateBefore(anchor, tpl),
		keep:     opts.KeepBlankLineBeforeNext,
	}, nil
}

// resolveBulletAnchor picks the element the new block is inserted before:
// the override table, else the next table, else the first non-blank element
// after the old block (nil when the block ends the document). A section
// heading between the entry and that anchor takes its place, so a block is
// never moved into the following section.
func (d *Document) resolveBulletAnchor(tableIndex int, old []*docxml.Paragraph, override *int) (docxml.BodyElement, error) {
	tablePos, err := d.TablePosition(tableIndex)
	if err != nil {
		return nil, err
	}

	var anchor docxml.BodyElement
	switch {
	case override != nil:
		next, err := d.Table(*override)
		if err != nil {
			return nil, err
		}
		nextPos, _ := d.positionOf(next)
		if nextPos <= tablePos {
			return nil, &StructuralError{
				Operation: "replace bullets",
				Message:   fmt.Sprintf("next table %d does not follow table %d", *override, tableIndex),
			}
		}
		anchor = next
	default:
		next, err := d.NextTableAfter(tableIndex)
		if err != nil {
			return nil, err
		}
		if next != nil {
			anchor = next
		} else {
			anchor = d.firstContentAfter(old[len(old)-1])
		}
	}

	end := len(d.body())
	if anchor != nil {
		end, _ = d.positionOf(anchor)
	}
	for _, elem := range d.body()[tablePos+1 : end] {
		p, ok := elem.(*docxml.Paragraph)
		if !ok || isBlank(p) || d.IsBullet(p) {
			continue
		}
		if IsHeading(p.GetText()) {
			return p, nil
		}
	}
	return anchor, nil
}

// firstContentAfter returns the first element after elem that is not a blank
// paragraph, or nil at the end of the body.
func (d *Document) firstContentAfter(elem docxml.BodyElement) docxml.BodyElement {
	pos, ok := d.positionOf(elem)
	if !ok {
		return nil
	}
	for _, next := range d.body()[pos+1:] {
		if p, ok := next.(*docxml.Paragraph); ok && isBlank(p) {
			continue
		}
		return next
	}
	return nil
}

// spacerTemplateBefore snapshots the blank paragraph directly in front of
// anchor, if there is one, to reproduce it after the rewrite. The snapshot
// never carries list numbering; without a first run of its own it borrows
// the bullet run format.
func (d *Document) spacerTemplateBefore(anchor docxml.BodyElement, bullet *Template) *Template {
	prev, ok := d.previousElement(anchor).(*docxml.Paragraph)
	if !ok || !isBlank(prev) {
		return &Template{Run: bullet.Run}
	}

	tpl := &Template{Properties: prev.Properties.Clone(), Run: bullet.Run}
	if runs := prev.Runs(); len(runs) > 0 {
		tpl.Run = CaptureRunFormat(runs[0])
	}
	return tpl.withoutNumbering()
}

func (d *Document) applyBulletReplacement(plan *bulletReplacement) error {
	// Drop the old block
	for _, p := range plan.old {
		d.remove(p)
	}

	// Blank paragraphs left directly under the entry table
	if err := d.removeLeadingBlanksAfter(plan.table, d.maxBlankRemoval()); err != nil {
		return err
	}

	var first *docxml.Paragraph
	for _, line := range plan.lines {
		p := plan.template.NewParagraph(line)
		if d.config == nil || d.config.JustifyBullets {
			p.SetAlignment(AlignJustify)
		}
		if err := d.insertBefore(plan.anchor, p); err != nil {
			return err
		}
		if first == nil {
			first = p
		}
	}

	// No gap between the entry header and its first bullet
	props := first.EnsureProperties()
	if props.Spacing == nil {
		props.Spacing = &docxml.Spacing{}
	}
	props.Spacing.SetBefore("0")

	d.removeBlanksBefore(plan.anchor, d.maxBlankRemoval())

	if plan.keep {
		if err := d.insertBefore(plan.anchor, plan.spacer.NewParagraph("")); err != nil {
			return err
		}
	}
	return nil
}

// removeLeadingBlanksAfter deletes up to limit blank paragraphs that
// directly follow table, stopping at the first text paragraph or table.
// Other elements such as bookmarks are stepped over.
func (d *Document) removeLeadingBlanksAfter(table *docxml.Table, limit int) error {
	pos, ok := d.positionOf(table)
	if !ok {
		return fmt.Errorf("entry table is not part of the document body")
	}

	var blanks []*docxml.Paragraph
scan:
	for _, elem := range d.body()[pos+1:] {
		switch el := elem.(type) {
		case *docxml.Table:
			break scan
		case *docxml.Paragraph:
			if !isBlank(el) || len(blanks) >= limit {
				break scan
			}
			blanks = append(blanks, el)
		}
	}
	for _, p := range blanks {
		d.remove(p)
	}
	return nil
}

// removeBlanksBefore deletes up to limit blank paragraphs directly in front
// of anchor (or at the end of the body when anchor is nil).
func (d *Document) removeBlanksBefore(anchor docxml.BodyElement, limit int) int {
	removed := 0
	for removed < limit {
		p, ok := d.previousElement(anchor).(*docxml.Paragraph)
		if !ok || !isBlank(p) {
			break
		}
		d.remove(p)
		removed++
	}
	return removed
}
