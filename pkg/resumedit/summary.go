package resumedit

import (
	"strings"
)

// GetSummary returns the non-empty lines of the SUMMARY section joined by
// newlines.
func (d *Document) GetSummary() (string, error) {
	paras, err := d.sectionParagraphs(SectionSummary)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, p := range paras {
		if t := normalizeText(p.GetText()); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// UpdateSummary collapses text into a single line and writes it into the
// first SUMMARY paragraph, keeping that paragraph's first-run formatting.
// The remaining paragraphs of the section are emptied but kept, so the
// section's vertical layout does not change.
func (d *Document) UpdateSummary(text string) error {
	block, err := d.sectionParagraphs(SectionSummary)
	if err != nil {
		return err
	}
	if len(block) == 0 {
		return &NotFoundError{What: "SUMMARY content", Message: "no SUMMARY content found"}
	}

	oneLine := strings.TrimSpace(strings.Join(splitLines(text), " "))
	if oneLine == "" {
		return &EmptyInputError{What: "summary", Message: "summary cannot be empty"}
	}

	SetTextKeepFirstRunFormat(block[0], oneLine)
	for _, p := range block[1:] {
		ClearParagraph(p)
	}

	d.logger.WithField("cleared", len(block)-1).Debug("updated summary")
	return nil
}

// splitLines splits text on \n, \r\n and \r line endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
