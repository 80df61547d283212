package resumedit

import (
	"strings"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// GetSkills returns the raw text of every paragraph in the TECHNICAL SKILLS
// section, blank lines included.
func (d *Document) GetSkills() ([]string, error) {
	paras, err := d.sectionParagraphs(SectionSkills)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(paras))
	for _, p := range paras {
		lines = append(lines, p.GetText())
	}
	return lines, nil
}

// ReplaceSkills replaces the TECHNICAL SKILLS section with one paragraph per
// non-empty line, formatted like the section's first paragraph. The blank
// paragraphs that ended the old section are put back after the new lines so
// the gap before the next heading is unchanged. The section must be followed
// by another heading.
func (d *Document) ReplaceSkills(lines []string) error {
	start, end, err := d.FindSection(SectionSkills)
	if err != nil {
		return err
	}
	paras := d.paragraphs
	if end >= len(paras) {
		return &NotFoundError{What: "next section", Message: "couldn't find next section after TECHNICAL SKILLS"}
	}
	next := paras[end]

	old := make([]*docxml.Paragraph, end-start)
	copy(old, paras[start:end])
	if len(old) == 0 {
		return &NotFoundError{What: "TECHNICAL SKILLS content", Message: "no TECHNICAL SKILLS content found"}
	}

	var content []string
	for _, line := range lines {
		for _, l := range splitLines(line) {
			if strings.TrimSpace(l) != "" {
				content = append(content, strings.TrimRight(l, " \t"))
			}
		}
	}
	if len(content) == 0 {
		return &EmptyInputError{What: "skills", Message: "no skills lines provided"}
	}

	trailing := 0
	for i := len(old) - 1; i >= 0 && isBlank(old[i]); i-- {
		trailing++
	}

	tpl := CaptureTemplate(old)

	for _, p := range old {
		d.remove(p)
	}
	for _, line := range content {
		if err := d.insertBefore(next, tpl.NewParagraph(line)); err != nil {
			return err
		}
	}
	for i := 0; i < trailing; i++ {
		if err := d.insertBefore(next, tpl.NewParagraph("")); err != nil {
			return err
		}
	}

	d.logger.WithFields(Fields{
		"old":      len(old),
		"new":      len(content),
		"trailing": trailing,
	}).Debug("replaced skills section")
	return nil
}
