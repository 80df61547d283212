package resumedit

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	previewMaxLines       = 10
	previewHeadingMaxLen  = 40
	previewNoBullets      = "(No bullets found under this entry. Download to verify.)"
	previewInvalidTable   = "(Invalid table_index: %d. Download to verify.)"
	previewNoSectionLines = "(No preview text found for %s. Download to verify.)"
)

// Preview renders a short plain-text view of a section.
//
// For EXPERIENCE and PROJECTS with a table index it shows the entry header
// as "left | right" followed by its bullets. Any other section shows up to
// ten non-empty lines after the heading, stopping at the next short
// upper-case line. Problems are reported inside the text rather than as
// errors, since previews are informational.
func (d *Document) Preview(section string, tableIndex *int) string {
	section = strings.ToUpper(strings.TrimSpace(section))

	if tableIndex != nil && (section == SectionExperience || section == SectionProjects) {
		return d.previewEntry(*tableIndex)
	}

	var lines []string
	hit := false
	for _, p := range d.paragraphs {
		text := normalizeText(p.GetText())
		if text == "" {
			continue
		}
		if text == section {
			hit = true
			continue
		}
		if !hit {
			continue
		}
		if isUpper(text) && utf8.RuneCountInString(text) < previewHeadingMaxLen {
			break
		}
		lines = append(lines, text)
		if len(lines) >= previewMaxLines {
			break
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf(previewNoSectionLines, section)
	}
	return strings.Join(lines, "\n")
}

func (d *Document) previewEntry(tableIndex int) string {
	table, err := d.Table(tableIndex)
	if err != nil {
		return fmt.Sprintf(previewInvalidTable, tableIndex)
	}

	var left, right string
	if rows := table.Rows(); len(rows) > 0 {
		cells := rows[0].Cells()
		if len(cells) > 0 {
			left = strings.TrimSpace(cells[0].GetText())
		}
		if len(cells) > 1 {
			right = strings.TrimSpace(cells[1].GetText())
		}
	}

	var out []string
	if left != "" || right != "" {
		out = append(out, strings.Trim(left+" | "+right, " |"))
	}

	bullets, err := d.BulletTexts(tableIndex)
	if err != nil || len(bullets) == 0 {
		out = append(out, previewNoBullets)
	} else {
		out = append(out, bullets...)
	}
	return strings.Join(out, "\n")
}
