package resumedit

import (
	"sort"
)

// SectionMap assigns entry tables to the sections that own them, by table
// index. The layout of a resume template is known in advance, so the map is
// configuration rather than something inferred from the document.
type SectionMap map[string][]int

// DefaultSectionMap returns the layout of the reference resume template:
// one education table followed by three experience and three project
// entries.
func DefaultSectionMap() SectionMap {
	return SectionMap{
		SectionEducation:  {0},
		SectionExperience: {1, 2, 3},
		SectionProjects:   {4, 5, 6},
	}
}

// Resolve keeps the sections whose heading was detected and, within them,
// the tables that passed the text/date scan. Sections with a detected
// heading are kept even when none of their tables qualified.
func (m SectionMap) Resolve(headers []string, tables []int) SectionMap {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	scanned := make(map[int]bool, len(tables))
	for _, t := range tables {
		scanned[t] = true
	}

	out := make(SectionMap)
	for section, indices := range m {
		if !present[section] {
			continue
		}
		kept := []int{}
		for _, idx := range indices {
			if scanned[idx] {
				kept = append(kept, idx)
			}
		}
		out[section] = kept
	}
	return out
}

// NextInSection returns the table that follows tableIndex within section,
// if tableIndex belongs to the section and is not its last entry.
func (m SectionMap) NextInSection(section string, tableIndex int) (int, bool) {
	indices := append([]int(nil), m[section]...)
	sort.Ints(indices)
	for i, idx := range indices {
		if idx == tableIndex && i+1 < len(indices) {
			return indices[i+1], true
		}
	}
	return 0, false
}

// Contains reports whether tableIndex belongs to section.
func (m SectionMap) Contains(section string, tableIndex int) bool {
	for _, idx := range m[section] {
		if idx == tableIndex {
			return true
		}
	}
	return false
}

// DetectHeaders returns the distinct paragraph texts that look like section
// headings, in document order. The name at the top may be among them.
func (d *Document) DetectHeaders() []string {
	seen := make(map[string]bool)
	var headers []string
	for _, p := range d.paragraphs {
		text := normalizeText(p.GetText())
		if text == "" || !LooksLikeSectionHeader(text) || seen[text] {
			continue
		}
		seen[text] = true
		headers = append(headers, text)
	}
	return headers
}

// ScanTextDateTables returns the indices of tables whose first row has
// exactly two cells, both with text: the shape of an entry header such as
// "Acme Corp | 2020 - 2023".
func (d *Document) ScanTextDateTables() []int {
	var good []int
	for i, table := range d.tables {
		rows := table.Rows()
		if len(rows) == 0 {
			continue
		}
		cells := rows[0].Cells()
		if len(cells) != 2 {
			continue
		}
		if cellText(cells[0]) != "" && cellText(cells[1]) != "" {
			good = append(good, i)
		}
	}
	return good
}

// Analysis summarizes what the editors can work with in a document.
// TablesFound counts the entry-shaped tables, not every table.
type Analysis struct {
	Headers        []string   `json:"detected_sections"`
	TablesFound    int        `json:"tables_found"`
	TextDateTables []int      `json:"text_date_tables"`
	SectionTables  SectionMap `json:"section_tables"`
}

// Analyze detects headings and entry tables and resolves m against them.
func (d *Document) Analyze(m SectionMap) *Analysis {
	if m == nil {
		m = DefaultSectionMap()
	}
	headers := d.DetectHeaders()
	tables := d.ScanTextDateTables()
	return &Analysis{
		Headers:        headers,
		TablesFound:    len(tables),
		TextDateTables: tables,
		SectionTables:  m.Resolve(headers, tables),
	}
}
