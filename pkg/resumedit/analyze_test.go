package resumedit

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDetectHeaders(t *testing.T) {
	doc := openResume(t, sampleResumeBody()+headingPara("SUMMARY"))

	want := []string{"JANE DOE", "SUMMARY", "EDUCATION", "TECHNICAL SKILLS", "EXPERIENCE", "PROJECTS"}
	if got := doc.DetectHeaders(); !equalStrings(got, want) {
		t.Errorf("DetectHeaders() = %q, want %q", got, want)
	}
}

func TestScanTextDateTables(t *testing.T) {
	emptyCell := `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Left only</w:t></w:r></w:p></w:tc><w:tc><w:p/></w:tc></w:tr></w:tbl>`
	threeCells := `<w:tbl><w:tr>` +
		`<w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>c</w:t></w:r></w:p></w:tc>` +
		`</w:tr></w:tbl>`
	doc := openResume(t, sampleResumeBody()+emptyCell+threeCells)

	got := doc.ScanTextDateTables()
	want := []int{0, 1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("ScanTextDateTables() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ScanTextDateTables() = %v, want %v", got, want)
			break
		}
	}
}

func TestAnalyze(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	m := SectionMap{
		SectionEducation:  {0},
		SectionExperience: {1, 2, 3},
		SectionProjects:   {4, 5},
		"AWARDS":          {6},
	}
	a := doc.Analyze(m)

	if a.TablesFound != 5 {
		t.Errorf("TablesFound = %d, want 5", a.TablesFound)
	}
	if _, ok := a.SectionTables["AWARDS"]; ok {
		t.Error("section without a detected heading must be dropped")
	}
	if got := a.SectionTables[SectionProjects]; len(got) != 1 || got[0] != 4 {
		t.Errorf("PROJECTS tables = %v, want [4]", got)
	}
	if got := a.SectionTables[SectionExperience]; len(got) != 3 {
		t.Errorf("EXPERIENCE tables = %v, want [1 2 3]", got)
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	for _, key := range []string{`"detected_sections"`, `"tables_found":5`, `"text_date_tables"`, `"section_tables"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("analysis JSON %s has no %s", data, key)
		}
	}
}

func TestSectionMapResolveKeepsEmptySections(t *testing.T) {
	m := SectionMap{SectionProjects: {7, 8}}
	got := m.Resolve([]string{SectionProjects}, []int{1, 2})
	tables, ok := got[SectionProjects]
	if !ok {
		t.Fatal("section with a detected heading was dropped")
	}
	if tables == nil || len(tables) != 0 {
		t.Errorf("PROJECTS tables = %#v, want empty list", tables)
	}
}

func TestSectionMapNextInSection(t *testing.T) {
	m := DefaultSectionMap()

	tests := []struct {
		section string
		table   int
		want    int
		ok      bool
	}{
		{SectionExperience, 1, 2, true},
		{SectionExperience, 2, 3, true},
		{SectionExperience, 3, 0, false},
		{SectionProjects, 4, 5, true},
		{SectionProjects, 1, 0, false},
		{SectionEducation, 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := m.NextInSection(tt.section, tt.table)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NextInSection(%s, %d) = (%d, %v), want (%d, %v)", tt.section, tt.table, got, ok, tt.want, tt.ok)
		}
	}

	if !m.Contains(SectionProjects, 6) || m.Contains(SectionProjects, 1) {
		t.Error("Contains gave the wrong answer")
	}
}

func TestPreview(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	tests := []struct {
		name    string
		section string
		table   *int
		want    string
	}{
		{
			name:    "experience entry",
			section: "experience",
			table:   intPtr(1),
			want:    "Acme Corp | 2020 - 2023\nBuilt the billing pipeline\nMentored two engineers",
		},
		{
			name:    "entry without bullets",
			section: SectionExperience,
			table:   intPtr(0),
			want:    "TU Berlin | 2014 - 2018\n(No bullets found under this entry. Download to verify.)",
		},
		{
			name:    "invalid table",
			section: SectionProjects,
			table:   intPtr(9),
			want:    "(Invalid table_index: 9. Download to verify.)",
		},
		{
			name:    "text section",
			section: SectionSummary,
			want:    "Backend engineer building reliable systems.\nOpen to remote roles.",
		},
		{
			name:    "skills",
			section: SectionSkills,
			want:    "Languages: Go, Python\nCloud: AWS, GCP\nTools: Docker",
		},
		{
			name:    "nothing under heading",
			section: SectionEducation,
			want:    "(No preview text found for EDUCATION. Download to verify.)",
		},
		{
			name:    "unknown section",
			section: "awards",
			want:    "(No preview text found for AWARDS. Download to verify.)",
		},
		{
			name:    "table index ignored outside entry sections",
			section: SectionSummary,
			table:   intPtr(1),
			want:    "Backend engineer building reliable systems.\nOpen to remote roles.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.Preview(tt.section, tt.table); got != tt.want {
				t.Errorf("Preview(%q) =\n%s\nwant\n%s", tt.section, got, tt.want)
			}
		})
	}
}

func TestPreviewLimitsLines(t *testing.T) {
	var b strings.Builder
	b.WriteString(headingPara("SUMMARY"))
	for i := 0; i < 15; i++ {
		b.WriteString(textPara("line"))
	}
	doc := openResume(t, b.String())

	if got := strings.Count(doc.Preview(SectionSummary, nil), "\n") + 1; got != 10 {
		t.Errorf("preview has %d lines, want 10", got)
	}
}
