package resumedit

import (
	"strings"
	"testing"
)

func TestFindSection(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	tests := []struct {
		label     string
		wantStart int
		wantEnd   int
	}{
		{"SUMMARY", 4, 7},
		{"summary", 4, 7},
		{"  Education ", 8, 9},
		{"TECHNICAL SKILLS", 10, 15},
		{"EXPERIENCE", 16, 24},
		{"PROJECTS", 25, 26},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			start, end, err := doc.FindSection(tt.label)
			if err != nil {
				t.Fatalf("FindSection(%q) error: %v", tt.label, err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("FindSection(%q) = (%d, %d), want (%d, %d)", tt.label, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFindSectionErrors(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	_, _, err := doc.FindSection("AWARDS")
	if !IsNotFound(err) {
		t.Errorf("missing heading: error = %v, want not found", err)
	}
	if err != nil && !strings.Contains(err.Error(), "AWARDS heading not found") {
		t.Errorf("error message = %q", err.Error())
	}

	if _, _, err := doc.FindSection("   "); !IsEmptyInput(err) {
		t.Errorf("empty label: error = %v, want empty input", err)
	}
}

func TestGetSummary(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	got, err := doc.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	want := "Backend engineer building reliable systems.\nOpen to remote roles."
	if got != want {
		t.Errorf("GetSummary() = %q, want %q", got, want)
	}
}

func TestUpdateSummary(t *testing.T) {
	doc := openResume(t, sampleResumeBody())
	before := len(doc.Paragraphs())

	if err := doc.UpdateSummary("Platform engineer.\r\nLoves   Go.\n"); err != nil {
		t.Fatalf("UpdateSummary failed: %v", err)
	}

	if got := len(doc.Paragraphs()); got != before {
		t.Errorf("paragraph count changed from %d to %d", before, got)
	}

	paras := doc.Paragraphs()
	first := paras[4]
	if got := first.GetText(); got != "Platform engineer. Loves   Go." {
		t.Errorf("first summary paragraph = %q", got)
	}
	if runs := first.Runs(); runs[0].Properties == nil || !runs[0].Properties.Italic.Enabled() {
		t.Error("first run lost its italic formatting")
	}
	if first.Properties == nil || first.Properties.Alignment == nil || first.Properties.Alignment.Val != "both" {
		t.Error("summary paragraph lost its alignment")
	}
	if got := paras[5].GetText(); got != "" {
		t.Errorf("second summary paragraph = %q, want empty", got)
	}

	again := reopen(t, doc)
	got, err := again.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary after reopen failed: %v", err)
	}
	if got != "Platform engineer. Loves   Go." {
		t.Errorf("GetSummary() after reopen = %q", got)
	}
}

func TestUpdateSummaryErrors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		doc := openResume(t, sampleResumeBody())
		if err := doc.UpdateSummary(" \n\t "); !IsEmptyInput(err) {
			t.Errorf("error = %v, want empty input", err)
		}
		if got, _ := doc.GetSummary(); !strings.HasPrefix(got, "Backend engineer") {
			t.Errorf("summary changed after a failed edit: %q", got)
		}
	})

	t.Run("no content under heading", func(t *testing.T) {
		body := headingPara("JANE DOE") + headingPara("SUMMARY") + headingPara("EDUCATION")
		doc := openResume(t, body)
		err := doc.UpdateSummary("Anything")
		if !IsNotFound(err) {
			t.Fatalf("error = %v, want not found", err)
		}
		if err.Error() != "no SUMMARY content found" {
			t.Errorf("error message = %q", err.Error())
		}
		if got, err := doc.GetSummary(); err != nil || got != "" {
			t.Errorf("GetSummary() = %q, %v; want empty", got, err)
		}
	})

	t.Run("no heading", func(t *testing.T) {
		doc := openResume(t, headingPara("JANE DOE")+textPara("Some text"))
		if err := doc.UpdateSummary("Anything"); !IsNotFound(err) {
			t.Errorf("error = %v, want not found", err)
		}
	})
}

func TestGetSkills(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	got, err := doc.GetSkills()
	if err != nil {
		t.Fatalf("GetSkills failed: %v", err)
	}
	want := []string{"Languages: Go, Python", "Cloud: AWS, GCP", "Tools: Docker", "", ""}
	if !equalStrings(got, want) {
		t.Errorf("GetSkills() = %q, want %q", got, want)
	}
}

func TestReplaceSkills(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	lines := []string{
		"Languages: Go, Rust",
		"",
		"Data: PostgreSQL, Kafka\nInfra: Kubernetes",
		"Cloud: AWS  ",
		"Practices: TDD",
	}
	if err := doc.ReplaceSkills(lines); err != nil {
		t.Fatalf("ReplaceSkills failed: %v", err)
	}

	got, err := doc.GetSkills()
	if err != nil {
		t.Fatalf("GetSkills failed: %v", err)
	}
	want := []string{
		"Languages: Go, Rust",
		"Data: PostgreSQL, Kafka",
		"Infra: Kubernetes",
		"Cloud: AWS",
		"Practices: TDD",
		"",
		"",
	}
	if !equalStrings(got, want) {
		t.Errorf("GetSkills() = %q, want %q", got, want)
	}

	// The section is still followed by EXPERIENCE
	_, end, err := doc.FindSection(SectionSkills)
	if err != nil {
		t.Fatalf("FindSection failed: %v", err)
	}
	if next := doc.Paragraphs()[end].GetText(); next != "EXPERIENCE" {
		t.Errorf("next heading = %q, want EXPERIENCE", next)
	}

	start, _, _ := doc.FindSection(SectionSkills)
	p := doc.Paragraphs()[start]
	if p.Properties == nil || p.Properties.Spacing == nil || p.Properties.Spacing.After != "40" {
		t.Error("skills line lost the paragraph format of the old first line")
	}
	if runs := p.Runs(); len(runs) != 1 || runs[0].Properties == nil || runs[0].Properties.Size.Val != "20" {
		t.Error("skills line lost the run format of the old first line")
	}
}

func TestReplaceSkillsRunFormatAfterLeadingBlank(t *testing.T) {
	body := strings.Join([]string{
		headingPara("TECHNICAL SKILLS"),
		blankPara(),
		skillPara("Languages: Go"),
		blankPara(),
		headingPara("EXPERIENCE"),
		textPara("Acme Corp"),
	}, "")
	doc := openResume(t, body)

	if err := doc.ReplaceSkills([]string{"Languages: Rust", "Cloud: GCP"}); err != nil {
		t.Fatalf("ReplaceSkills failed: %v", err)
	}

	start, _, err := doc.FindSection(SectionSkills)
	if err != nil {
		t.Fatalf("FindSection failed: %v", err)
	}
	for i, want := range []string{"Languages: Rust", "Cloud: GCP"} {
		p := doc.Paragraphs()[start+i]
		if got := p.GetText(); got != want {
			t.Fatalf("line %d = %q, want %q", i, got, want)
		}
		runs := p.Runs()
		if len(runs) != 1 || runs[0].Properties == nil || runs[0].Properties.Size == nil || runs[0].Properties.Size.Val != "20" {
			t.Errorf("line %d did not take the run format of the first skills line", i)
		}
	}
}

func TestReplaceSkillsErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		lines []string
		check func(error) bool
		msg   string
	}{
		{
			name:  "empty input",
			body:  sampleResumeBody(),
			lines: []string{"", "  "},
			check: IsEmptyInput,
		},
		{
			name:  "no heading",
			body:  headingPara("EXPERIENCE") + textPara("text"),
			lines: []string{"Go"},
			check: IsNotFound,
			msg:   "TECHNICAL SKILLS heading not found",
		},
		{
			name:  "no next section",
			body:  headingPara("TECHNICAL SKILLS") + skillPara("Go"),
			lines: []string{"Go"},
			check: IsNotFound,
			msg:   "couldn't find next section after TECHNICAL SKILLS",
		},
		{
			name:  "empty section",
			body:  headingPara("TECHNICAL SKILLS") + headingPara("EXPERIENCE"),
			lines: []string{"Go"},
			check: IsNotFound,
			msg:   "no TECHNICAL SKILLS content found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openResume(t, tt.body)
			before := layout(doc)

			err := doc.ReplaceSkills(tt.lines)
			if !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.msg != "" && err.Error() != tt.msg {
				t.Errorf("error message = %q, want %q", err.Error(), tt.msg)
			}
			if after := layout(doc); !equalStrings(before, after) {
				t.Errorf("failed edit modified the document")
			}
		})
	}
}
