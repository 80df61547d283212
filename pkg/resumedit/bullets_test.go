package resumedit

import (
	"errors"
	"strings"
	"testing"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

func TestBulletTexts(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	tests := []struct {
		name  string
		table int
		want  []string
	}{
		{"first experience", 1, []string{"Built the billing pipeline", "Mentored two engineers"}},
		{"second experience", 2, []string{"Shipped the search service"}},
		{"last experience", 3, []string{"Wrote internal tooling", "Automated releases"}},
		{"project", 4, []string{"Open-source DOCX editor"}},
		{"education has none", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.BulletTexts(tt.table)
			if err != nil {
				t.Fatalf("BulletTexts(%d) error: %v", tt.table, err)
			}
			if !equalStrings(got, tt.want) {
				t.Errorf("BulletTexts(%d) = %q, want %q", tt.table, got, tt.want)
			}
		})
	}

	if _, err := doc.BulletTexts(9); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("BulletTexts(9) error = %v, want ErrTableNotFound", err)
	}
}

func TestReplaceBulletsBetweenTables(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	lines := []string{"  Cut p99 latency by 40%  ", "", "Led the event sourcing migration", "Hired a team of four"}
	if err := doc.ReplaceBullets(1, lines, DefaultBulletOptions()); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}

	want := []string{
		"EXPERIENCE",
		"T",
		"B:Cut p99 latency by 40%",
		"B:Led the event sourcing migration",
		"B:Hired a team of four",
		"_",
		"T",
		"B:Shipped the search service",
		"_",
		"T",
		"B:Wrote internal tooling",
		"B:Automated releases",
		"_",
		"PROJECTS",
		"T",
		"B:Open-source DOCX editor",
	}
	if got := layoutFrom(t, doc, "EXPERIENCE"); !equalStrings(got, want) {
		t.Errorf("layout after replace:\n got %q\nwant %q", got, want)
	}

	bullets, err := doc.BulletsAfterTable(1)
	if err != nil {
		t.Fatalf("BulletsAfterTable failed: %v", err)
	}
	if len(bullets) != 3 {
		t.Fatalf("got %d bullets, want 3", len(bullets))
	}

	for i, b := range bullets {
		props := b.Properties
		if props == nil || props.Numbering == nil {
			t.Fatalf("bullet %d lost its numbering", i)
		}
		if props.Numbering.ID != "7" || props.Numbering.Level != "0" {
			t.Errorf("bullet %d numbering = %+v, want numId 7 ilvl 0", i, props.Numbering)
		}
		if b.StyleID() != "ListBullet" {
			t.Errorf("bullet %d style = %q, want ListBullet", i, b.StyleID())
		}
		if props.Alignment == nil || props.Alignment.Val != AlignJustify {
			t.Errorf("bullet %d is not justified", i)
		}
		if props.Indentation == nil {
			t.Errorf("bullet %d lost its indentation", i)
		}

		runs := b.Runs()
		if len(runs) != 1 {
			t.Fatalf("bullet %d has %d runs, want 1", i, len(runs))
		}
		rp := runs[0].Properties
		if rp == nil || rp.Fonts.ASCII() != "Calibri" || rp.Size == nil || rp.Size.Val != "21" {
			t.Errorf("bullet %d run format not cloned from the template: %+v", i, rp)
		}
	}

	if got := bullets[0].Properties.Spacing.Before; got != "0" {
		t.Errorf("first bullet spacing before = %q, want 0", got)
	}
	if got := bullets[1].Properties.Spacing.Before; got != "60" {
		t.Errorf("second bullet spacing before = %q, want 60", got)
	}
}

func TestReplaceBulletsKeepsSpacerFormat(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	if err := doc.ReplaceBullets(1, []string{"One", "Two"}, DefaultBulletOptions()); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}

	next, err := doc.Table(2)
	if err != nil {
		t.Fatalf("Table(2) failed: %v", err)
	}
	spacer, ok := doc.previousElement(next).(*docxml.Paragraph)
	if !ok || !isBlank(spacer) {
		t.Fatalf("expected a blank paragraph before the next table")
	}
	if spacer.HasNumbering() {
		t.Error("spacer paragraph must not be a list item")
	}
	if spacer.Properties == nil || spacer.Properties.Spacing == nil || spacer.Properties.Spacing.After != "120" {
		t.Errorf("spacer did not keep the original blank paragraph's spacing")
	}
}

func TestReplaceBulletsIsIdempotent(t *testing.T) {
	lines := []string{"Alpha", "Beta", "Gamma"}

	once := openResume(t, sampleResumeBody())
	if err := once.ReplaceBullets(2, lines, DefaultBulletOptions()); err != nil {
		t.Fatalf("first ReplaceBullets failed: %v", err)
	}

	twice := openResume(t, sampleResumeBody())
	for i := 0; i < 2; i++ {
		if err := twice.ReplaceBullets(2, lines, DefaultBulletOptions()); err != nil {
			t.Fatalf("ReplaceBullets pass %d failed: %v", i+1, err)
		}
	}

	if a, b := layout(once), layout(twice); !equalStrings(a, b) {
		t.Errorf("second replacement changed the layout:\n once %q\ntwice %q", a, b)
	}

	a, b := bulletFormats(t, once, 2), bulletFormats(t, twice, 2)
	if !equalStrings(a, b) {
		t.Errorf("second replacement changed the bullet format:\n once %q\ntwice %q", a, b)
	}
	want := []string{
		"before=0 numId=7 ilvl=0 style=ListBullet font=Calibri sz=21",
		"before=60 numId=7 ilvl=0 style=ListBullet font=Calibri sz=21",
		"before=60 numId=7 ilvl=0 style=ListBullet font=Calibri sz=21",
	}
	if !equalStrings(b, want) {
		t.Errorf("bullet format after two replacements:\n got %q\nwant %q", b, want)
	}
}

// bulletFormats describes the paragraph and run format of each bullet under
// the table at tableIndex.
func bulletFormats(t *testing.T, doc *Document, tableIndex int) []string {
	t.Helper()
	bullets, err := doc.BulletsAfterTable(tableIndex)
	if err != nil {
		t.Fatalf("BulletsAfterTable failed: %v", err)
	}

	var out []string
	for _, b := range bullets {
		var before, numID, level, font, size string
		if props := b.Properties; props != nil {
			if props.Spacing != nil {
				before = props.Spacing.Before
			}
			if props.Numbering != nil {
				numID, level = props.Numbering.ID, props.Numbering.Level
			}
		}
		if runs := b.Runs(); len(runs) > 0 && runs[0].Properties != nil {
			rp := runs[0].Properties
			font = rp.Fonts.ASCII()
			if rp.Size != nil {
				size = rp.Size.Val
			}
		}
		out = append(out, "before="+before+" numId="+numID+" ilvl="+level+
			" style="+b.StyleID()+" font="+font+" sz="+size)
	}
	return out
}

func TestReplaceBulletsLastEntryOfSection(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	if err := doc.ReplaceBullets(3, []string{"Ran the on-call rotation", "Owned the CI pipeline"}, DefaultBulletOptions()); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}

	want := []string{
		"T",
		"B:Ran the on-call rotation",
		"B:Owned the CI pipeline",
		"_",
		"PROJECTS",
		"T",
		"B:Open-source DOCX editor",
	}
	got := layout(doc)
	got = got[len(got)-len(want):]
	if !equalStrings(got, want) {
		t.Errorf("bullets must stay above the next section heading:\n got %q\nwant %q", got, want)
	}
}

func TestReplaceBulletsAtEndOfDocument(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	if err := doc.ReplaceBullets(4, []string{"Wrote a DOCX section editor", "Published it"}, DefaultBulletOptions()); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}

	want := []string{"PROJECTS", "T", "B:Wrote a DOCX section editor", "B:Published it", "_"}
	if got := layoutFrom(t, doc, "PROJECTS"); !equalStrings(got, want) {
		t.Errorf("layout = %q, want %q", got, want)
	}

	// The rewritten body still serializes and parses
	again := reopen(t, doc)
	if got := layoutFrom(t, again, "PROJECTS"); !equalStrings(got, want) {
		t.Errorf("layout after reopen = %q, want %q", got, want)
	}
}

func TestReplaceBulletsWithoutSpacer(t *testing.T) {
	doc := openResume(t, sampleResumeBody())

	opts := BulletOptions{KeepBlankLineBeforeNext: false}
	if err := doc.ReplaceBullets(1, []string{"Only bullet"}, opts); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}

	want := []string{"EXPERIENCE", "T", "B:Only bullet", "T"}
	got := layoutFrom(t, doc, "EXPERIENCE")[:4]
	if !equalStrings(got, want) {
		t.Errorf("layout = %q, want %q", got, want)
	}
}

func TestReplaceBulletsNextTableOverride(t *testing.T) {
	withOverride := openResume(t, sampleResumeBody())
	opts := DefaultBulletOptions()
	opts.NextTableOverride = intPtr(2)
	if err := withOverride.ReplaceBullets(1, []string{"A", "B"}, opts); err != nil {
		t.Fatalf("ReplaceBullets with override failed: %v", err)
	}

	plain := openResume(t, sampleResumeBody())
	if err := plain.ReplaceBullets(1, []string{"A", "B"}, DefaultBulletOptions()); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}

	if a, b := layout(withOverride), layout(plain); !equalStrings(a, b) {
		t.Errorf("override to the following table should match the default:\n%q\n%q", a, b)
	}
}

func TestReplaceBulletsErrors(t *testing.T) {
	tests := []struct {
		name    string
		table   int
		lines   []string
		opts    BulletOptions
		check   func(error) bool
		sentry  error
		message string
	}{
		{
			name:   "empty replacement",
			table:  1,
			lines:  []string{"", "   ", "\t"},
			opts:   DefaultBulletOptions(),
			check:  IsEmptyInput,
			sentry: ErrEmptyReplacement,
		},
		{
			name:    "no bullet block",
			table:   0,
			lines:   []string{"Something"},
			opts:    DefaultBulletOptions(),
			check:   IsStructural,
			sentry:  ErrNoBulletBlock,
			message: "no bullet block detected",
		},
		{
			name:   "table out of range",
			table:  42,
			lines:  []string{"Something"},
			opts:   DefaultBulletOptions(),
			check:  IsNotFound,
			sentry: ErrTableNotFound,
		},
		{
			name:  "override before the entry",
			table: 2,
			lines: []string{"Something"},
			opts:  BulletOptions{NextTableOverride: intPtr(1), KeepBlankLineBeforeNext: true},
			check: IsStructural,
		},
		{
			name:   "override out of range",
			table:  1,
			lines:  []string{"Something"},
			opts:   BulletOptions{NextTableOverride: intPtr(12)},
			check:  IsNotFound,
			sentry: ErrTableNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openResume(t, sampleResumeBody())
			before := layout(doc)

			err := doc.ReplaceBullets(tt.table, tt.lines, tt.opts)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error kind: %v", err)
			}
			if tt.sentry != nil && !errors.Is(err, tt.sentry) {
				t.Errorf("error %v does not wrap %v", err, tt.sentry)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.message)
			}
			if after := layout(doc); !equalStrings(before, after) {
				t.Errorf("failed edit modified the document:\nbefore %q\n after %q", before, after)
			}
		})
	}
}

func TestReplaceBulletsMissingListFormat(t *testing.T) {
	body := strings.Join([]string{
		headingPara("EXPERIENCE"),
		entryTable("Acme Corp", "2020 - 2023"),
		textPara("• Manual bullet without properties"),
	}, "")
	doc := openResume(t, body)

	err := doc.ReplaceBullets(0, []string{"New"}, DefaultBulletOptions())
	if !errors.Is(err, ErrMissingListFormat) {
		t.Fatalf("error = %v, want ErrMissingListFormat", err)
	}
	if got, _ := doc.BulletTexts(0); len(got) != 1 || got[0] != "• Manual bullet without properties" {
		t.Errorf("bullet block changed after a failed edit: %q", got)
	}
}

func TestReplaceBulletsRemovesExtraBlanks(t *testing.T) {
	body := strings.Join([]string{
		headingPara("EXPERIENCE"),
		entryTable("Acme Corp", "2020 - 2023"),
		blankPara(),
		bulletPara("Old one"),
		blankPara(),
		blankPara(),
		blankPara(),
		entryTable("Globex", "2018 - 2020"),
		bulletPara("Kept"),
	}, "")
	doc := openResume(t, body)

	if err := doc.ReplaceBullets(0, []string{"New one"}, DefaultBulletOptions()); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}

	want := []string{"EXPERIENCE", "T", "B:New one", "_", "T", "B:Kept"}
	if got := layout(doc); !equalStrings(got, want) {
		t.Errorf("layout = %q, want %q", got, want)
	}
}

func TestReplaceBulletsBoundsBlankCleanup(t *testing.T) {
	blanks := strings.Repeat(blankPara(), 10)
	body := strings.Join([]string{
		headingPara("EXPERIENCE"),
		entryTable("Acme Corp", "2020 - 2023"),
		blanks,
		bulletPara("Old one"),
		blankPara(),
		entryTable("Globex", "2018 - 2020"),
		bulletPara("Kept"),
	}, "")

	tests := []struct {
		name      string
		limit     int
		remaining int
	}{
		{"default limit", 0, 0},
		{"limit above count", 20, 0},
		{"limit of three", 3, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openResume(t, body)
			cfg := DefaultConfig()
			cfg.MaxBlankRemoval = tt.limit
			doc.SetConfig(cfg)

			if err := doc.ReplaceBullets(0, []string{"New one"}, DefaultBulletOptions()); err != nil {
				t.Fatalf("ReplaceBullets failed: %v", err)
			}

			want := []string{"EXPERIENCE", "T"}
			for i := 0; i < tt.remaining; i++ {
				want = append(want, "_")
			}
			want = append(want, "B:New one", "_", "T", "B:Kept")
			if got := layout(doc); !equalStrings(got, want) {
				t.Errorf("layout = %q, want %q", got, want)
			}
		})
	}
}

func TestReplaceBulletsHonorsJustifyConfig(t *testing.T) {
	doc := openResume(t, sampleResumeBody())
	cfg := DefaultConfig()
	cfg.JustifyBullets = false
	doc.SetConfig(cfg)

	if err := doc.ReplaceBullets(2, []string{"Plain"}, DefaultBulletOptions()); err != nil {
		t.Fatalf("ReplaceBullets failed: %v", err)
	}
	bullets, _ := doc.BulletsAfterTable(2)
	if len(bullets) != 1 {
		t.Fatalf("got %d bullets, want 1", len(bullets))
	}
	if a := bullets[0].Properties.Alignment; a != nil {
		t.Errorf("alignment = %q, want none", a.Val)
	}
}
