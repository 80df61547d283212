package resumedit

import (
	"fmt"
	"strings"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// Section labels used by the editors.
const (
	SectionSummary    = "SUMMARY"
	SectionEducation  = "EDUCATION"
	SectionExperience = "EXPERIENCE"
	SectionProjects   = "PROJECTS"
	SectionSkills     = "TECHNICAL SKILLS"
)

// FindSection locates the paragraphs that belong to the section headed by
// label. start is the paragraph index right after the heading and end is the
// index of the next heading paragraph, or the paragraph count when no heading
// follows. The heading match is exact after trimming and upper-casing.
func (d *Document) FindSection(label string) (start, end int, err error) {
	want := strings.ToUpper(normalizeText(label))
	if want == "" {
		return 0, 0, &EmptyInputError{What: "section label"}
	}

	paras := d.paragraphs
	heading := -1
	for i, p := range paras {
		if strings.ToUpper(normalizeText(p.GetText())) == want {
			heading = i
			break
		}
	}
	if heading < 0 {
		return 0, 0, &NotFoundError{What: want + " heading", Message: fmt.Sprintf("%s heading not found", want)}
	}

	start = heading + 1
	end = start
	for end < len(paras) && !IsHeading(paras[end].GetText()) {
		end++
	}
	return start, end, nil
}

// sectionParagraphs returns the paragraphs between the heading named label
// and the next heading.
func (d *Document) sectionParagraphs(label string) ([]*docxml.Paragraph, error) {
	start, end, err := d.FindSection(label)
	if err != nil {
		return nil, err
	}
	out := make([]*docxml.Paragraph, end-start)
	copy(out, d.paragraphs[start:end])
	return out, nil
}
