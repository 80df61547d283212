package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-resumedit/pkg/resumedit"
)

// Layout describes where a resume template keeps its entry tables.
type Layout struct {
	// Sections maps a heading to the indices of the tables under it
	Sections resumedit.SectionMap `yaml:"sections"`
	// EducationRow is the row of the education table that holds school and dates
	EducationRow int `yaml:"education_row"`
}

// DefaultLayout returns the layout of the reference template.
func DefaultLayout() *Layout {
	return &Layout{
		Sections:     resumedit.DefaultSectionMap(),
		EducationRow: 0,
	}
}

// LoadLayout reads a layout file. A missing file yields the default
// layout; sections absent from the file keep their default tables.
func LoadLayout(path string) (*Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return layout, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read section map: %w", err)
	}

	var file struct {
		Sections     map[string][]int `yaml:"sections"`
		EducationRow *int             `yaml:"education_row"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse section map: %w", err)
	}

	for name, tables := range file.Sections {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("section map: empty section name")
		}
		for _, idx := range tables {
			if idx < 0 {
				return nil, fmt.Errorf("section %s: negative table index %d", name, idx)
			}
		}
		layout.Sections[name] = tables
	}
	if file.EducationRow != nil {
		if *file.EducationRow < 0 {
			return nil, fmt.Errorf("section map: negative education_row %d", *file.EducationRow)
		}
		layout.EducationRow = *file.EducationRow
	}

	return layout, nil
}
