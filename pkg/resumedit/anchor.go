package resumedit

import (
	"fmt"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// Table returns the top-level table at index
func (d *Document) Table(index int) (*docxml.Table, error) {
	if index < 0 || index >= len(d.tables) {
		return nil, fmt.Errorf("table %d of %d: %w", index, len(d.tables), ErrTableNotFound)
	}
	return d.tables[index], nil
}

// TablePosition returns the body position of the table at index
func (d *Document) TablePosition(index int) (int, error) {
	table, err := d.Table(index)
	if err != nil {
		return 0, err
	}
	pos, ok := d.positionOf(table)
	if !ok {
		return 0, fmt.Errorf("table %d: %w", index, ErrTableNotFound)
	}
	return pos, nil
}

// NextTableAfter returns the first top-level table that follows the table at
// index in body order, or nil when it is the last one.
func (d *Document) NextTableAfter(index int) (*docxml.Table, error) {
	pos, err := d.TablePosition(index)
	if err != nil {
		return nil, err
	}
	for _, elem := range d.body()[pos+1:] {
		if t, ok := elem.(*docxml.Table); ok {
			return t, nil
		}
	}
	return nil, nil
}
