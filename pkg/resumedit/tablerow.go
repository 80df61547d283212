package resumedit

import (
	"fmt"
	"strings"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// TableRowFields are the two cells of an entry header row, e.g. school and
// dates, or company and period.
type TableRowFields struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// Merge returns r with every empty field of patch replaced by r's value.
func (r TableRowFields) Merge(patch TableRowFields) TableRowFields {
	out := r
	if patch.Left != "" {
		out.Left = patch.Left
	}
	if patch.Right != "" {
		out.Right = patch.Right
	}
	return out
}

// rowCells returns the first two cells of a table row.
func (d *Document) rowCells(tableIndex, rowIndex int) (*docxml.TableCell, *docxml.TableCell, error) {
	table, err := d.Table(tableIndex)
	if err != nil {
		return nil, nil, err
	}
	rows := table.Rows()
	if rowIndex < 0 || rowIndex >= len(rows) {
		return nil, nil, &NotFoundError{
			What:    "table row",
			Message: fmt.Sprintf("row %d not found in table %d", rowIndex, tableIndex),
		}
	}
	cells := rows[rowIndex].Cells()
	if len(cells) < 2 {
		return nil, nil, &StructuralError{
			Operation: "edit table row",
			Message:   fmt.Sprintf("row %d of table %d has %d cells, need 2", rowIndex, tableIndex, len(cells)),
		}
	}
	return cells[0], cells[1], nil
}

// cellText joins the trimmed, non-empty paragraph texts of a cell with
// spaces.
func cellText(cell *docxml.TableCell) string {
	var parts []string
	for _, p := range cell.Paragraphs() {
		if t := normalizeText(p.GetText()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// GetTableRow returns the left and right cell text of a row.
func (d *Document) GetTableRow(tableIndex, rowIndex int) (*TableRowFields, error) {
	left, right, err := d.rowCells(tableIndex, rowIndex)
	if err != nil {
		return nil, err
	}
	return &TableRowFields{Left: cellText(left), Right: cellText(right)}, nil
}

// UpdateTableRow rewrites the two cells of a row in place. Each cell keeps
// its paragraphs and first-run formatting; the left cell is aligned left and
// the right cell right. Table geometry is never touched.
func (d *Document) UpdateTableRow(tableIndex, rowIndex int, fields TableRowFields) error {
	left, right, err := d.rowCells(tableIndex, rowIndex)
	if err != nil {
		return err
	}

	setCellText(left, fields.Left, AlignLeft)
	setCellText(right, fields.Right, AlignRight)

	d.logger.WithFields(Fields{"table": tableIndex, "row": rowIndex}).Debug("updated table row")
	return nil
}

// setCellText empties every run in the cell and writes text into the first
// run of the first paragraph.
func setCellText(cell *docxml.TableCell, text, align string) {
	text = strings.TrimSpace(text)

	paras := cell.Paragraphs()
	var p *docxml.Paragraph
	if len(paras) > 0 {
		p = paras[0]
	} else {
		p = cell.AddParagraph()
	}

	for _, para := range cell.Paragraphs() {
		ClearParagraph(para)
	}

	if runs := p.Runs(); len(runs) > 0 {
		runs[0].SetText(text)
	} else {
		p.AddRun(docxml.NewRun(text))
	}

	p.SetAlignment(align)
}
