package doc

import "fmt"

// Validate checks the structural invariants the comparison engine relies
// on: no nil nodes, tables have at least one row, rows at least one cell,
// and every run carries either text or an object, not both.
//
// Returns a descriptive error naming the offending position. The engine
// surfaces it as a MALFORMED_DOCUMENT failure before any comparison work.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}
	return validateBlocks(d.Body, "body")
}

func validateBlocks(blocks []Block, at string) error {
	for i, b := range blocks {
		pos := fmt.Sprintf("%s[%d]", at, i)
		switch v := b.(type) {
		case nil:
			return fmt.Errorf("%s: nil block", pos)
		case *Paragraph:
			if v == nil {
				return fmt.Errorf("%s: nil paragraph", pos)
			}
			if err := validateParagraph(v, pos); err != nil {
				return err
			}
		case *Table:
			if v == nil {
				return fmt.Errorf("%s: nil table", pos)
			}
			if err := validateTable(v, pos); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: unknown block type %T", pos, b)
		}
	}
	return nil
}

func validateTable(t *Table, at string) error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("%s: table has no rows", at)
	}
	for i, row := range t.Rows {
		pos := fmt.Sprintf("%s/row[%d]", at, i)
		if row == nil {
			return fmt.Errorf("%s: nil row", pos)
		}
		if len(row.Cells) == 0 {
			return fmt.Errorf("%s: row has no cells", pos)
		}
		for j, cell := range row.Cells {
			cpos := fmt.Sprintf("%s/cell[%d]", pos, j)
			if cell == nil {
				return fmt.Errorf("%s: nil cell", cpos)
			}
			if err := validateBlocks(cell.Body, cpos); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateParagraph(p *Paragraph, at string) error {
	for i, in := range p.Runs {
		pos := fmt.Sprintf("%s/run[%d]", at, i)
		switch v := in.(type) {
		case nil:
			return fmt.Errorf("%s: nil inline", pos)
		case *Run:
			if v == nil {
				return fmt.Errorf("%s: nil run", pos)
			}
			if err := validateRun(v, pos); err != nil {
				return err
			}
		case *InsertedRange:
			if v == nil {
				return fmt.Errorf("%s: nil insertion wrapper", pos)
			}
			for j, r := range v.Runs {
				if r == nil {
					return fmt.Errorf("%s/run[%d]: nil run in insertion wrapper", pos, j)
				}
				if err := validateRun(r, fmt.Sprintf("%s/run[%d]", pos, j)); err != nil {
					return err
				}
			}
		case *DeletedRange:
			if v == nil {
				return fmt.Errorf("%s: nil deletion wrapper", pos)
			}
			for j, r := range v.Runs {
				if r == nil {
					return fmt.Errorf("%s/run[%d]: nil run in deletion wrapper", pos, j)
				}
				if err := validateRun(r, fmt.Sprintf("%s/run[%d]", pos, j)); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%s: unknown inline type %T", pos, in)
		}
	}
	return nil
}

func validateRun(r *Run, at string) error {
	if r.Text != "" && r.Object != nil {
		return fmt.Errorf("%s: run has both text and object content", at)
	}
	return nil
}
