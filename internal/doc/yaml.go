package doc

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// YAML serialization of document trees.
//
// This is the boundary format the CLI and test fixtures use: container
// parsing proper (.docx archives) is an external collaborator, but the
// engine still needs a way to read and write trees. The schema is a
// direct, explicit mapping of the tree - every block is a one-key mapping
// ("paragraph" or "table") so decoding stays unambiguous.

type yamlDoc struct {
	Body []yamlBlock `yaml:"body"`
}

type yamlBlock struct {
	Paragraph *yamlParagraph `yaml:"paragraph,omitempty"`
	Table     *yamlTable     `yaml:"table,omitempty"`
}

type yamlParagraph struct {
	Runs         []yamlInline `yaml:"runs,omitempty"`
	MarkInserted *yamlRev     `yaml:"mark_inserted,omitempty"`
	MarkDeleted  *yamlRev     `yaml:"mark_deleted,omitempty"`
}

type yamlTable struct {
	Rows []yamlRow `yaml:"rows"`
}

type yamlRow struct {
	Cells    []yamlCell `yaml:"cells"`
	Inserted *yamlRev   `yaml:"inserted,omitempty"`
	Deleted  *yamlRev   `yaml:"deleted,omitempty"`
}

type yamlCell struct {
	Body     []yamlBlock `yaml:"body,omitempty"`
	Inserted *yamlRev    `yaml:"inserted,omitempty"`
	Deleted  *yamlRev    `yaml:"deleted,omitempty"`
}

type yamlInline struct {
	Run *yamlRun   `yaml:"run,omitempty"`
	Ins *yamlRange `yaml:"ins,omitempty"`
	Del *yamlRange `yaml:"del,omitempty"`
}

type yamlRange struct {
	Rev  yamlRev   `yaml:"rev"`
	Runs []yamlRun `yaml:"runs"`
}

type yamlRun struct {
	Text      string      `yaml:"text,omitempty"`
	Object    *yamlObject `yaml:"object,omitempty"`
	Props     yamlProps   `yaml:",inline"`
	PrevProps *yamlProps  `yaml:"prev_props,omitempty"`
	FormatRev *yamlRev    `yaml:"format_rev,omitempty"`
}

type yamlObject struct {
	Kind string `yaml:"kind"`
	Ref  string `yaml:"ref"`
}

type yamlProps struct {
	Bold      bool   `yaml:"bold,omitempty"`
	Italic    bool   `yaml:"italic,omitempty"`
	Underline bool   `yaml:"underline,omitempty"`
	Strike    bool   `yaml:"strike,omitempty"`
	VertAlign string `yaml:"vertalign,omitempty"`
	Font      string `yaml:"font,omitempty"`
	Size      int    `yaml:"size,omitempty"`
	Color     string `yaml:"color,omitempty"`
	Lang      string `yaml:"lang,omitempty"`
}

type yamlRev struct {
	ID     int       `yaml:"id"`
	Author string    `yaml:"author"`
	Date   time.Time `yaml:"date"`
}

// FromYAML decodes a document tree from its YAML representation.
func FromYAML(data []byte) (*Document, error) {
	var yd yamlDoc
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	body, err := blocksFromYAML(yd.Body)
	if err != nil {
		return nil, err
	}
	return &Document{Body: body}, nil
}

// ToYAML encodes a document tree to its YAML representation.
func ToYAML(d *Document) ([]byte, error) {
	yd := yamlDoc{Body: blocksToYAML(d.Body)}
	out, err := yaml.Marshal(yd)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

func blocksFromYAML(in []yamlBlock) ([]Block, error) {
	var out []Block
	for i, yb := range in {
		switch {
		case yb.Paragraph != nil && yb.Table != nil:
			return nil, fmt.Errorf("block %d: both paragraph and table set", i)
		case yb.Paragraph != nil:
			p, err := paragraphFromYAML(yb.Paragraph)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
			out = append(out, p)
		case yb.Table != nil:
			t, err := tableFromYAML(yb.Table)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
			out = append(out, t)
		default:
			return nil, fmt.Errorf("block %d: neither paragraph nor table", i)
		}
	}
	return out, nil
}

func paragraphFromYAML(yp *yamlParagraph) (*Paragraph, error) {
	p := &Paragraph{
		MarkInserted: revFromYAML(yp.MarkInserted),
		MarkDeleted:  revFromYAML(yp.MarkDeleted),
	}
	for i, yi := range yp.Runs {
		switch {
		case yi.Run != nil:
			p.Runs = append(p.Runs, runFromYAML(yi.Run))
		case yi.Ins != nil:
			p.Runs = append(p.Runs, &InsertedRange{
				Rev:  Revision(yi.Ins.Rev),
				Runs: rangeRunsFromYAML(yi.Ins.Runs),
			})
		case yi.Del != nil:
			p.Runs = append(p.Runs, &DeletedRange{
				Rev:  Revision(yi.Del.Rev),
				Runs: rangeRunsFromYAML(yi.Del.Runs),
			})
		default:
			return nil, fmt.Errorf("run %d: neither run, ins, nor del", i)
		}
	}
	return p, nil
}

func tableFromYAML(yt *yamlTable) (*Table, error) {
	t := &Table{}
	for _, yr := range yt.Rows {
		row := &Row{
			Inserted: revFromYAML(yr.Inserted),
			Deleted:  revFromYAML(yr.Deleted),
		}
		for _, yc := range yr.Cells {
			body, err := blocksFromYAML(yc.Body)
			if err != nil {
				return nil, err
			}
			row.Cells = append(row.Cells, &Cell{
				Body:     body,
				Inserted: revFromYAML(yc.Inserted),
				Deleted:  revFromYAML(yc.Deleted),
			})
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func rangeRunsFromYAML(in []yamlRun) []*Run {
	out := make([]*Run, len(in))
	for i := range in {
		out[i] = runFromYAML(&in[i])
	}
	return out
}

func runFromYAML(yr *yamlRun) *Run {
	r := &Run{
		Props:     RunProps(yr.Props),
		FormatRev: revFromYAML(yr.FormatRev),
		Text:      yr.Text,
	}
	if yr.PrevProps != nil {
		prev := RunProps(*yr.PrevProps)
		r.PrevProps = &prev
	}
	if yr.Object != nil {
		r.Object = &Object{Kind: yr.Object.Kind, Ref: yr.Object.Ref}
	}
	return r
}

func revFromYAML(yr *yamlRev) *Revision {
	if yr == nil {
		return nil
	}
	r := Revision(*yr)
	return &r
}

func blocksToYAML(blocks []Block) []yamlBlock {
	var out []yamlBlock
	for _, b := range blocks {
		switch v := b.(type) {
		case *Paragraph:
			out = append(out, yamlBlock{Paragraph: paragraphToYAML(v)})
		case *Table:
			out = append(out, yamlBlock{Table: tableToYAML(v)})
		}
	}
	return out
}

func paragraphToYAML(p *Paragraph) *yamlParagraph {
	yp := &yamlParagraph{
		MarkInserted: revToYAML(p.MarkInserted),
		MarkDeleted:  revToYAML(p.MarkDeleted),
	}
	for _, in := range p.Runs {
		switch v := in.(type) {
		case *Run:
			yp.Runs = append(yp.Runs, yamlInline{Run: runToYAML(v)})
		case *InsertedRange:
			yp.Runs = append(yp.Runs, yamlInline{Ins: &yamlRange{
				Rev:  yamlRev(v.Rev),
				Runs: rangeRunsToYAML(v.Runs),
			}})
		case *DeletedRange:
			yp.Runs = append(yp.Runs, yamlInline{Del: &yamlRange{
				Rev:  yamlRev(v.Rev),
				Runs: rangeRunsToYAML(v.Runs),
			}})
		}
	}
	return yp
}

func tableToYAML(t *Table) *yamlTable {
	yt := &yamlTable{}
	for _, row := range t.Rows {
		yr := yamlRow{
			Inserted: revToYAML(row.Inserted),
			Deleted:  revToYAML(row.Deleted),
		}
		for _, cell := range row.Cells {
			yr.Cells = append(yr.Cells, yamlCell{
				Body:     blocksToYAML(cell.Body),
				Inserted: revToYAML(cell.Inserted),
				Deleted:  revToYAML(cell.Deleted),
			})
		}
		yt.Rows = append(yt.Rows, yr)
	}
	return yt
}

func rangeRunsToYAML(runs []*Run) []yamlRun {
	out := make([]yamlRun, len(runs))
	for i, r := range runs {
		out[i] = *runToYAML(r)
	}
	return out
}

func runToYAML(r *Run) *yamlRun {
	yr := &yamlRun{
		Text:      r.Text,
		Props:     yamlProps(r.Props),
		FormatRev: revToYAML(r.FormatRev),
	}
	if r.PrevProps != nil {
		prev := yamlProps(*r.PrevProps)
		yr.PrevProps = &prev
	}
	if r.Object != nil {
		yr.Object = &yamlObject{Kind: r.Object.Kind, Ref: r.Object.Ref}
	}
	return yr
}

func revToYAML(r *Revision) *yamlRev {
	if r == nil {
		return nil
	}
	yr := yamlRev(*r)
	return &yr
}
