// Package docxio bridges .docx containers into the comparison document
// model.
//
// The adapter is a text-level bridge: body paragraphs and their run text
// map into the model, one run per container run. Container-level
// structures the bridge does not map (section properties, headers,
// embedded parts) are skipped; comparison of such documents covers their
// paragraph text.
package docxio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/roach88/redline/internal/doc"
)

// LoadFile reads a .docx file and returns its body as a document tree.
func LoadFile(path string) (*doc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a .docx container from r and returns its body as a
// document tree.
func Load(r io.Reader) (*doc.Document, error) {
	// go-docx needs a ReadSeeker+size, so stage through a temp file.
	tmp, err := os.CreateTemp("", "redline-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	parsed, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &doc.Document{}
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		out.Body = append(out.Body, convertParagraph(para))
	}
	return out, nil
}

func convertParagraph(para *docx.Paragraph) *doc.Paragraph {
	p := &doc.Paragraph{}
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		if buf.Len() == 0 {
			continue
		}
		p.Runs = append(p.Runs, &doc.Run{Text: buf.String()})
	}
	return p
}
