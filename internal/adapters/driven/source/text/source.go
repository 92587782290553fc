// Package text loads plain text files as one document per paragraph.
package text

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// maxLineBytes bounds a single line of input.
const maxLineBytes = 1 << 20

// Source reads paragraphs from a text file.
type Source struct {
	path string
}

// New creates a source for the file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Kind returns domain.CollectionKindText.
func (s *Source) Kind() domain.CollectionKind {
	return domain.CollectionKindText
}

// Origin returns the file path.
func (s *Source) Origin() string {
	return s.path
}

// Load reads the file and splits it into paragraphs.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening text file: %w", err)
	}
	defer f.Close()

	paragraphs, err := Paragraphs(f)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, len(paragraphs))
	for i, p := range paragraphs {
		docs[i] = domain.Document{
			ID:       i,
			Text:     p.Text,
			URI:      s.path,
			Metadata: map[string]string{"line": strconv.Itoa(p.Line)},
		}
	}
	return docs, nil
}

// Paragraph is a run of non-blank lines.
type Paragraph struct {
	// Line is the 1-based line number where the paragraph starts.
	Line int

	// Text is the paragraph's lines joined by single spaces.
	Text string
}

// Paragraphs splits r on blank lines.
func Paragraphs(r io.Reader) ([]Paragraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		out     []Paragraph
		current []string
		start   int
		lineNo  int
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, Paragraph{Line: start, Text: strings.Join(current, " ")})
			current = nil
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		if len(current) == 0 {
			start = lineNo
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	flush()
	return out, nil
}
