// Package ticker loads trading-day price history from delimited files.
// Each row becomes one document whose text is the row's open, high, low
// and close prices followed by the ticker symbol.
package ticker

import (
	"context"
	"encoding/csv"
	"errors"
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

// DefaultDelimiter separates fields in ticker history files.
const DefaultDelimiter = ';'

// requiredColumns must all be present in the header, in any order.
var requiredColumns = []string{"date", "open", "high", "low", "close", "ticker"}

// Source reads a ticker history file.
type Source struct {
	path      string
	delimiter rune
}

// Option configures a Source.
type Option func(*Source)

// WithDelimiter overrides the field delimiter.
func WithDelimiter(r rune) Option {
	return func(s *Source) {
		s.delimiter = r
	}
}

// New creates a source for the file at path.
func New(path string, opts ...Option) *Source {
	s := &Source{path: path, delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns domain.CollectionKindTicker.
func (s *Source) Kind() domain.CollectionKind {
	return domain.CollectionKindTicker
}

// Origin returns the file path.
func (s *Source) Origin() string {
	return s.path
}

// Load reads every row of the file.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening ticker file: %w", err)
	}
	defer f.Close()

	return Parse(f, s.delimiter)
}

// Parse converts delimited rows into documents, one per trading day.
func Parse(r io.Reader, delimiter rune) ([]domain.Document, error) {
	days, err := ParseDays(r, delimiter)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, len(days))
	for i, day := range days {
		docs[i] = domain.Document{
			ID:    i,
			Text:  day.FeatureText(),
			Key:   day.Key(),
			Title: day.Date + " " + strings.ToUpper(day.Ticker),
			Metadata: map[string]string{
				"date":   day.Date,
				"ticker": day.Ticker,
				"open":   strconv.FormatFloat(day.Open, 'f', -1, 64),
				"high":   strconv.FormatFloat(day.High, 'f', -1, 64),
				"low":    strconv.FormatFloat(day.Low, 'f', -1, 64),
				"close":  strconv.FormatFloat(day.Close, 'f', -1, 64),
			},
		}
	}
	return docs, nil
}

// ParseDays reads the header and every data row.
func ParseDays(r io.Reader, delimiter rune) ([]domain.TradingDay, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: ticker file has no header", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", domain.ErrInvalidInput, err)
	}

	columns, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var days []domain.TradingDay
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		line, _ := reader.FieldPos(0)
		day, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidInput, line, err)
		}
		days = append(days, day)
	}
	return days, nil
}

func columnIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: ticker file missing columns: %s",
			domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseRow(record []string, columns map[string]int) (domain.TradingDay, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[columns[name]])
	}

	day := domain.TradingDay{
		Date:   field("date"),
		Ticker: field("ticker"),
	}
	if day.Date == "" {
		return day, errors.New("empty date")
	}
	if day.Ticker == "" {
		return day, errors.New("empty ticker")
	}

	prices := []struct {
		name string
		dst  *float64
	}{
		{"open", &day.Open},
		{"high", &day.High},
		{"low", &day.Low},
		{"close", &day.Close},
	}
	for _, p := range prices {
		v, err := strconv.ParseFloat(field(p.name), 64)
		if err != nil {
			return day, fmt.Errorf("column %s: %q is not a number", p.name, field(p.name))
		}
		*p.dst = v
	}
	return day, nil
}
