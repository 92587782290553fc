package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// QueryText ranks documents against free text. The text is weighted with
// the idf computed at build time; terms unknown to the index are dropped.
// Text sharing no terms with the index is not an error.
func (idx *Index) QueryText(text string, opts domain.QueryOptions) ([]domain.Match, error) {
	if err := idx.check(opts); err != nil {
		return nil, err
	}

	tf := make(map[string]int)
	for _, term := range idx.tokenizer.Tokenize(text) {
		tf[term]++
	}
	return idx.rank(idx.weigh(tf), -1, opts), nil
}

// QueryDocument ranks documents against an indexed document.
// With opts.ExcludeSelf the document itself is never returned.
func (idx *Index) QueryDocument(id int, opts domain.QueryOptions) ([]domain.Match, error) {
	if err := idx.check(opts); err != nil {
		return nil, err
	}
	if _, err := idx.Document(id); err != nil {
		return nil, err
	}

	self := -1
	if opts.ExcludeSelf {
		self = id
	}
	return idx.rank(idx.rows[id], self, opts), nil
}

func (idx *Index) check(opts domain.QueryOptions) error {
	if opts.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", domain.ErrInvalidQuery, opts.TopK)
	}
	if math.IsNaN(opts.MinScore) || opts.MinScore < 0 {
		return fmt.Errorf("%w: min_score must be non-negative, got %v", domain.ErrInvalidQuery, opts.MinScore)
	}
	if idx.Len() == 0 {
		return domain.ErrEmptyIndex
	}
	return nil
}

// rank scores every row against query, skipping row skip (-1 for none).
// The result is never nil.
func (idx *Index) rank(query []weight, skip int, opts domain.QueryOptions) []domain.Match {
	dense := make(map[int]float64, len(query))
	for _, w := range query {
		dense[w.col] = w.val
	}

	matches := make([]domain.Match, 0, len(idx.docs))
	for i, row := range idx.rows {
		if i == skip {
			continue
		}
		var score float64
		for _, w := range row {
			score += w.val * dense[w.col]
		}
		if score < opts.MinScore {
			continue
		}
		matches = append(matches, domain.Match{Document: idx.docs[i], Score: score})
	}

	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return matches[a].Document.ID < matches[b].Document.ID
	})

	if len(matches) > opts.TopK {
		matches = matches[:opts.TopK]
	}
	return matches
}
