package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// weight is one non-zero cell of a term-weight row.
type weight struct {
	col int
	val float64
}

// Index is an immutable TF-IDF representation of a document collection.
// It is safe for concurrent use.
type Index struct {
	docs      []domain.Document
	vocab     map[string]int
	terms     []string
	idf       []float64
	rows      [][]weight
	tokenizer *Tokenizer
}

// Build indexes docs. Document IDs in the returned index are reassigned
// to their position in docs. Build never fails: documents without
// recognised terms get zero rows, and an empty docs slice yields an index
// whose queries fail with domain.ErrEmptyIndex.
func Build(docs []domain.Document, opts ...Option) *Index {
	tok := newConfig(opts).tokenizer()

	idx := &Index{
		docs:      make([]domain.Document, len(docs)),
		vocab:     make(map[string]int),
		tokenizer: tok,
	}

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		doc.ID = i
		idx.docs[i] = doc

		tf := make(map[string]int)
		for _, term := range tok.Tokenize(doc.Text) {
			tf[term]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	// Columns are assigned in lexical order so they do not depend on map
	// iteration order.
	idx.terms = make([]string, 0, len(df))
	for term := range df {
		idx.terms = append(idx.terms, term)
	}
	sort.Strings(idx.terms)

	n := float64(len(docs))
	idx.idf = make([]float64, len(idx.terms))
	for col, term := range idx.terms {
		idx.vocab[term] = col
		idx.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	idx.rows = make([][]weight, len(docs))
	for i, tf := range counts {
		idx.rows[i] = idx.weigh(tf)
	}

	return idx
}

// weigh turns raw term counts into an L2 normalized row sorted by column.
// Terms outside the vocabulary are dropped.
func (idx *Index) weigh(tf map[string]int) []weight {
	row := make([]weight, 0, len(tf))
	var norm float64
	for term, count := range tf {
		col, ok := idx.vocab[term]
		if !ok {
			continue
		}
		w := float64(count) * idx.idf[col]
		row = append(row, weight{col: col, val: w})
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range row {
		row[i].val /= norm
	}
	sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
	return row
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.docs)
}

// VocabularySize returns the number of distinct terms.
func (idx *Index) VocabularySize() int {
	if idx == nil {
		return 0
	}
	return len(idx.terms)
}

// Column returns the vocabulary column of term, if present.
// The term is looked up as the tokenizer would produce it.
func (idx *Index) Column(term string) (int, bool) {
	if idx == nil {
		return 0, false
	}
	terms := idx.tokenizer.Tokenize(term)
	if len(terms) != 1 {
		return 0, false
	}
	col, ok := idx.vocab[terms[0]]
	return col, ok
}

// IDF returns the inverse document frequency of a vocabulary column.
func (idx *Index) IDF(col int) float64 {
	if idx == nil || col < 0 || col >= len(idx.idf) {
		return 0
	}
	return idx.idf[col]
}

// Document returns the indexed document with the given id.
func (idx *Index) Document(id int) (domain.Document, error) {
	if idx.Len() == 0 {
		return domain.Document{}, domain.ErrEmptyIndex
	}
	if id < 0 || id >= len(idx.docs) {
		return domain.Document{}, fmt.Errorf("%w: id %d not in [0, %d)", domain.ErrMissingDocument, id, len(idx.docs))
	}
	return idx.docs[id], nil
}

// TopTerms returns up to n terms of a document ordered by descending
// weight, ties by term.
func (idx *Index) TopTerms(id, n int) ([]string, error) {
	if _, err := idx.Document(id); err != nil {
		return nil, err
	}
	row := append([]weight(nil), idx.rows[id]...)
	sort.Slice(row, func(a, b int) bool {
		if row[a].val != row[b].val {
			return row[a].val > row[b].val
		}
		return row[a].col < row[b].col
	})
	if n > len(row) || n < 0 {
		n = len(row)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = idx.terms[row[i].col]
	}
	return out, nil
}
