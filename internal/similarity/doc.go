// Package similarity implements nearest-match retrieval over a small
// in-memory document collection using TF-IDF weighting and cosine
// similarity.
//
// An Index is built once from an ordered document set and is immutable
// afterwards; rebuilding is the only way to change it. Queries are pure
// and safe for concurrent use.
//
// # Weighting
//
// Terms are case-folded runs of two or more word characters: Unicode
// letters, numbers of any category and underscores. A combining mark ends
// a run. For N documents and a term t appearing in df(t) of them:
//
//	idf(t)    = ln((1 + N) / (1 + df(t))) + 1
//	weight    = count(t in d) * idf(t)
//
// Each document row is then L2 normalized, so the cosine similarity of
// two rows is their dot product. Rows without recognised terms stay zero
// and never match anything.
//
// # Ranking
//
// Candidates are ordered by descending score with ties broken by
// ascending document id, filtered by a minimum score and truncated to
// top-k. An empty result means no sufficiently similar document exists.
package similarity
