package domain

// Document represents one indexable unit of text.
// Documents are immutable once indexed.
type Document struct {
	// ID is the position of the document within its collection.
	// IDs are dense (0..n-1) and stable for the lifetime of an index.
	ID int `json:"id"`

	// Text is the raw text used for similarity.
	Text string `json:"text"`

	// Key is an optional application-level lookup key,
	// e.g. "08/12/2023|aapl" for a trading day. Never used for similarity.
	Key string `json:"key,omitempty"`

	// Title is the human-readable title, if the source has one.
	Title string `json:"title,omitempty"`

	// URI is the original location (file path, URL, etc).
	URI string `json:"uri,omitempty"`

	// Metadata contains arbitrary source-specific key-value pairs.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DisplayName returns the best label for the document in listings.
func (d Document) DisplayName() string {
	switch {
	case d.Title != "":
		return d.Title
	case d.Key != "":
		return d.Key
	case d.URI != "":
		return d.URI
	default:
		return Snippet(d.Text, 60)
	}
}

// Snippet returns text truncated to at most maxRunes runes, with an
// ellipsis appended when truncation happened.
func Snippet(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
