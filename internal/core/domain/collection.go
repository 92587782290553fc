package domain

import "time"

// CollectionKind identifies which document source produced a collection.
type CollectionKind string

// Available collection kinds.
const (
	// CollectionKindNews holds scraped news articles, one document per article.
	CollectionKindNews CollectionKind = "news"

	// CollectionKindTicker holds trading days, one document per CSV row.
	CollectionKindTicker CollectionKind = "ticker"

	// CollectionKindText holds plain text paragraphs.
	CollectionKindText CollectionKind = "text"
)

// IsValid returns true if the kind is recognised.
func (k CollectionKind) IsValid() bool {
	switch k {
	case CollectionKindNews, CollectionKindTicker, CollectionKindText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k CollectionKind) String() string {
	return string(k)
}

// Collection is a named set of documents.
// It is replaced wholesale on every load; there is no incremental update.
type Collection struct {
	// ID is the unique identifier for the collection.
	ID string `json:"id"`

	// Name is the user-facing unique name.
	Name string `json:"name"`

	// Kind is the source type that produced the documents.
	Kind CollectionKind `json:"kind"`

	// Origin describes where the documents came from (file path, URLs).
	Origin string `json:"origin,omitempty"`

	// Documents is the ordered document set. Document.ID equals its position.
	Documents []Document `json:"documents,omitempty"`

	// CreatedAt is when the collection was first loaded.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the collection was last reloaded.
	UpdatedAt time.Time `json:"updated_at"`
}

// Renumber assigns each document its position as ID.
func (c *Collection) Renumber() {
	for i := range c.Documents {
		c.Documents[i].ID = i
	}
}

// FindByKey returns the first document with the given key.
func (c *Collection) FindByKey(key string) (Document, bool) {
	for _, doc := range c.Documents {
		if doc.Key == key {
			return doc, true
		}
	}
	return Document{}, false
}
