package similarity

import "strings"

// Option configures Build and NewTokenizer.
type Option func(*config)

type config struct {
	stopWords []string
	stem      bool
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) tokenizer() *Tokenizer {
	t := &Tokenizer{stem: c.stem}
	if len(c.stopWords) > 0 {
		t.stopWords = make(map[string]struct{}, len(c.stopWords))
		for _, w := range c.stopWords {
			t.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
	return t
}

// WithEnglishStopWords removes the built-in English stop-word list.
func WithEnglishStopWords() Option {
	return WithStopWords(EnglishStopWords())
}

// WithStopWords removes the given words. Calls accumulate.
func WithStopWords(words []string) Option {
	return func(c *config) {
		c.stopWords = append(c.stopWords, words...)
	}
}

// WithStemming reduces terms to their Snowball English stem.
func WithStemming() Option {
	return func(c *config) {
		c.stem = true
	}
}
