package domain

import (
	"strconv"
	"strings"
)

// TradingDay is one row of ticker price history.
type TradingDay struct {
	Date   string
	Ticker string
	Open   float64
	High   float64
	Low    float64
	Close  float64
}

// FeatureText returns the text used to compare trading days:
// open, high, low, close and ticker joined by single spaces.
func (d TradingDay) FeatureText() string {
	fields := []string{
		formatPrice(d.Open),
		formatPrice(d.High),
		formatPrice(d.Low),
		formatPrice(d.Close),
		d.Ticker,
	}
	return strings.Join(fields, " ")
}

// Key returns the lookup key for the day.
func (d TradingDay) Key() string {
	return TradingDayKey(d.Date, d.Ticker)
}

// TradingDayKey builds the lookup key for a date and ticker pair.
// Tickers compare case-insensitively.
func TradingDayKey(date, ticker string) string {
	return strings.TrimSpace(date) + "|" + strings.ToLower(strings.TrimSpace(ticker))
}

// formatPrice renders a price the way a float column prints: whole values
// keep one decimal ("150.0").
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Article is a scraped news article.
type Article struct {
	// Title is the headline shown on the listing page.
	Title string

	// Link is the absolute article URL.
	Link string

	// Paragraphs is the lower-cased text of each <p> element.
	Paragraphs []string
}

// Text joins the article paragraphs into a single document body.
func (a Article) Text() string {
	return strings.Join(a.Paragraphs, ".")
}
