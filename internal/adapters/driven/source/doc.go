// Package source groups the driven adapters that produce documents for a
// collection load. Each subpackage implements driven.DocumentSource:
//
//   - ticker: trading-day rows from a delimited price history file
//   - news: articles scraped from finance news listing pages
//   - text: blank-line separated paragraphs from a plain text file
//
// Sources own all I/O. The retrieval core only ever sees the documents
// they return.
package source
