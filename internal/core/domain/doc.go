// Package domain defines the core business entities for finsim.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One indexable unit of text
//   - Match: A document paired with its similarity score
//   - Collection: A named, wholesale-replaced set of documents
//   - TradingDay and Article: Raw records that sources turn into documents
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
