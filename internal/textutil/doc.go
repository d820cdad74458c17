// Package textutil provides text processing utilities for patch name search,
// similarity ranking, and filename sanitization.
//
// The primary use cases are:
//   - Normalizing and case-folding patch names for index lookups
//   - Creating token-based fingerprints from names for search ranking
//   - Computing cosine similarity between fingerprints
//   - Sanitizing filenames and path segments for safe filesystem use
//
// Fingerprints use term frequency vectors normalized for efficient comparison.
// The tokenization process lowercases text, splits on non-alphanumeric
// characters, and filters tokens shorter than 2 characters. Patch names are
// short, so the floor is lower than a prose tokenizer would use.
package textutil
