// Package checksum fingerprints bulk-load source files.
//
// Two digests are computed for every file:
//
//   - Raw checksum: hash of the exact bytes (detects every change)
//   - Normalized checksum: hash after removing export noise, so the same data
//     saved by different tools yields the same value
//
// # Normalization Strategy
//
//  1. Drop a leading UTF-8 byte order mark
//  2. Convert CRLF and CR line endings to LF
//  3. Trim trailing spaces and tabs from every line
//  4. Drop blank lines
//
// Case and field content are never altered; CSV data is case-sensitive.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
