package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

var utf8BOM = []byte("\ufeff")

// Calculator computes checksums of source file content.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator with SHA-256 and hex encoding.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256(c.normalize(content))
	return hex.EncodeToString(hash[:])
}

// normalize strips the BOM, unifies line endings, trims trailing blanks and
// drops empty lines. Every kept line is terminated by a single LF.
func (c SHA256) normalize(content []byte) []byte {
	content = bytes.TrimPrefix(content, utf8BOM)

	out := make([]byte, 0, len(content))
	for len(content) > 0 {
		end := bytes.IndexAny(content, "\r\n")
		var line []byte
		if end < 0 {
			line, content = content, nil
		} else {
			line = content[:end]
			if content[end] == '\r' && end+1 < len(content) && content[end+1] == '\n' {
				end++
			}
			content = content[end+1:]
		}

		line = bytes.TrimRight(line, " \t")
		if len(line) == 0 {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}
