// Package address builds the canonical form of a street address and the key
// used to deduplicate properties inside a workspace.
package address

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Defaults applied by the quick lead form, which only asks for a street line.
const (
	DefaultCity  = "Fort Worth"
	DefaultState = "TX"
	DefaultZip   = "76000"
)

type Parts struct {
	Line1 string
	Line2 string
	City  string
	State string
	Zip   string
}

// Normalize renders "line1[ line2], city, state zip".
func Normalize(p Parts) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.Line1))
	if line2 := strings.TrimSpace(p.Line2); line2 != "" {
		b.WriteByte(' ')
		b.WriteString(line2)
	}
	b.WriteString(", ")
	b.WriteString(strings.TrimSpace(p.City))
	b.WriteString(", ")
	b.WriteString(strings.TrimSpace(p.State))
	b.WriteByte(' ')
	b.WriteString(strings.TrimSpace(p.Zip))
	return b.String()
}

// Key lowercases s and drops every whitespace rune.
func Key(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// Hash is the deduplication hash of a normalized address: xxhash64 of Key
// as 16 lowercase hex digits.
func Hash(normalized string) string {
	sum := xxhash.Sum64String(Key(normalized))
	s := strconv.FormatUint(sum, 16)
	if len(s) < 16 {
		s = strings.Repeat("0", 16-len(s)) + s
	}
	return s
}

// Of normalizes p and hashes the result.
func Of(p Parts) (normalized, hash string) {
	normalized = Normalize(p)
	return normalized, Hash(normalized)
}
