package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Prefixes for generated identifiers.
const (
	PrefixTransaction = "tx"
	PrefixLine        = "ln"
)

// New returns a fresh random identifier such as "tx_0f8c2a1e4b7d4c1f9e3a5b6c7d8e9f01".
func New(prefix string) string {
	u := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return u
	}
	return prefix + "_" + u
}

// NewTransaction returns a fresh transaction id.
func NewTransaction() string { return New(PrefixTransaction) }

// NewLine returns a fresh journal line id.
func NewLine() string { return New(PrefixLine) }

// FormatReference returns a document reference like "INV-2026-001".
func FormatReference(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%04d-%03d", prefix, year, seq)
}

// ParseReference parses "INV-2026-001" into prefix, year, seq.
func ParseReference(ref string) (prefix string, year, seq int, err error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, 0, fmt.Errorf("invalid reference format: %q", ref)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid year in reference %q: %w", ref, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid sequence in reference %q: %w", ref, err)
	}

	return parts[0], year, seq, nil
}

// NextReference returns the next free reference for prefix and year given
// the references already in use. Unparseable references are ignored.
func NextReference(existing []string, prefix string, year int) string {
	maxSeq := 0
	for _, ref := range existing {
		p, y, seq, err := ParseReference(ref)
		if err != nil || p != prefix || y != year {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatReference(prefix, year, maxSeq+1)
}
