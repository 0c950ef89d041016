package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := NewTransaction()
	b := NewTransaction()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "tx_"))
	assert.Len(t, a, len("tx_")+32)

	assert.True(t, strings.HasPrefix(NewLine(), "ln_"))
	assert.Len(t, New(""), 32)
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "INV-2026-001", FormatReference("INV", 2026, 1))
	assert.Equal(t, "PAY-2025-042", FormatReference("PAY", 2025, 42))
	assert.Equal(t, "BILL-2025-1000", FormatReference("BILL", 2025, 1000))
}

func TestParseReference(t *testing.T) {
	prefix, year, seq, err := ParseReference("INV-2026-007")
	require.NoError(t, err)
	assert.Equal(t, "INV", prefix)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 7, seq)
}

func TestParseReference_Invalid(t *testing.T) {
	tests := []string{
		"",
		"INV",
		"INV-2026",
		"-2026-001",
		"INV-abcd-001",
		"INV-2026-xyz",
		"PAY-001",
	}
	for _, ref := range tests {
		_, _, _, err := ParseReference(ref)
		assert.Error(t, err, "ParseReference(%q) should fail", ref)
	}
}

func TestNextReference(t *testing.T) {
	existing := []string{"INV-2026-001", "INV-2026-003", "INV-2025-009", "PAY-2026-004", "SUB-001", ""}

	assert.Equal(t, "INV-2026-004", NextReference(existing, "INV", 2026))
	assert.Equal(t, "INV-2025-010", NextReference(existing, "INV", 2025))
	assert.Equal(t, "PAY-2026-005", NextReference(existing, "PAY", 2026))
	assert.Equal(t, "BILL-2026-001", NextReference(existing, "BILL", 2026))
	assert.Equal(t, "INV-2026-001", NextReference(nil, "INV", 2026))
}
