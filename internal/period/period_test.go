package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse("2025-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, m.Year)
	assert.Equal(t, time.October, m.Month)
	assert.Equal(t, "2025-10", m.String())
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025", "2025-13", "2025-1", "10-2025", "2025-10-01"} {
		_, err := Parse(s)
		assert.Error(t, err, "period %q should not parse", s)
	}
}

func TestNext(t *testing.T) {
	m := Month{Year: 2025, Month: time.October}
	assert.Equal(t, "2025-11", m.Next().String())

	dec := Month{Year: 2025, Month: time.December}
	assert.Equal(t, "2026-01", dec.Next().String())
}

func TestContains(t *testing.T) {
	m := Month{Year: 2025, Month: time.October}
	assert.True(t, m.Contains(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, m.Contains(time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)))
}

func TestOf(t *testing.T) {
	m := Of(time.Date(2025, 10, 14, 12, 30, 0, 0, time.UTC))
	assert.Equal(t, "2025-10", m.String())
}
