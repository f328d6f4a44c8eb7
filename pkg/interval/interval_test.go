package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	at := time.Date(2025, 10, 17, 14, 32, 9, 0, time.UTC)
	start, end := Day(at)

	assert.Equal(t, time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC), end)
}

func TestDayIsHalfOpen(t *testing.T) {
	at := time.Date(2025, 10, 17, 8, 0, 0, 0, time.UTC)
	start, end := Day(at)

	assert.True(t, Contains(start, end, start), "start is inclusive")
	assert.True(t, Contains(start, end, end.Add(-time.Nanosecond)))
	assert.False(t, Contains(start, end, end), "end is exclusive")
	assert.False(t, Contains(start, end, start.Add(-time.Nanosecond)))
}

func TestPrior(t *testing.T) {
	from := time.Date(2025, 10, 17, 23, 59, 0, 0, time.UTC)
	start, end := Prior(7, from)

	assert.Equal(t, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC), end)
}

func TestPriorZeroDaysIsSingleDay(t *testing.T) {
	from := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start, end := Prior(0, from)

	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
