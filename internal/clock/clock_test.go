package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateUsesLocation(t *testing.T) {
	instant := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+3", 3*60*60)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Date(instant, loc))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Date(instant, nil))
}

func TestTodayWithFixedClock(t *testing.T) {
	c := Fixed{At: time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), Today(c, time.UTC))
}

func TestAddDays(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), AddDays(start, 30))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), AddDays(start, 60))
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), AddDays(start, 90))
}
