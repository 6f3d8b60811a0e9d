package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	today := date(2026, time.October, 18)
	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday today", date(2000, time.October, 18), 26},
		{"birthday tomorrow", date(2000, time.October, 19), 25},
		{"birthday yesterday", date(2000, time.October, 17), 26},
		{"earlier month", date(2000, time.March, 30), 26},
		{"later month", date(2000, time.December, 1), 25},
		{"leap day", date(2004, time.February, 29), 22},
		{"born today", today, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.dob, today))
		})
	}
}

func TestAgeRangeBoundsInclusive(t *testing.T) {
	r := AgeRange{Min: 20, Max: 30}
	assert.True(t, r.Contains(20))
	assert.True(t, r.Contains(30))
	assert.False(t, r.Contains(19))
	assert.False(t, r.Contains(31))
	assert.False(t, AgeRange{Min: 30, Max: 20}.Contains(25))
}
