package gym

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoursFor(t *testing.T) {
	g := &Gym{
		WeekdayOpen:  "06:00",
		WeekdayClose: "22:00",
		WeekendOpen:  "08:00",
		WeekendClose: "20:00",
	}

	tests := []struct {
		date      string
		wantOpen  string
		wantClose string
	}{
		{"2025-06-02", "06:00", "22:00"}, // Monday
		{"2025-06-06", "06:00", "22:00"}, // Friday
		{"2025-06-07", "08:00", "20:00"}, // Saturday
		{"2025-06-08", "08:00", "20:00"}, // Sunday
	}

	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.date)
		assert.NoError(t, err)

		open, close := g.HoursFor(date)
		assert.Equal(t, tt.wantOpen, open, tt.date)
		assert.Equal(t, tt.wantClose, close, tt.date)
	}
}

func TestSummary(t *testing.T) {
	g := &Gym{ID: 3, Name: "Riverside", Address: "1 River Rd", Capacity: 25}

	s := g.Summary()

	assert.Equal(t, 3, s.ID)
	assert.Equal(t, "Riverside", s.Name)
	assert.Equal(t, 25, s.Capacity)
}
