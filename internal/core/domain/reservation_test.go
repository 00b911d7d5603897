package domain_test

import (
	"testing"
	"time"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	res := &domain.Reservation{CheckIn: day(10), CheckOut: day(13)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical interval", day(10), day(13), true},
		{"contained interval", day(11), day(12), true},
		{"containing interval", day(9), day(14), true},
		{"overlap at tail", day(12), day(15), true},
		{"overlap at head", day(8), day(11), true},
		{"adjacent after checkout", day(13), day(15), false},
		{"adjacent before checkin", day(8), day(10), false},
		{"disjoint later", day(20), day(22), false},
		{"empty range", day(11), day(11), false},
		{"inverted range", day(12), day(11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, res.Overlaps(tt.start, tt.end))
		})
	}
}

func TestNights(t *testing.T) {
	res := &domain.Reservation{CheckIn: day(10), CheckOut: day(13)}
	assert.Equal(t, 3, res.Nights())

	oneNight := &domain.Reservation{CheckIn: day(10), CheckOut: day(11)}
	assert.Equal(t, 1, oneNight.Nights())
}

func TestIsConfirmed(t *testing.T) {
	res := &domain.Reservation{Status: domain.ReservationConfirmed}
	assert.True(t, res.IsConfirmed())

	res.Status = domain.ReservationCancelled
	assert.False(t, res.IsConfirmed())
}
