package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/hotel_reservation/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPriceForStay_ByCategory(t *testing.T) {
	tests := []struct {
		name     string
		category domain.RoomCategory
		baseRate float64
		nights   int
		want     float64
	}{
		{"standard is linear", domain.CategoryStandard, 100.0, 3, 300.0},
		{"suite adds 15 percent", domain.CategorySuite, 100.0, 3, 345.0},
		{"premium adds 30 percent plus concierge fee", domain.CategoryPremium, 100.0, 3, 440.0},
		{"premium fee applies once per stay", domain.CategoryPremium, 250.0, 1, 375.0},
		{"single night standard", domain.CategoryStandard, 110.0, 1, 110.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := domain.Room{
				ID:       101,
				BaseRate: decimal.NewFromFloat(tt.baseRate),
				Category: tt.category,
			}

			got := room.PriceForStay(tt.nights)

			assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)),
				"got %s, want %v", got, tt.want)
		})
	}
}

func TestPriceForStay_ClampsNonPositiveNights(t *testing.T) {
	room := domain.Room{BaseRate: decimal.NewFromInt(100), Category: domain.CategoryPremium}

	assert.True(t, room.PriceForStay(0).IsZero())
	assert.True(t, room.PriceForStay(-3).IsZero())
}

func TestParseRoomCategory(t *testing.T) {
	tests := []struct {
		input string
		want  domain.RoomCategory
	}{
		{"standard", domain.CategoryStandard},
		{"STANDARD", domain.CategoryStandard},
		{"estandar", domain.CategoryStandard},
		{"Estándar", domain.CategoryStandard},
		{"Suite", domain.CategorySuite},
		{"premium", domain.CategoryPremium},
		{"  premium  ", domain.CategoryPremium},
		{"", domain.CategoryAny},
		{"penthouse", domain.CategoryAny},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseRoomCategory(tt.input), "input %q", tt.input)
	}
}

func TestMatchesCategory(t *testing.T) {
	suite := domain.Room{Category: domain.CategorySuite}

	assert.True(t, suite.MatchesCategory(domain.CategoryAny))
	assert.True(t, suite.MatchesCategory(domain.CategorySuite))
	assert.False(t, suite.MatchesCategory(domain.CategoryStandard))
}
