package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RoomCategory string

const (
	// CategoryAny is the zero value and matches every room when used
	// as a listing filter.
	CategoryAny      RoomCategory = ""
	CategoryStandard RoomCategory = "STANDARD"
	CategorySuite    RoomCategory = "SUITE"
	CategoryPremium  RoomCategory = "PREMIUM"
)

var (
	suiteMultiplier   = decimal.NewFromFloat(1.15)
	premiumMultiplier = decimal.NewFromFloat(1.30)
	conciergeFee      = decimal.NewFromInt(50)
)

// ParseRoomCategory maps user input to a category. Unrecognized input
// yields CategoryAny so that listing filters degrade to "no filter"
// instead of failing.
func ParseRoomCategory(s string) RoomCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "estandar", "estándar":
		return CategoryStandard
	case "suite":
		return CategorySuite
	case "premium":
		return CategoryPremium
	default:
		return CategoryAny
	}
}

// Room is a bookable hotel room. BaseRate and Category are fixed for
// the lifetime of the room.
type Room struct {
	ID       int64
	Name     string
	BaseRate decimal.Decimal
	Category RoomCategory
	Floor    int
	Capacity int
}

// PriceForStay computes the total cost of a stay of the given number
// of nights under the room's category pricing:
//
//	Standard: base * nights
//	Suite:    base * nights * 1.15
//	Premium:  base * nights * 1.30 + 50 (concierge fee, once per stay)
//
// A non-positive night count prices to zero rather than erroring.
func (r Room) PriceForStay(nights int) decimal.Decimal {
	if nights <= 0 {
		return decimal.Zero
	}

	total := r.BaseRate.Mul(decimal.NewFromInt(int64(nights)))

	switch r.Category {
	case CategorySuite:
		return total.Mul(suiteMultiplier)
	case CategoryPremium:
		return total.Mul(premiumMultiplier).Add(conciergeFee)
	default:
		return total
	}
}

// MatchesCategory reports whether the room passes the given filter.
func (r Room) MatchesCategory(filter RoomCategory) bool {
	return filter == CategoryAny || r.Category == filter
}
