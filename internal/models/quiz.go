package models

type WeddingStyle string

const (
	StyleTraditional WeddingStyle = "traditional"
	StyleFusion      WeddingStyle = "fusion"
	StyleDestination WeddingStyle = "destination"
)

type BudgetRange string

const (
	BudgetUnder15L BudgetRange = "under15L"
	Budget15To25L  BudgetRange = "15to25L"
	BudgetOver25L  BudgetRange = "over25L"
)

type GuestCount string

const (
	GuestsUnder100 GuestCount = "under100"
	Guests100To300 GuestCount = "100to300"
	GuestsOver300  GuestCount = "over300"
)

// QuizProfile holds the user's quiz selections. At most one per user;
// saving replaces the prior value wholesale.
type QuizProfile struct {
	Style      WeddingStyle `json:"style"`
	Budget     BudgetRange  `json:"budget"`
	GuestCount GuestCount   `json:"guest_count"`
}

// Validate rejects any field outside its enumerated set. Values are never
// coerced.
func (q QuizProfile) Validate() error {
	switch q.Style {
	case StyleTraditional, StyleFusion, StyleDestination:
	default:
		return validationErrorf("invalid wedding style: %q", string(q.Style))
	}
	switch q.Budget {
	case BudgetUnder15L, Budget15To25L, BudgetOver25L:
	default:
		return validationErrorf("invalid budget range: %q", string(q.Budget))
	}
	switch q.GuestCount {
	case GuestsUnder100, Guests100To300, GuestsOver300:
	default:
		return validationErrorf("invalid guest count: %q", string(q.GuestCount))
	}
	return nil
}
