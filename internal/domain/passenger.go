package domain

import "fmt"

type BenefitType string

const (
	BenefitNone      BenefitType = "NONE"
	BenefitStudent   BenefitType = "STUDENT"
	BenefitPensioner BenefitType = "PENSIONER"
	BenefitCombatant BenefitType = "COMBATANT"
)

// ParseBenefitType maps a stored value onto a known benefit type. Unknown
// values fall back to NONE with ok=false so the caller can surface the
// data-quality problem instead of swallowing it.
func ParseBenefitType(value string) (BenefitType, bool) {
	switch BenefitType(value) {
	case BenefitNone, BenefitStudent, BenefitPensioner, BenefitCombatant:
		return BenefitType(value), true
	}
	return BenefitNone, false
}

// discountPercent is the fare discount granted by each benefit type,
// in whole percent.
func (b BenefitType) discountPercent() int64 {
	switch b {
	case BenefitStudent:
		return 20
	case BenefitPensioner:
		return 15
	case BenefitCombatant:
		return 50
	}
	return 0
}

// FinalFareCents applies the benefit discount to a base price and rounds
// half-up to whole cents. The result is computed once at booking time and
// frozen on the ticket.
func FinalFareCents(baseCents int64, benefit BenefitType) int64 {
	return (baseCents*(100-benefit.discountPercent()) + 50) / 100
}

// Passenger identity is the (documentType, documentNumber) pair; the
// registry keeps it unique.
type Passenger struct {
	ID             int64
	FullName       string
	DocumentType   string
	DocumentNumber string
	PhoneNumber    string
	Email          string
	Benefit        BenefitType
}

func (p *Passenger) Validate() error {
	if p.FullName == "" {
		return fmt.Errorf("%w: passenger full name is required", ErrInvalid)
	}
	if p.DocumentType == "" {
		return fmt.Errorf("%w: passenger document type is required", ErrInvalid)
	}
	if p.DocumentNumber == "" {
		return fmt.Errorf("%w: passenger document number is required", ErrInvalid)
	}
	if p.PhoneNumber == "" {
		return fmt.Errorf("%w: passenger phone number is required", ErrInvalid)
	}
	if _, ok := ParseBenefitType(string(p.Benefit)); !ok {
		return fmt.Errorf("%w: unknown benefit type %q", ErrInvalid, p.Benefit)
	}
	return nil
}
