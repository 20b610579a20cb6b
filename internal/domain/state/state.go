// Package state implements the pure tier/grace/debt state machine (C4): a
// function of (balance, grace-start, now) to a CreditState and the effective
// search cost. Search is never refused; callers always get a cost and a
// state to act on.
package state

// GracePeriodHours is the bounded window after balance first drops to zero
// or below during which search cost remains the normal tier cost.
const GracePeriodHours = 72.0

// DebtCostMultiplier is applied to the base cost once grace has expired.
const DebtCostMultiplier = 2.0

// CreditState is the coarse regime a node's ledger is currently in.
type CreditState string

const (
	Normal CreditState = "NORMAL"
	Grace  CreditState = "GRACE"
	Debt   CreditState = "DEBT"
)

// Allowance is the outcome handed back to a caller deciding whether (and at
// what price) to let a search proceed. Search is never blocked; the caller
// decides whether to prompt the user given EffectiveCost and State.
type Allowance struct {
	State               CreditState
	EffectiveCost       float64
	GraceRemainingHours *float64 // non-nil only in GRACE
	DebtAmount          float64  // max(0, -balance)
}

// Evaluate derives the credit state and search allowance from the current
// balance, an optional grace-start wall-clock timestamp (seconds, same
// clock as now), now (seconds), and the tier's base search cost.
func Evaluate(balance float64, graceStart *float64, now, baseCost float64) Allowance {
	debtAmount := 0.0
	if balance < 0 {
		debtAmount = -balance
	}

	if balance > 0 {
		return Allowance{State: Normal, EffectiveCost: baseCost, DebtAmount: 0}
	}

	// balance <= 0 from here on.
	if graceStart == nil {
		// Fresh-install zero balance: never transitioned into grace.
		return Allowance{State: Normal, EffectiveCost: baseCost, DebtAmount: debtAmount}
	}

	elapsedHours := (now - *graceStart) / 3600.0
	if elapsedHours <= GracePeriodHours {
		remaining := GracePeriodHours - elapsedHours
		return Allowance{
			State:               Grace,
			EffectiveCost:       baseCost,
			GraceRemainingHours: &remaining,
			DebtAmount:          debtAmount,
		}
	}

	return Allowance{
		State:         Debt,
		EffectiveCost: baseCost * DebtCostMultiplier,
		DebtAmount:    debtAmount,
	}
}
