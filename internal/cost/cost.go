// Package cost turns an asset's purchase and target fields into usage figures:
// days used, daily cost and days remaining until the target is reached.
// Every function is pure given the supplied clock value.
package cost

import (
	"math"
	"time"

	m "assetmaster/internal/model"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// DaysUsed returns the whole days between purchaseDate and now, ignoring direction.
func DaysUsed(purchaseDate *time.Time, now time.Time) int {
	if purchaseDate == nil {
		return 0
	}
	diff := now.Sub(*purchaseDate)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / day)
}

// DailyCost amortizes the purchase price over the days used. Missing price or zero days gives 0.
func DailyCost(purchasePrice decimal.NullDecimal, daysUsed int) decimal.Decimal {
	if !purchasePrice.Valid || daysUsed <= 0 {
		return decimal.Zero
	}
	return purchasePrice.Decimal.Div(decimal.NewFromInt(int64(daysUsed)))
}

// DaysRemaining reports how many days are left until the asset's target is met.
// The second return is false when there is no target or not enough data to answer yet.
//
// By date the result may be zero or negative once the date has passed.
// By price the daily cost only falls as days accumulate, so the result shrinks to 0 and stays there.
func DaysRemaining(a m.Asset, now time.Time) (int, bool) {

	switch a.TargetCostType {
	case m.TargetByDate:
		target := a.TargetTime()
		if target == nil {
			return 0, false
		}
		return int(math.Ceil(float64(target.Sub(now)) / float64(day))), true

	case m.TargetByPrice:
		if !a.PurchasePrice.Valid || !a.TargetCost.Valid || a.PurchaseDate == nil {
			return 0, false
		}
		if !a.TargetCost.Decimal.IsPositive() {
			return 0, false
		}

		d := DaysUsed(a.PurchaseTime(), now)
		if d == 0 {
			return 0, false
		}

		if DailyCost(a.PurchasePrice, d).LessThanOrEqual(a.TargetCost.Decimal) {
			return 0, true
		}

		// price / (d + x) = target  =>  x = price / target - d
		totalDaysNeeded := a.PurchasePrice.Decimal.Div(a.TargetCost.Decimal)
		remaining := totalDaysNeeded.Sub(decimal.NewFromInt(int64(d))).Ceil()
		if remaining.IsNegative() {
			return 0, true
		}
		return int(remaining.IntPart()), true
	}

	return 0, false
}

// Progress is the calculator output attached to an asset in API responses.
type Progress struct {
	DaysUsed      int
	DailyCost     decimal.Decimal
	DaysRemaining *int
}

func ProgressOf(a m.Asset, now time.Time) Progress {
	d := DaysUsed(a.PurchaseTime(), now)
	p := Progress{
		DaysUsed:  d,
		DailyCost: DailyCost(a.PurchasePrice, d),
	}
	if r, ok := DaysRemaining(a, now); ok {
		p.DaysRemaining = &r
	}
	return p
}
