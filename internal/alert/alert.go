// Package alert decides when an asset deserves a push notification.
//
// Three alerts exist:
//   - balance change: stateless, fires on an update when the balance moved by at least BalanceChangeThreshold.
//   - target price: fires once per target episode when the daily cost drops to the target cost.
//   - target date: fires once per target episode when today reaches the target date.
//
// The two target alerts are tracked by an m.NotifyState per asset. ResetOnEdit starts a new
// episode whenever the user changes the target.
package alert

import (
	"time"

	"assetmaster/internal/cost"
	m "assetmaster/internal/model"

	"github.com/shopspring/decimal"
)

const BalanceChangeThreshold = 10000

var balanceThreshold = decimal.NewFromInt(BalanceChangeThreshold)

// BalanceChanged is true when |newBalance - oldBalance| >= BalanceChangeThreshold.
func BalanceChanged(oldBalance, newBalance decimal.Decimal) bool {
	return newBalance.Sub(oldBalance).Abs().GreaterThanOrEqual(balanceThreshold)
}

// TargetPriceDue returns the current daily cost and whether the by-price target alert should fire.
func TargetPriceDue(a m.Asset, now time.Time) (decimal.Decimal, bool) {

	if a.Status != m.InService || a.TargetCostType != m.TargetByPrice || a.TargetPriceNotified != m.Unnotified {
		return decimal.Zero, false
	}
	if !a.TargetCost.Valid || !a.PurchasePrice.Valid || a.PurchaseDate == nil {
		return decimal.Zero, false
	}

	d := cost.DaysUsed(a.PurchaseTime(), now)
	if d == 0 {
		return decimal.Zero, false
	}

	dailyCost := cost.DailyCost(a.PurchasePrice, d)
	return dailyCost, dailyCost.LessThanOrEqual(a.TargetCost.Decimal)
}

// TargetDateDue compares calendar days only; the time of day on either side is ignored.
func TargetDateDue(a m.Asset, now time.Time) bool {

	if a.Status != m.InService || a.TargetCostType != m.TargetByDate || a.TargetDateNotified != m.Unnotified {
		return false
	}
	target := a.TargetTime()
	if target == nil {
		return false
	}

	return !calendarDay(now).Before(calendarDay(*target))
}

// ResetOnEdit carries the notify states of prev into next and resets the ones whose
// target changed. A nil prev means a new asset, which starts unnotified.
func ResetOnEdit(prev *m.Asset, next *m.Asset) {

	if prev == nil {
		next.TargetPriceNotified = m.Unnotified
		next.TargetDateNotified = m.Unnotified
		return
	}

	next.TargetPriceNotified = prev.TargetPriceNotified
	next.TargetDateNotified = prev.TargetDateNotified

	wasPrice, isPrice := prev.TargetCostType == m.TargetByPrice, next.TargetCostType == m.TargetByPrice
	if wasPrice != isPrice || !sameAmount(prev.TargetCost, next.TargetCost) {
		next.TargetPriceNotified = m.Unnotified
	}

	wasDate, isDate := prev.TargetCostType == m.TargetByDate, next.TargetCostType == m.TargetByDate
	if wasDate != isDate || !sameDay(prev.TargetTime(), next.TargetTime()) {
		next.TargetDateNotified = m.Unnotified
	}
}

func sameAmount(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return calendarDay(*a).Equal(calendarDay(*b))
}

func calendarDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
