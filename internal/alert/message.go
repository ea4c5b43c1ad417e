package alert

import (
	"fmt"

	m "assetmaster/internal/model"

	"github.com/shopspring/decimal"
)

const (
	balanceTitle     = "Asset balance changed"
	targetPriceTitle = "🎯 Target daily cost reached"
	targetDateTitle  = "Target date reached"
)

func BalanceMessage(a m.Asset) (title, body string) {
	return balanceTitle, fmt.Sprintf("You updated %s. Current balance: ¥%s", a.Name, a.Balance.StringFixed(2))
}

func TargetPriceMessage(a m.Asset, dailyCost decimal.Decimal) (title, body string) {
	return targetPriceTitle, fmt.Sprintf("%s reached its daily cost target. Now ¥%s/day, target ¥%s/day",
		a.Name, dailyCost.StringFixed(2), a.TargetCost.Decimal.StringFixed(2))
}

func TargetDateMessage(a m.Asset) (title, body string) {
	target := ""
	if t := a.TargetTime(); t != nil {
		target = t.Format("2006-01-02")
	}
	return targetDateTitle, fmt.Sprintf("%s reached its target date %s", a.Name, target)
}
