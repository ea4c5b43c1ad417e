package cost

import (
	"time"

	m "assetmaster/internal/model"

	"github.com/shopspring/decimal"
)

// NetWorth is the signed sum of balances. Liabilities are subtracted.
// Status and exclude flags do not apply.
func NetWorth(assets []m.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		if a.Category == m.LiabilityCategory {
			total = total.Sub(a.Balance)
		} else {
			total = total.Add(a.Balance)
		}
	}
	return total
}

type StatusCounts struct {
	Active  int `json:"active"`
	Retired int `json:"retired"`
	Sold    int `json:"sold"`
}

// Summary holds the dashboard figures. TotalAssets (purchase price of in-service assets)
// and NetWorth (signed balances of everything) are separate aggregates.
type Summary struct {
	TotalAssets      decimal.Decimal
	DailyAverageCost decimal.Decimal
	NetWorth         decimal.Decimal
	StatusCounts     StatusCounts
	Categories       []string
}

func Summarize(assets []m.Asset, now time.Time) Summary {

	s := Summary{
		TotalAssets:      decimal.Zero,
		DailyAverageCost: decimal.Zero,
		NetWorth:         NetWorth(assets),
		Categories:       Categories(assets),
	}

	for _, a := range assets {
		switch a.Status {
		case m.InService:
			s.StatusCounts.Active++
		case m.Retired:
			s.StatusCounts.Retired++
		case m.Sold:
			s.StatusCounts.Sold++
		}

		if a.Status != m.InService || !a.PurchasePrice.Valid {
			continue
		}

		if !a.ExcludeFromTotal {
			s.TotalAssets = s.TotalAssets.Add(a.PurchasePrice.Decimal)
		}

		if !a.ExcludeFromDailyAvg && a.PurchaseDate != nil {
			// 당일 구매 자산은 1일로 계산
			d := max(1, DaysUsed(a.PurchaseTime(), now))
			s.DailyAverageCost = s.DailyAverageCost.Add(DailyCost(a.PurchasePrice, d))
		}
	}

	return s
}

// Categories lists the distinct user-defined asset types in first-seen order.
func Categories(assets []m.Asset) []string {
	seen := make(map[string]bool)
	rtn := make([]string, 0)
	for _, a := range assets {
		if a.AssetType == nil || seen[*a.AssetType] {
			continue
		}
		seen[*a.AssetType] = true
		rtn = append(rtn, *a.AssetType)
	}
	return rtn
}
