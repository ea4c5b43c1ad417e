package cost

import (
	"testing"
	"time"

	m "assetmaster/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func price(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func daysAgo(n int) *time.Time {
	t := now.AddDate(0, 0, -n)
	return &t
}

func byPrice(purchasePrice int64, boughtDaysAgo int, target int64) m.Asset {
	return m.Asset{
		PurchasePrice:  price(purchasePrice),
		PurchaseDate:   m.ToDate(daysAgo(boughtDaysAgo)),
		TargetCostType: m.TargetByPrice,
		TargetCost:     price(target),
	}
}

func TestDaysUsed(t *testing.T) {

	t.Run("구매일 없음", func(t *testing.T) {
		assert.Equal(t, 0, DaysUsed(nil, now))
	})

	t.Run("내림 처리", func(t *testing.T) {
		p := now.Add(-(47*time.Hour + 59*time.Minute))
		assert.Equal(t, 1, DaysUsed(&p, now))
	})

	t.Run("미래 구매일은 절대값", func(t *testing.T) {
		p := now.AddDate(0, 0, 3)
		assert.Equal(t, 3, DaysUsed(&p, now))
	})

	t.Run("당일 구매", func(t *testing.T) {
		p := now.Add(-time.Hour)
		assert.Equal(t, 0, DaysUsed(&p, now))
	})
}

func TestDailyCost(t *testing.T) {

	tests := []struct {
		name  string
		price decimal.NullDecimal
		days  int
		want  string
	}{
		{"정상", price(3650), 365, "10"},
		{"소수", price(3650), 100, "36.5"},
		{"사용일 0", price(3650), 0, "0"},
		{"가격 없음", decimal.NullDecimal{}, 10, "0"},
		{"가격 없음 사용일 0", decimal.NullDecimal{}, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyCost(tt.price, tt.days)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDailyCostProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("daily cost is price divided by days", prop.ForAll(
		func(p int64, d int) bool {
			got := DailyCost(price(p), d)
			return got.Mul(decimal.NewFromInt(int64(d))).Round(6).Equal(decimal.NewFromInt(p))
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 20_000),
	))

	properties.Property("daily cost strictly decreases as days grow", prop.ForAll(
		func(p int64, d int) bool {
			return DailyCost(price(p), d+1).LessThan(DailyCost(price(p), d))
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 20_000),
	))

	properties.TestingRun(t)
}

func TestDaysRemaining(t *testing.T) {

	t.Run("목표 달성: 3650원 365일 목표 10원", func(t *testing.T) {
		a := byPrice(3650, 365, 10)

		assert.True(t, decimal.NewFromInt(10).Equal(DailyCost(a.PurchasePrice, DaysUsed(a.PurchaseTime(), now))))

		r, ok := DaysRemaining(a, now)
		require.True(t, ok)
		assert.Equal(t, 0, r)
	})

	t.Run("목표 미달: 3650원 100일 목표 5원", func(t *testing.T) {
		a := byPrice(3650, 100, 5)

		assert.True(t, decimal.RequireFromString("36.5").Equal(DailyCost(a.PurchasePrice, 100)))

		r, ok := DaysRemaining(a, now)
		require.True(t, ok)
		assert.Equal(t, 630, r)
	})

	t.Run("사용일 0이면 답 없음", func(t *testing.T) {
		a := byPrice(3650, 0, 5)
		_, ok := DaysRemaining(a, now)
		assert.False(t, ok)
	})

	t.Run("필수 값 누락", func(t *testing.T) {
		a := byPrice(3650, 100, 5)
		a.TargetCost = decimal.NullDecimal{}
		_, ok := DaysRemaining(a, now)
		assert.False(t, ok)

		a = byPrice(3650, 100, 5)
		a.PurchaseDate = nil
		_, ok = DaysRemaining(a, now)
		assert.False(t, ok)

		a = byPrice(3650, 100, 0)
		_, ok = DaysRemaining(a, now)
		assert.False(t, ok)
	})

	t.Run("목표 미설정", func(t *testing.T) {
		_, ok := DaysRemaining(m.Asset{PurchasePrice: price(100)}, now)
		assert.False(t, ok)
	})

	t.Run("날짜 목표", func(t *testing.T) {
		target := now.Add(36 * time.Hour)
		a := m.Asset{TargetCostType: m.TargetByDate, TargetDate: m.ToDate(&target)}
		r, ok := DaysRemaining(a, now)
		require.True(t, ok)
		assert.Equal(t, 2, r)

		past := now.AddDate(0, 0, -3)
		a.TargetDate = m.ToDate(&past)
		r, ok = DaysRemaining(a, now)
		require.True(t, ok)
		assert.Equal(t, -3, r)
	})

	t.Run("매일 감소 후 0 유지", func(t *testing.T) {
		a := byPrice(3650, 100, 5)

		prev, ok := DaysRemaining(a, now)
		require.True(t, ok)

		for i := 1; i <= 700; i++ {
			r, ok := DaysRemaining(a, now.AddDate(0, 0, i))
			require.True(t, ok)

			if prev == 0 {
				assert.Equal(t, 0, r, "day %d", i)
				continue
			}
			assert.Less(t, r, prev, "day %d", i)
			assert.GreaterOrEqual(t, r, 0)
			prev = r
		}
		assert.Equal(t, 0, prev)
	})
}

func TestProgressOf(t *testing.T) {
	p := ProgressOf(byPrice(3650, 100, 5), now)

	assert.Equal(t, 100, p.DaysUsed)
	assert.True(t, decimal.RequireFromString("36.5").Equal(p.DailyCost))
	require.NotNil(t, p.DaysRemaining)
	assert.Equal(t, 630, *p.DaysRemaining)

	p = ProgressOf(m.Asset{}, now)
	assert.Nil(t, p.DaysRemaining)
	assert.True(t, p.DailyCost.IsZero())
}
