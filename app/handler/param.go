package handler

import (
	"errors"
	"fmt"
	"time"

	"assetmaster"
	"assetmaster/internal/cost"
	m "assetmaster/internal/model"

	"github.com/shopspring/decimal"
)

/***************************************************************** request ****************************************************************/

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SaveAssetReq is the body of POST /assets. A present id turns the request into an update.
type SaveAssetReq struct {
	ID                  string           `json:"id" validate:"omitempty,uuid"`
	Name                string           `json:"name" validate:"required,max=255"`
	Category            string           `json:"category" validate:"omitempty,category"`
	Balance             *decimal.Decimal `json:"balance" validate:"required"`
	PurchasePrice       *decimal.Decimal `json:"purchasePrice"`
	PurchaseDate        string           `json:"purchaseDate" validate:"omitempty,date"`
	Status              string           `json:"status" validate:"omitempty,asset_status"`
	AssetType           *string          `json:"assetType"`
	Tags                []string         `json:"tags"`
	TargetCostType      string           `json:"targetCostType" validate:"omitempty,target_type"`
	TargetCost          *decimal.Decimal `json:"targetCost"`
	TargetDate          string           `json:"targetDate" validate:"omitempty,date"`
	IsHidden            bool             `json:"isHidden"`
	IsPinned            bool             `json:"isPinned"`
	ExcludeFromTotal    bool             `json:"excludeFromTotal"`
	ExcludeFromDailyAvg bool             `json:"excludeFromDailyAvg"`
	Notes               string           `json:"notes"`
	ImageUrl            string           `json:"imageUrl"`
	Emoji               string           `json:"emoji"`
}

type EventStatusChangeRequest struct {
	Id     uint `json:"id" validate:"required"`
	Active bool `json:"active"`
}

type EventLaunchRequest struct {
	Id uint `json:"id" validate:"required"`
}

type SettingsRequest struct {
	BarkKey string `json:"barkKey" validate:"max=255"`
}

/***************************************************************** resoponse ****************************************************************/

type JWTResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}

type assetResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Category            string           `json:"category"`
	Balance             decimal.Decimal  `json:"balance"`
	PurchasePrice       *decimal.Decimal `json:"purchasePrice"`
	PurchaseDate        *string          `json:"purchaseDate"`
	Status              string           `json:"status"`
	AssetType           *string          `json:"assetType"`
	Tags                []string         `json:"tags"`
	TargetCostType      string           `json:"targetCostType"`
	TargetCost          *decimal.Decimal `json:"targetCost"`
	TargetDate          *string          `json:"targetDate"`
	TargetPriceNotified bool             `json:"targetPriceNotified"`
	TargetDateNotified  bool             `json:"targetDateNotified"`
	IsHidden            bool             `json:"isHidden"`
	IsPinned            bool             `json:"isPinned"`
	ExcludeFromTotal    bool             `json:"excludeFromTotal"`
	ExcludeFromDailyAvg bool             `json:"excludeFromDailyAvg"`
	Notes               string           `json:"notes"`
	ImageUrl            string           `json:"imageUrl"`
	Emoji               string           `json:"emoji"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
	DaysUsed            int              `json:"daysUsed"`
	DailyCost           decimal.Decimal  `json:"dailyCost"`
	DaysRemaining       *int             `json:"daysRemaining"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type dashboardResponse struct {
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	DailyAverageCost decimal.Decimal   `json:"dailyAverageCost"`
	NetWorth         decimal.Decimal   `json:"netWorth"`
	Assets           []assetResponse   `json:"assets"`
	StatusCounts     cost.StatusCounts `json:"statusCounts"`
	Categories       []string          `json:"categories"`
}

type snapshotResponse struct {
	RecordDate    string          `json:"recordDate"`
	TotalNetWorth decimal.Decimal `json:"totalNetWorth"`
}

type settingsResponse struct {
	BarkKey string `json:"barkKey"`
}

type EventResponse struct {
	Id          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type cronResponse struct {
	Success           bool                             `json:"success"`
	Timestamp         string                           `json:"timestamp"`
	AssetsChecked     int                              `json:"assetsChecked"`
	NotificationsSent int                              `json:"notificationsSent"`
	Notifications     []assetmaster.TargetNotification `json:"notifications"`
	Truncated         bool                             `json:"truncated"`
	Skipped           bool                             `json:"skipped"`
}

/***************************************************************** convert ****************************************************************/

var errDateFormat = errors.New("날짜 형식 오류. YYYY-MM-DD 또는 RFC3339")

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w : %s", errDateFormat, s)
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// toAsset assumes the request already passed validCheck.
func (p SaveAssetReq) toAsset() *m.Asset {

	category, _ := m.ToCategory(p.Category)
	if category == 0 {
		category = m.AssetCategory
	}
	status, _ := m.ToStatus(p.Status)
	targetType, _ := m.ToTargetCostType(p.TargetCostType)

	a := &m.Asset{
		Name:                p.Name,
		Category:            category,
		Balance:             *p.Balance,
		PurchasePrice:       nullDecimal(p.PurchasePrice),
		PurchaseDate:        m.ToDate(optionalDate(p.PurchaseDate)),
		Status:              status,
		AssetType:           p.AssetType,
		TargetCostType:      targetType,
		TargetCost:          nullDecimal(p.TargetCost),
		TargetDate:          m.ToDate(optionalDate(p.TargetDate)),
		IsHidden:            p.IsHidden,
		IsPinned:            p.IsPinned,
		ExcludeFromTotal:    p.ExcludeFromTotal,
		ExcludeFromDailyAvg: p.ExcludeFromDailyAvg,
		Notes:               p.Notes,
		ImageUrl:            p.ImageUrl,
		Emoji:               p.Emoji,
	}
	a.SetTags(p.Tags)
	return a
}

func toAssetResponse(a m.Asset, now time.Time) assetResponse {

	p := cost.ProgressOf(a, now)

	return assetResponse{
		ID:                  a.ID.String(),
		Name:                a.Name,
		Category:            a.Category.String(),
		Balance:             a.Balance,
		PurchasePrice:       decimalPtr(a.PurchasePrice),
		PurchaseDate:        datePtr(a.PurchaseTime()),
		Status:              a.Status.String(),
		AssetType:           a.AssetType,
		Tags:                a.TagList(),
		TargetCostType:      a.TargetCostType.String(),
		TargetCost:          decimalPtr(a.TargetCost),
		TargetDate:          datePtr(a.TargetTime()),
		TargetPriceNotified: a.TargetPriceNotified == m.Notified,
		TargetDateNotified:  a.TargetDateNotified == m.Notified,
		IsHidden:            a.IsHidden,
		IsPinned:            a.IsPinned,
		ExcludeFromTotal:    a.ExcludeFromTotal,
		ExcludeFromDailyAvg: a.ExcludeFromDailyAvg,
		Notes:               a.Notes,
		ImageUrl:            a.ImageUrl,
		Emoji:               a.Emoji,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
		DaysUsed:            p.DaysUsed,
		DailyCost:           p.DailyCost,
		DaysRemaining:       p.DaysRemaining,
	}
}

func toAssetResponses(assets []m.Asset, now time.Time) []assetResponse {
	rtn := make([]assetResponse, len(assets))
	for i, a := range assets {
		rtn[i] = toAssetResponse(a, now)
	}
	return rtn
}
