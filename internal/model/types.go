package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
memo. datatypes.Date는 date 타입으로 저장됨. 조회 시 time.Time 으로 변환해서 계산에 사용.
금액은 decimal(20,2) 로 저장. 선택 값은 decimal.NullDecimal 사용.
*/
type Asset struct {
	ID                  uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID              uint      `gorm:"index"`
	Name                string
	Category            Category
	Balance             decimal.Decimal     `gorm:"type:decimal(20,2)"`
	PurchasePrice       decimal.NullDecimal `gorm:"type:decimal(20,2)"`
	PurchaseDate        *datatypes.Date
	Status              Status  `gorm:"default:1"`
	AssetType           *string `gorm:"index;size:100"`
	Tags                datatypes.JSON
	TargetCostType      TargetCostType
	TargetCost          decimal.NullDecimal `gorm:"type:decimal(20,2)"`
	TargetDate          *datatypes.Date
	TargetPriceNotified NotifyState `gorm:"default:0"`
	TargetDateNotified  NotifyState `gorm:"default:0"`
	IsHidden            bool        `gorm:"default:false"`
	IsPinned            bool        `gorm:"default:false"`
	ExcludeFromTotal    bool        `gorm:"default:false"`
	ExcludeFromDailyAvg bool        `gorm:"default:false"`
	Notes               string
	ImageUrl            string
	Emoji               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a Asset) PurchaseTime() *time.Time {
	return dateToTime(a.PurchaseDate)
}

func (a Asset) TargetTime() *time.Time {
	return dateToTime(a.TargetDate)
}

func (a Asset) TagList() []string {
	if len(a.Tags) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(a.Tags, &tags); err != nil {
		return []string{}
	}
	return tags
}

// SetTags keeps the first occurrence of every tag, in input order.
func (a *Asset) SetTags(tags []string) {
	if len(tags) == 0 {
		a.Tags = nil
		return
	}
	seen := make(map[string]bool, len(tags))
	uniq := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		uniq = append(uniq, t)
	}
	b, _ := json.Marshal(uniq)
	a.Tags = datatypes.JSON(b)
}

// NormalizeTarget clears whichever target value does not match the target type.
func (a *Asset) NormalizeTarget() {
	switch a.TargetCostType {
	case TargetByPrice:
		a.TargetDate = nil
	case TargetByDate:
		a.TargetCost = decimal.NullDecimal{}
	default:
		a.TargetCost = decimal.NullDecimal{}
		a.TargetDate = nil
	}
}

func dateToTime(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

func ToDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

type AssetFilter struct {
	Category  Category
	AssetType string
}

// Snapshot is a point-in-time cache of a user's net worth. One row per (user, day).
type Snapshot struct {
	ID            uint
	UserID        uint            `gorm:"uniqueIndex:idx_snapshot_user_date"`
	RecordDate    datatypes.Date  `gorm:"uniqueIndex:idx_snapshot_user_date"`
	TotalNetWorth decimal.Decimal `gorm:"type:decimal(20,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type User struct {
	ID        uint
	Email     string `gorm:"uniqueIndex;size:255"`
	Password  string
	BarkKey   string // AES 암호화 저장
	CreatedAt time.Time
}

type Event struct {
	ID       uint
	IsActive bool
}
