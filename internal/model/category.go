package model

import (
	"errors"
)

type Category uint

const (
	AssetCategory Category = iota + 1
	LiabilityCategory
)

var categoryList = []string{"ASSET", "LIABILITY"}

func (c Category) String() string {
	if c == 0 || int(c) > len(categoryList) {
		return ""
	}
	return categoryList[c-1]
}

func ToCategory(s string) (Category, error) {

	for i, c := range categoryList {
		if s == c {
			return Category(i + 1), nil
		}
	}
	return 0, errors.New("존재하지 않는 카테고리. 입력 값 :" + s)
}

func IsValidCategory(c string) bool {
	_, err := ToCategory(c)
	return err == nil
}

func CategoryList() []string {
	return categoryList
}

// Status is the lifecycle status of an asset. The three values are mutually exclusive.
type Status uint

const (
	InService Status = iota + 1
	Retired
	Sold
)

var statusList = []string{"in-service", "retired", "sold"}

func (s Status) String() string {
	if s == 0 || int(s) > len(statusList) {
		return ""
	}
	return statusList[s-1]
}

// ToStatus falls back to InService for an empty input.
func ToStatus(s string) (Status, error) {
	if s == "" {
		return InService, nil
	}
	for i, st := range statusList {
		if s == st {
			return Status(i + 1), nil
		}
	}
	return 0, errors.New("존재하지 않는 상태. 입력 값 :" + s)
}

func IsValidStatus(s string) bool {
	_, err := ToStatus(s)
	return err == nil
}

func StatusList() []string {
	return statusList
}

type TargetCostType uint

const (
	TargetUnset TargetCostType = iota
	TargetByPrice
	TargetByDate
)

var targetCostTypeList = []string{"unset", "by-price", "by-date"}

func (t TargetCostType) String() string {
	if int(t) >= len(targetCostTypeList) {
		return ""
	}
	return targetCostTypeList[t]
}

func ToTargetCostType(s string) (TargetCostType, error) {
	if s == "" {
		return TargetUnset, nil
	}
	for i, tt := range targetCostTypeList {
		if s == tt {
			return TargetCostType(i), nil
		}
	}
	return 0, errors.New("존재하지 않는 목표 유형. 입력 값 :" + s)
}

func IsValidTargetCostType(s string) bool {
	_, err := ToTargetCostType(s)
	return err == nil
}

// NotifyState tracks one target episode.
// Unnotified -> Notified happens once when the target is reached and a push endpoint exists.
// Notified -> Unnotified happens when the user edits the target (type or value).
type NotifyState uint8

const (
	Unnotified NotifyState = iota
	Notified
)

func (n NotifyState) String() string {
	if n == Notified {
		return "notified"
	}
	return "unnotified"
}
