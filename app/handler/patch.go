package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	m "assetmaster/internal/model"

	"github.com/shopspring/decimal"
)

var errPatchField = errors.New("수정 불가 필드")

// parsePatch turns a partial JSON body into a function applied on the stored asset.
// Absent keys keep the stored value. null clears nullable fields.
func parsePatch(body []byte) (func(*m.Asset), error) {

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("파라미터 BodyParse 시 오류 발생. %w", err)
	}

	var ops []func(*m.Asset)

	for k, v := range raw {
		op, err := patchField(k, v)
		if err != nil {
			return nil, fmt.Errorf("%s 파라미터 오류. %w", k, err)
		}
		if op != nil {
			ops = append(ops, op)
		}
	}

	return func(a *m.Asset) {
		for _, op := range ops {
			op(a)
		}
	}, nil
}

func patchField(key string, v json.RawMessage) (func(*m.Asset), error) {

	isNull := strings.TrimSpace(string(v)) == "null"

	switch key {
	case "id", "userId", "createdAt", "updatedAt":
		return nil, nil
	case "name":
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		if s == "" || len(s) > 255 {
			return nil, errors.New("이름은 1~255자")
		}
		return func(a *m.Asset) { a.Name = s }, nil
	case "category":
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		c, err := m.ToCategory(s)
		if err != nil {
			return nil, err
		}
		return func(a *m.Asset) { a.Category = c }, nil
	case "balance":
		var d decimal.NullDecimal
		if err := json.Unmarshal(v, &d); err != nil {
			return nil, err
		}
		if !d.Valid {
			return nil, errors.New("balance 는 null 불가")
		}
		return func(a *m.Asset) { a.Balance = d.Decimal }, nil
	case "purchasePrice", "targetCost":
		var d decimal.NullDecimal
		if err := json.Unmarshal(v, &d); err != nil {
			return nil, err
		}
		if key == "purchasePrice" {
			return func(a *m.Asset) { a.PurchasePrice = d }, nil
		}
		return func(a *m.Asset) { a.TargetCost = d }, nil
	case "purchaseDate", "targetDate":
		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		if s != nil && *s != "" {
			if _, err := parseDate(*s); err != nil {
				return nil, err
			}
		}
		date := m.ToDate(nil)
		if s != nil {
			date = m.ToDate(optionalDate(*s))
		}
		if key == "purchaseDate" {
			return func(a *m.Asset) { a.PurchaseDate = date }, nil
		}
		return func(a *m.Asset) { a.TargetDate = date }, nil
	case "status":
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		st, err := m.ToStatus(s)
		if err != nil {
			return nil, err
		}
		return func(a *m.Asset) { a.Status = st }, nil
	case "assetType":
		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		if s != nil && *s == "" {
			s = nil
		}
		return func(a *m.Asset) { a.AssetType = s }, nil
	case "tags":
		var tags []string
		if err := json.Unmarshal(v, &tags); err != nil {
			return nil, err
		}
		return func(a *m.Asset) { a.SetTags(tags) }, nil
	case "targetCostType":
		var s string
		if !isNull {
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, err
			}
		}
		t, err := m.ToTargetCostType(s)
		if err != nil {
			return nil, err
		}
		return func(a *m.Asset) { a.TargetCostType = t }, nil
	case "isHidden", "isPinned", "excludeFromTotal", "excludeFromDailyAvg":
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return nil, err
		}
		return boolField(key, b), nil
	case "notes", "imageUrl", "emoji":
		var s string
		if !isNull {
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, err
			}
		}
		return stringField(key, s), nil
	}

	return nil, fmt.Errorf("%w : %s", errPatchField, key)
}

func boolField(key string, b bool) func(*m.Asset) {
	switch key {
	case "isHidden":
		return func(a *m.Asset) { a.IsHidden = b }
	case "isPinned":
		return func(a *m.Asset) { a.IsPinned = b }
	case "excludeFromTotal":
		return func(a *m.Asset) { a.ExcludeFromTotal = b }
	default:
		return func(a *m.Asset) { a.ExcludeFromDailyAvg = b }
	}
}

func stringField(key string, s string) func(*m.Asset) {
	switch key {
	case "notes":
		return func(a *m.Asset) { a.Notes = s }
	case "imageUrl":
		return func(a *m.Asset) { a.ImageUrl = s }
	default:
		return func(a *m.Asset) { a.Emoji = s }
	}
}
