package db

import (
	"fmt"

	m "assetmaster/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s Storage) RetrieveAssets(userId uint, filter m.AssetFilter) ([]m.Asset, error) {

	var assets []m.Asset

	tx := s.db.Model(&m.Asset{}).Where("user_id = ?", userId)
	if filter.Category != 0 {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.AssetType != "" {
		tx = tx.Where("asset_type = ?", filter.AssetType)
	}

	result := tx.Order("updated_at desc").Find(&assets)
	if result.Error != nil {
		return nil, result.Error
	}

	s.lg.Info().Msgf("Retrieved %d assets of user %d", len(assets), userId)
	return assets, nil
}

func (s Storage) RetrieveAsset(userId uint, id uuid.UUID) (*m.Asset, error) {

	var asset m.Asset

	result := s.db.Where("id = ? AND user_id = ?", id, userId).First(&asset)
	if result.Error != nil {
		return nil, result.Error
	}

	s.lg.Info().Msgf("Retrieved asset %s", id)
	return &asset, nil
}

func (s Storage) CreateAsset(asset *m.Asset) error {

	result := s.db.Create(asset)
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Created asset %s of user %d", asset.ID, asset.UserID)
	return nil
}

// UpdateAsset overwrites every column except the owner and creation time.
func (s Storage) UpdateAsset(asset *m.Asset) error {

	result := s.db.Model(asset).
		Where("user_id = ?", asset.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(asset)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	s.lg.Info().Msgf("Updated asset %s", asset.ID)
	return nil
}

func (s Storage) DeleteAsset(userId uint, id uuid.UUID) error {

	result := s.db.Where("user_id = ?", userId).Delete(&m.Asset{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	s.lg.Info().Msgf("Deleted asset %s", id)
	return nil
}

// ClearAssetType sets asset_type to null on the user's assets of the given type.
func (s Storage) ClearAssetType(userId uint, assetType string) (int64, error) {

	result := s.db.Model(&m.Asset{}).
		Where("user_id = ? AND asset_type = ?", userId, assetType).
		Update("asset_type", nil)
	if result.Error != nil {
		return 0, result.Error
	}

	s.lg.Info().Msgf("Cleared asset type %s on %d assets of user %d", assetType, result.RowsAffected, userId)
	return result.RowsAffected, nil
}

// RetrieveTargetCandidates returns the in-service assets whose current target has not fired yet.
func (s Storage) RetrieveTargetCandidates() ([]m.Asset, error) {

	var assets []m.Asset

	result := s.db.Model(&m.Asset{}).
		Where("status = ?", m.InService).
		Where(s.db.
			Where("target_cost_type = ? AND target_cost IS NOT NULL AND target_price_notified = ?", m.TargetByPrice, m.Unnotified).
			Or("target_cost_type = ? AND target_date IS NOT NULL AND target_date_notified = ?", m.TargetByDate, m.Unnotified)).
		Order("created_at").
		Find(&assets)
	if result.Error != nil {
		return nil, result.Error
	}

	s.lg.Info().Msgf("Retrieved %d target candidates", len(assets))
	return assets, nil
}

func (s Storage) MarkTargetNotified(id uuid.UUID, targetType m.TargetCostType) error {

	var column string
	switch targetType {
	case m.TargetByPrice:
		column = "target_price_notified"
	case m.TargetByDate:
		column = "target_date_notified"
	default:
		return fmt.Errorf("알림 대상이 아닌 목표 유형 : %s", targetType)
	}

	result := s.db.Model(&m.Asset{ID: id}).UpdateColumn(column, m.Notified)
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Marked %s of asset %s", column, id)
	return nil
}
