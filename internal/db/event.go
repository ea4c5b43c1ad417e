package db

import (
	"errors"

	m "assetmaster/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RetreiveEventIsActive reads the persisted switch of a cron event. An event seen for the first time
// is stored as active. A read failure is treated as inactive so the job does not run blind.
func (s Storage) RetreiveEventIsActive(eventId uint) bool {

	var event m.Event
	err := s.db.Where("id = ?", eventId).First(&event).Error
	switch {
	case err == nil:
		s.lg.Info().Msgf("Event %d active : %t", eventId, event.IsActive)
		return event.IsActive
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(&m.Event{ID: eventId, IsActive: true}).Error; err != nil {
			s.lg.Error().Err(err).Msgf("Event %d 생성 시 오류 발생", eventId)
		}
		return true
	default:
		s.lg.Error().Err(err).Msgf("Event %d 조회 시 오류 발생", eventId)
		return false
	}
}

// UpdateEventIsActive upserts the switch. MySQL reports 0 affected rows for an unchanged value,
// so the row count cannot tell a missing event apart.
func (s Storage) UpdateEventIsActive(eventId uint, isActive bool) error {

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active"}),
	}).Create(&m.Event{ID: eventId, IsActive: isActive})
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Event %d active -> %t", eventId, isActive)
	return nil
}
