package db

import (
	"errors"
	"fmt"

	m "assetmaster/internal/model"

	"gorm.io/gorm"
)

func (s Storage) SaveUser(user *m.User) error {

	result := s.db.Create(user)
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Created user %d", user.ID)
	return nil
}

func (s Storage) User(email string) (*m.User, error) {

	var user m.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	s.lg.Info().Msgf("Retrieved user with email %s", email)
	return &user, nil
}

func (s Storage) RetrieveUserIds() ([]uint, error) {

	var ids []uint
	result := s.db.Model(&m.User{}).Order("id").Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// NotificationKey returns the plain bark key of the user. An empty string means notifications are off.
func (s Storage) NotificationKey(userId uint) (string, error) {

	var user m.User
	result := s.db.Select("id", "bark_key").Where("id = ?", userId).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	key, err := s.sealer.Open(user.BarkKey)
	if err != nil {
		return "", fmt.Errorf("bark key 복호화 시 오류 발생. %w", err)
	}
	return key, nil
}

func (s Storage) SaveNotificationKey(userId uint, key string) error {

	stored, err := s.sealer.Seal(key)
	if err != nil {
		return fmt.Errorf("bark key 암호화 시 오류 발생. %w", err)
	}

	// RowsAffected is 0 for an unchanged key on MySQL. The user id comes from a verified token.
	result := s.db.Model(&m.User{ID: userId}).UpdateColumn("bark_key", stored)
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Updated bark key of user %d", userId)
	return nil
}
