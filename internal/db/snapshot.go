package db

import (
	"time"

	m "assetmaster/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// UpsertSnapshot keeps one row per (user, record date). A second write on the same day replaces the total.
func (s Storage) UpsertSnapshot(snapshot *m.Snapshot) error {

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "record_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_net_worth", "updated_at"}),
	}).Create(snapshot)
	if result.Error != nil {
		return result.Error
	}

	s.lg.Info().Msgf("Upserted snapshot of user %d on %s : %s", snapshot.UserID, time.Time(snapshot.RecordDate).Format(time.DateOnly), snapshot.TotalNetWorth)
	return nil
}

func (s Storage) RetrieveSnapshots(userId uint, since time.Time) ([]m.Snapshot, error) {

	var snapshots []m.Snapshot

	result := s.db.Model(&m.Snapshot{}).
		Where("user_id = ? AND record_date >= ?", userId, datatypes.Date(since)).
		Order("record_date").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}

	s.lg.Info().Msgf("Retrieved %d snapshots of user %d", len(snapshots), userId)
	return snapshots, nil
}
