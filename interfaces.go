package assetmaster

import (
	"context"
	"time"

	m "assetmaster/internal/model"

	"github.com/google/uuid"
)

type Storage interface {
	RetrieveAssets(userId uint, filter m.AssetFilter) ([]m.Asset, error)
	RetrieveAsset(userId uint, id uuid.UUID) (*m.Asset, error)
	CreateAsset(asset *m.Asset) error
	UpdateAsset(asset *m.Asset) error
	DeleteAsset(userId uint, id uuid.UUID) error
	ClearAssetType(userId uint, assetType string) (int64, error)

	RetrieveTargetCandidates() ([]m.Asset, error)
	MarkTargetNotified(id uuid.UUID, targetType m.TargetCostType) error

	UpsertSnapshot(snapshot *m.Snapshot) error
	RetrieveSnapshots(userId uint, since time.Time) ([]m.Snapshot, error)

	RetrieveUserIds() ([]uint, error)
	NotificationKey(userId uint) (string, error)

	RetreiveEventIsActive(eventId uint) bool
	UpdateEventIsActive(eventId uint, isActive bool) error

	AcquireLock(key string, ttl time.Duration) (bool, error)
	ReleaseLock(key string)
}

type Notifier interface {
	Send(ctx context.Context, key, title, body string) error
}
