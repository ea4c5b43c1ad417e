package handler

import (
	"context"
	"time"

	"assetmaster"
	m "assetmaster/internal/model"

	"github.com/google/uuid"
)

type AssetRetriever interface {
	Assets(userId uint, filter m.AssetFilter) ([]m.Asset, error)
	Asset(userId uint, id uuid.UUID) (*m.Asset, error)
	Now() time.Time
}

type AssetSaver interface {
	SaveAsset(userId uint, next *m.Asset) error
	PatchAsset(userId uint, id uuid.UUID, apply func(*m.Asset)) (*m.Asset, error)
	DeleteAsset(userId uint, id uuid.UUID) error
}

type CategoryService interface {
	Categories(userId uint) ([]string, error)
	DeleteCategory(userId uint, category string) (int64, error)
}

type DashboardRetriever interface {
	Dashboard(userId uint) (*assetmaster.Dashboard, error)
	Now() time.Time
}

type SnapshotRetriever interface {
	Snapshots(userId uint, days int) ([]m.Snapshot, error)
}

type TargetChecker interface {
	CheckTargets(ctx context.Context) (*assetmaster.TargetCheckReport, error)
}

type EventRetriever interface {
	Events() []*assetmaster.EnrolledEvent
}

type EventLauncher interface {
	LaunchEvent(id uint) error
}

type EventStatusChanger interface {
	SetEventStatus(id uint, active bool) error
}

type UserRetrierver interface {
	User(email string) (*m.User, error)
}

type UserSaver interface {
	SaveUser(user *m.User) error
}

type SettingStore interface {
	NotificationKey(userId uint) (string, error)
	SaveNotificationKey(userId uint, key string) error
}
