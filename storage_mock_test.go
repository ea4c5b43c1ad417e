package assetmaster

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	m "assetmaster/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StorageMock struct {
	mu        sync.Mutex
	assets    map[uuid.UUID]m.Asset
	snapshots map[uint]map[time.Time]m.Snapshot
	keys      map[uint]string
	events    map[uint]bool
	locked    bool
	marks     int
	err       error
}

func NewStorageMock() *StorageMock {
	return &StorageMock{
		assets:    make(map[uuid.UUID]m.Asset),
		snapshots: make(map[uint]map[time.Time]m.Snapshot),
		keys:      make(map[uint]string),
		events:    make(map[uint]bool),
	}
}

func (s *StorageMock) RetrieveAssets(userId uint, filter m.AssetFilter) ([]m.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	rtn := make([]m.Asset, 0)
	for _, a := range s.assets {
		if a.UserID != userId {
			continue
		}
		if filter.Category != 0 && a.Category != filter.Category {
			continue
		}
		if filter.AssetType != "" && (a.AssetType == nil || *a.AssetType != filter.AssetType) {
			continue
		}
		rtn = append(rtn, a)
	}
	sort.Slice(rtn, func(i, j int) bool { return rtn[i].UpdatedAt.After(rtn[j].UpdatedAt) })
	return rtn, nil
}

func (s *StorageMock) RetrieveAsset(userId uint, id uuid.UUID) (*m.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[id]
	if !ok || a.UserID != userId {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (s *StorageMock) CreateAsset(asset *m.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	s.assets[asset.ID] = *asset
	return nil
}

func (s *StorageMock) UpdateAsset(asset *m.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	if _, ok := s.assets[asset.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	asset.UpdatedAt = time.Now()
	s.assets[asset.ID] = *asset
	return nil
}

func (s *StorageMock) DeleteAsset(userId uint, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[id]
	if !ok || a.UserID != userId {
		return gorm.ErrRecordNotFound
	}
	delete(s.assets, id)
	return nil
}

func (s *StorageMock) ClearAssetType(userId uint, assetType string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, a := range s.assets {
		if a.UserID == userId && a.AssetType != nil && *a.AssetType == assetType {
			a.AssetType = nil
			s.assets[id] = a
			n++
		}
	}
	return n, nil
}

func (s *StorageMock) RetrieveTargetCandidates() ([]m.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	rtn := make([]m.Asset, 0)
	for _, a := range s.assets {
		if a.Status != m.InService {
			continue
		}
		if a.TargetCostType == m.TargetByPrice && a.TargetCost.Valid && a.TargetPriceNotified == m.Unnotified ||
			a.TargetCostType == m.TargetByDate && a.TargetDate != nil && a.TargetDateNotified == m.Unnotified {
			rtn = append(rtn, a)
		}
	}
	sort.Slice(rtn, func(i, j int) bool { return rtn[i].Name < rtn[j].Name })
	return rtn, nil
}

func (s *StorageMock) MarkTargetNotified(id uuid.UUID, targetType m.TargetCostType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch targetType {
	case m.TargetByPrice:
		a.TargetPriceNotified = m.Notified
	case m.TargetByDate:
		a.TargetDateNotified = m.Notified
	}
	s.assets[id] = a
	s.marks++
	return nil
}

func (s *StorageMock) UpsertSnapshot(snapshot *m.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	day := time.Time(snapshot.RecordDate)
	if s.snapshots[snapshot.UserID] == nil {
		s.snapshots[snapshot.UserID] = make(map[time.Time]m.Snapshot)
	}
	s.snapshots[snapshot.UserID][day] = *snapshot
	return nil
}

func (s *StorageMock) RetrieveSnapshots(userId uint, since time.Time) ([]m.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rtn := make([]m.Snapshot, 0)
	for day, snap := range s.snapshots[userId] {
		if !day.Before(since) {
			rtn = append(rtn, snap)
		}
	}
	sort.Slice(rtn, func(i, j int) bool {
		return time.Time(rtn[i].RecordDate).Before(time.Time(rtn[j].RecordDate))
	})
	return rtn, nil
}

func (s *StorageMock) RetrieveUserIds() ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	for _, a := range s.assets {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			ids = append(ids, a.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *StorageMock) NotificationKey(userId uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[userId], nil
}

func (s *StorageMock) RetreiveEventIsActive(eventId uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.events[eventId]
	if !ok {
		s.events[eventId] = true
		return true
	}
	return active
}

func (s *StorageMock) UpdateEventIsActive(eventId uint, isActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[eventId] = isActive
	return nil
}

func (s *StorageMock) AcquireLock(key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return false, nil
	}
	s.locked = true
	return true, nil
}

func (s *StorageMock) ReleaseLock(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
}

func (s *StorageMock) snapshotsOf(userId uint) map[time.Time]m.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rtn := make(map[time.Time]m.Snapshot)
	for k, v := range s.snapshots[userId] {
		rtn[k] = v
	}
	return rtn
}

func (s *StorageMock) stored(id uuid.UUID) m.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets[id]
}

type sent struct {
	key, title, body string
}

type NotifierMock struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (n *NotifierMock) Send(ctx context.Context, key, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sent{key, title, body})
	return n.err
}

func (n *NotifierMock) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

var errTransport = errors.New("bark unreachable")
