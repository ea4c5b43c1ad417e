package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"assetmaster"
	"assetmaster/internal/cost"
	m "assetmaster/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kr/pretty"
	"gorm.io/gorm"
)

func sendReqeust(app *fiber.App, url, method, token string, reqBody any, respBody any) (int, error) {

	var body io.Reader
	switch b := reqBody.(type) {
	case nil:
	case string:
		body = strings.NewReader(b)
	default:
		j, err := json.Marshal(reqBody)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(j)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return resp.StatusCode, fmt.Errorf("응답 decode 실패. %w", err)
		}
	}
	return resp.StatusCode, nil
}

/***************************** Asset ***********************************/

type AssetServiceMock struct {
	mu         sync.Mutex
	assets     map[uuid.UUID]m.Asset
	snapshots  []m.Snapshot
	now        time.Time
	lastFilter m.AssetFilter
	lastDays   int
	err        error
}

func NewAssetServiceMock(now time.Time) *AssetServiceMock {
	return &AssetServiceMock{
		assets: make(map[uuid.UUID]m.Asset),
		now:    now,
	}
}

func (mock *AssetServiceMock) prettyPrint() {
	pretty.Println(mock.assets)
}

func (mock *AssetServiceMock) Now() time.Time {
	return mock.now
}

func (mock *AssetServiceMock) userAssets(userId uint) []m.Asset {
	rtn := make([]m.Asset, 0)
	for _, a := range mock.assets {
		if a.UserID == userId {
			rtn = append(rtn, a)
		}
	}
	return rtn
}

func (mock *AssetServiceMock) Assets(userId uint, filter m.AssetFilter) ([]m.Asset, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	if mock.err != nil {
		return nil, mock.err
	}
	mock.lastFilter = filter
	return mock.userAssets(userId), nil
}

func (mock *AssetServiceMock) Asset(userId uint, id uuid.UUID) (*m.Asset, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	a, ok := mock.assets[id]
	if !ok || a.UserID != userId {
		return nil, fmt.Errorf("RetrieveAsset 시 오류 발생. %w", gorm.ErrRecordNotFound)
	}
	return &a, nil
}

func (mock *AssetServiceMock) SaveAsset(userId uint, next *m.Asset) error {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	if next.ID == uuid.Nil {
		next.ID = uuid.New()
		next.CreatedAt = mock.now
	} else if a, ok := mock.assets[next.ID]; !ok || a.UserID != userId {
		return fmt.Errorf("RetrieveAsset 시 오류 발생. %w", gorm.ErrRecordNotFound)
	}
	next.UserID = userId
	next.UpdatedAt = mock.now
	mock.assets[next.ID] = *next
	return nil
}

func (mock *AssetServiceMock) PatchAsset(userId uint, id uuid.UUID, apply func(*m.Asset)) (*m.Asset, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	a, ok := mock.assets[id]
	if !ok || a.UserID != userId {
		return nil, fmt.Errorf("RetrieveAsset 시 오류 발생. %w", gorm.ErrRecordNotFound)
	}
	apply(&a)
	mock.assets[id] = a
	return &a, nil
}

func (mock *AssetServiceMock) DeleteAsset(userId uint, id uuid.UUID) error {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	a, ok := mock.assets[id]
	if !ok || a.UserID != userId {
		return fmt.Errorf("DeleteAsset 시 오류 발생. %w", gorm.ErrRecordNotFound)
	}
	delete(mock.assets, id)
	return nil
}

func (mock *AssetServiceMock) Categories(userId uint) ([]string, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return cost.Categories(mock.userAssets(userId)), nil
}

func (mock *AssetServiceMock) DeleteCategory(userId uint, category string) (int64, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	if assetmaster.IsReservedCategory(category) {
		return 0, fmt.Errorf("%w : %s", assetmaster.ErrReservedCategory, category)
	}

	var n int64
	for id, a := range mock.assets {
		if a.UserID == userId && a.AssetType != nil && *a.AssetType == category {
			a.AssetType = nil
			mock.assets[id] = a
			n++
		}
	}
	return n, nil
}

func (mock *AssetServiceMock) Dashboard(userId uint) (*assetmaster.Dashboard, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	assets := mock.userAssets(userId)
	return &assetmaster.Dashboard{
		Summary: cost.Summarize(assets, mock.now),
		Assets:  assets,
	}, nil
}

func (mock *AssetServiceMock) Snapshots(userId uint, days int) ([]m.Snapshot, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	mock.lastDays = days
	return mock.snapshots, nil
}

/***************************** User ***********************************/

type UserStoreMock struct {
	mu    sync.Mutex
	users map[string]m.User
	keys  map[uint]string
}

func NewUserStoreMock() *UserStoreMock {
	return &UserStoreMock{
		users: make(map[string]m.User),
		keys:  make(map[uint]string),
	}
}

func (mock *UserStoreMock) SaveUser(user *m.User) error {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	if _, ok := mock.users[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	user.ID = uint(len(mock.users) + 1)
	mock.users[user.Email] = *user
	return nil
}

func (mock *UserStoreMock) User(email string) (*m.User, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	u, ok := mock.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (mock *UserStoreMock) NotificationKey(userId uint) (string, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.keys[userId], nil
}

func (mock *UserStoreMock) SaveNotificationKey(userId uint, key string) error {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.keys[userId] = key
	return nil
}

/***************************** Cron ***********************************/

type TargetCheckerMock struct {
	rpt    *assetmaster.TargetCheckReport
	err    error
	called int
}

func (mock *TargetCheckerMock) CheckTargets(ctx context.Context) (*assetmaster.TargetCheckReport, error) {
	mock.called++
	if mock.err != nil {
		return nil, mock.err
	}
	return mock.rpt, nil
}

/***************************** Event ***********************************/

type EventServiceMock struct {
	events   []*assetmaster.EnrolledEvent
	launched []uint
}

func (mock *EventServiceMock) Events() []*assetmaster.EnrolledEvent {
	return mock.events
}

func (mock *EventServiceMock) find(id uint) *assetmaster.EnrolledEvent {
	for _, e := range mock.events {
		if e.Id == id {
			return e
		}
	}
	return nil
}

func (mock *EventServiceMock) LaunchEvent(id uint) error {
	e := mock.find(id)
	if e == nil {
		return fmt.Errorf("미존재 Id : %d", id)
	}
	if !e.IsActive {
		return errors.New("비활성화 이벤트")
	}
	mock.launched = append(mock.launched, id)
	return nil
}

func (mock *EventServiceMock) SetEventStatus(id uint, active bool) error {
	e := mock.find(id)
	if e == nil {
		return fmt.Errorf("미존재 Id : %d", id)
	}
	e.IsActive = active
	return nil
}
