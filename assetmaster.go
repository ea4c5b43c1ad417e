package assetmaster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"assetmaster/internal/alert"
	"assetmaster/internal/cost"
	m "assetmaster/internal/model"
	"assetmaster/notify"

	"github.com/google/uuid"
	"github.com/robfig/cron"
	"github.com/rs/zerolog"
)

const (
	DefaultJobBudget = 60 * time.Second
	DefaultQueueSize = 64

	targetCheckLock = "assetmaster:lock:target-check"
)

var ErrReservedCategory = errors.New("삭제할 수 없는 분류")

type AssetMaster struct {
	stg            Storage
	nt             Notifier
	ch             chan<- string
	snapshot       *SnapshotQueue
	enrolledEvents []*EnrolledEvent
	evMu           sync.RWMutex // guards EnrolledEvent.IsActive
	budget         time.Duration
	cronSpec       string
	cron           *cron.Cron
	now            func() time.Time
	lg             zerolog.Logger
}

type AssetMasterConfig struct {
	Storage   Storage
	Notifier  Notifier
	Channel   chan<- string
	JobBudget time.Duration
	CronSpec  string
	QueueSize int
}

func NewAssetMaster(conf AssetMasterConfig) *AssetMaster {

	e := &AssetMaster{
		stg:      conf.Storage,
		nt:       conf.Notifier,
		ch:       conf.Channel,
		budget:   conf.JobBudget,
		cronSpec: conf.CronSpec,
		now:      time.Now,
		lg:       zerolog.New(os.Stdout).With().Str("Module", "AssetMaster").Timestamp().Logger(),
	}
	if e.budget <= 0 {
		e.budget = DefaultJobBudget
	}
	if e.cronSpec == "" {
		e.cronSpec = TargetCheckSpec
	}
	size := conf.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	e.snapshot = NewSnapshotQueue(size, e.RecomputeSnapshot)
	e.snapshot.Failed = func(userId uint, err error) {
		e.report(fmt.Sprintf("[Snapshot] 사용자 %d 순자산 스냅샷 갱신 시 오류 발생. %s", userId, err))
	}
	e.snapshot.Start()

	e.registerEvents()
	return e
}

func (e *AssetMaster) Close() {
	if e.cron != nil {
		e.cron.Stop()
	}
	e.snapshot.Close()
}

/**********************************************************************************************************************
********************************************* Asset Operations *******************************************************
**********************************************************************************************************************/

func (e *AssetMaster) Assets(userId uint, filter m.AssetFilter) ([]m.Asset, error) {
	assets, err := e.stg.RetrieveAssets(userId, filter)
	if err != nil {
		return nil, fmt.Errorf("RetrieveAssets 시 오류 발생. %w", err)
	}
	return assets, nil
}

func (e *AssetMaster) Asset(userId uint, id uuid.UUID) (*m.Asset, error) {
	asset, err := e.stg.RetrieveAsset(userId, id)
	if err != nil {
		return nil, fmt.Errorf("RetrieveAsset 시 오류 발생. %w", err)
	}
	return asset, nil
}

// SaveAsset creates the asset when it has no id, otherwise replaces the stored one.
func (e *AssetMaster) SaveAsset(userId uint, next *m.Asset) error {

	if next.ID == uuid.Nil {
		return e.createAsset(userId, next)
	}

	prev, err := e.stg.RetrieveAsset(userId, next.ID)
	if err != nil {
		return fmt.Errorf("RetrieveAsset 시 오류 발생. %w", err)
	}
	return e.updateAsset(prev, next)
}

// PatchAsset applies the changes on a copy of the stored asset and runs the full update flow.
func (e *AssetMaster) PatchAsset(userId uint, id uuid.UUID, apply func(*m.Asset)) (*m.Asset, error) {

	prev, err := e.stg.RetrieveAsset(userId, id)
	if err != nil {
		return nil, fmt.Errorf("RetrieveAsset 시 오류 발생. %w", err)
	}

	next := *prev
	apply(&next)

	if err := e.updateAsset(prev, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (e *AssetMaster) DeleteAsset(userId uint, id uuid.UUID) error {

	if err := e.stg.DeleteAsset(userId, id); err != nil {
		return fmt.Errorf("DeleteAsset 시 오류 발생. %w", err)
	}
	e.lg.Info().Uint("userId", userId).Str("assetId", id.String()).Msg("Asset deleted")

	e.snapshot.Enqueue(userId)
	return nil
}

func (e *AssetMaster) Categories(userId uint) ([]string, error) {
	assets, err := e.Assets(userId, m.AssetFilter{})
	if err != nil {
		return nil, err
	}
	return cost.Categories(assets), nil
}

// DeleteCategory detaches every asset of the user from the category. The assets themselves stay.
func (e *AssetMaster) DeleteCategory(userId uint, category string) (int64, error) {

	if IsReservedCategory(category) {
		return 0, fmt.Errorf("%w : %s", ErrReservedCategory, category)
	}

	n, err := e.stg.ClearAssetType(userId, category)
	if err != nil {
		return 0, fmt.Errorf("ClearAssetType 시 오류 발생. %w", err)
	}
	e.lg.Info().Uint("userId", userId).Str("category", category).Int64("affected", n).Msg("Category deleted")

	e.snapshot.Enqueue(userId)
	return n, nil
}

// IsReservedCategory reports the pseudo category that stands for "every asset".
func IsReservedCategory(category string) bool {
	c := strings.TrimSpace(category)
	return c == "" || c == "全部" || strings.EqualFold(c, "all")
}

type Dashboard struct {
	cost.Summary
	Assets []m.Asset
}

func (e *AssetMaster) Dashboard(userId uint) (*Dashboard, error) {
	assets, err := e.Assets(userId, m.AssetFilter{})
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Summary: cost.Summarize(assets, e.now()),
		Assets:  assets,
	}, nil
}

func (e *AssetMaster) Snapshots(userId uint, days int) ([]m.Snapshot, error) {
	if days <= 0 {
		days = 30
	}
	since := startOfDay(e.now()).AddDate(0, 0, -(days - 1))

	snapshots, err := e.stg.RetrieveSnapshots(userId, since)
	if err != nil {
		return nil, fmt.Errorf("RetrieveSnapshots 시 오류 발생. %w", err)
	}
	return snapshots, nil
}

func (e *AssetMaster) Now() time.Time {
	return e.now()
}

func (e *AssetMaster) createAsset(userId uint, next *m.Asset) error {

	next.UserID = userId
	if next.Status == 0 {
		next.Status = m.InService
	}
	next.NormalizeTarget()
	alert.ResetOnEdit(nil, next)

	if err := e.stg.CreateAsset(next); err != nil {
		return fmt.Errorf("CreateAsset 시 오류 발생. %w", err)
	}
	e.lg.Info().Uint("userId", userId).Str("assetId", next.ID.String()).Msg("Asset created")

	e.snapshot.Enqueue(userId)
	e.targetDateOnSave(next)
	return nil
}

func (e *AssetMaster) updateAsset(prev, next *m.Asset) error {

	next.ID = prev.ID
	next.UserID = prev.UserID
	next.CreatedAt = prev.CreatedAt
	if next.Status == 0 {
		next.Status = prev.Status
	}
	next.NormalizeTarget()
	alert.ResetOnEdit(prev, next)

	if err := e.stg.UpdateAsset(next); err != nil {
		return fmt.Errorf("UpdateAsset 시 오류 발생. %w", err)
	}
	e.lg.Info().Uint("userId", next.UserID).Str("assetId", next.ID.String()).Msg("Asset updated")

	e.snapshot.Enqueue(next.UserID)

	if alert.BalanceChanged(prev.Balance, next.Balance) {
		title, body := alert.BalanceMessage(*next)
		if _, err := e.dispatch(context.Background(), next.UserID, title, body, nil); err != nil {
			e.lg.Warn().Err(err).Str("assetId", next.ID.String()).Msg("Balance alert not sent")
		}
	}
	e.targetDateOnSave(next)
	return nil
}

func (e *AssetMaster) targetDateOnSave(next *m.Asset) {
	notified, err := e.checkTargetDate(context.Background(), *next, nil)
	if err != nil {
		e.lg.Warn().Err(err).Str("assetId", next.ID.String()).Msg("Target date alert not sent. left for the daily batch")
		return
	}
	if notified {
		next.TargetDateNotified = m.Notified
	}
}

/**********************************************************************************************************************
********************************************* Notification *********************************************************
**********************************************************************************************************************/

type TargetNotification struct {
	AssetId   uuid.UUID `json:"assetId"`
	UserId    uint      `json:"userId"`
	AssetName string    `json:"assetName"`
}

type TargetCheckReport struct {
	Timestamp         time.Time            `json:"timestamp"`
	AssetsChecked     int                  `json:"assetsChecked"`
	Processed         int                  `json:"processed"`
	NotificationsSent int                  `json:"notificationsSent"`
	Notifications     []TargetNotification `json:"notifications"`
	Truncated         bool                 `json:"truncated"`
	Skipped           bool                 `json:"skipped"`
}

// CheckTargets is the daily batch. Rows are processed one by one until the job budget runs out;
// the remaining rows are left for the next run.
func (e *AssetMaster) CheckTargets(ctx context.Context) (*TargetCheckReport, error) {

	start := e.now()
	rpt := &TargetCheckReport{Timestamp: start, Notifications: make([]TargetNotification, 0)}

	ok, err := e.stg.AcquireLock(targetCheckLock, e.budget)
	if err != nil {
		return nil, fmt.Errorf("AcquireLock 시 오류 발생. %w", err)
	}
	if !ok {
		e.lg.Warn().Msg("Target check is already running elsewhere")
		rpt.Skipped = true
		return rpt, nil
	}
	defer e.stg.ReleaseLock(targetCheckLock)

	ctx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()

	candidates, err := e.stg.RetrieveTargetCandidates()
	if err != nil {
		return nil, fmt.Errorf("RetrieveTargetCandidates 시 오류 발생. %w", err)
	}
	rpt.AssetsChecked = len(candidates)
	e.lg.Info().Int("candidates", len(candidates)).Msg("Starting target check")

	keys := make(map[uint]string)
	deadline := start.Add(e.budget)

	for _, a := range candidates {
		if ctx.Err() != nil || !e.now().Before(deadline) {
			rpt.Truncated = true
			break
		}

		var notified bool
		var err error
		if dailyCost, due := alert.TargetPriceDue(a, e.now()); due {
			title, body := alert.TargetPriceMessage(a, dailyCost)
			notified, err = e.fireTarget(ctx, a, m.TargetByPrice, title, body, keys)
		} else {
			notified, err = e.checkTargetDate(ctx, a, keys)
		}
		if err != nil {
			// the push never went out: the row stays unnotified for the next run
			e.lg.Warn().Err(err).Str("assetId", a.ID.String()).Msg("Notification not sent. stopping target check")
			rpt.Truncated = true
			break
		}
		rpt.Processed++

		if notified {
			rpt.Notifications = append(rpt.Notifications, TargetNotification{AssetId: a.ID, UserId: a.UserID, AssetName: a.Name})
		}
	}
	rpt.NotificationsSent = len(rpt.Notifications)

	if rpt.Truncated {
		e.lg.Warn().Int("processed", rpt.Processed).Int("candidates", rpt.AssetsChecked).Msg("Target check stopped by job budget")
	}
	e.lg.Info().Int("sent", rpt.NotificationsSent).Msg("Target check completed")
	return rpt, nil
}

func (e *AssetMaster) checkTargetDate(ctx context.Context, a m.Asset, keys map[uint]string) (bool, error) {
	if !alert.TargetDateDue(a, e.now()) {
		return false, nil
	}
	title, body := alert.TargetDateMessage(a)
	return e.fireTarget(ctx, a, m.TargetByDate, title, body, keys)
}

// fireTarget dispatches a target alert and marks it notified. Users without a notification key
// keep the flag unnotified so a later run picks the asset up again. So does a push that never went out,
// which is returned as an error.
func (e *AssetMaster) fireTarget(ctx context.Context, a m.Asset, targetType m.TargetCostType, title, body string, keys map[uint]string) (bool, error) {

	ok, err := e.dispatch(ctx, a.UserID, title, body, keys)
	if err != nil {
		return false, err
	}
	if !ok {
		e.lg.Info().Uint("userId", a.UserID).Str("assetId", a.ID.String()).Msg("User has no notification key")
		return false, nil
	}

	if err := e.stg.MarkTargetNotified(a.ID, targetType); err != nil {
		e.lg.Error().Err(err).Str("assetId", a.ID.String()).Msg("MarkTargetNotified 시 오류 발생")
		return false, nil
	}
	return true, nil
}

// dispatch reports whether the user has a notification key and the push left this process.
// A push stopped before the request (notify.ErrNotSent) is returned; transport failures are logged only.
func (e *AssetMaster) dispatch(ctx context.Context, userId uint, title, body string, keys map[uint]string) (bool, error) {

	key, cached := keys[userId]
	if !cached {
		var err error
		key, err = e.stg.NotificationKey(userId)
		if err != nil {
			e.lg.Error().Err(err).Uint("userId", userId).Msg("NotificationKey 시 오류 발생")
			return false, nil
		}
		if keys != nil {
			keys[userId] = key
		}
	}
	if key == "" || e.nt == nil {
		return false, nil
	}

	if err := e.nt.Send(ctx, key, title, body); err != nil {
		if errors.Is(err, notify.ErrNotSent) {
			return false, err
		}
		e.lg.Error().Err(err).Uint("userId", userId).Str("title", title).Msg("Notification dispatch failed")
	}
	return true, nil
}

// report forwards a message to the operator channel without blocking the caller.
func (e *AssetMaster) report(msg string) {
	if e.ch == nil {
		return
	}
	select {
	case e.ch <- msg:
	default:
		e.lg.Warn().Str("msg", msg).Msg("Operator channel is full")
	}
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
