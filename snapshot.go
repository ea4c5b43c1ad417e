package assetmaster

import (
	"fmt"
	"os"
	"sync"

	"assetmaster/internal/cost"
	m "assetmaster/internal/model"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

// SnapshotQueue hands net worth recomputation off to a single worker so that asset mutations
// never wait for it. Tasks are user ids.
type SnapshotQueue struct {
	tasks  chan uint
	run    func(userId uint) error
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	lg     zerolog.Logger

	// Processed is called after every task, Failed only for the ones that returned an error.
	Processed func(userId uint, err error)
	Failed    func(userId uint, err error)
}

func NewSnapshotQueue(size int, run func(userId uint) error) *SnapshotQueue {
	return &SnapshotQueue{
		tasks: make(chan uint, size),
		run:   run,
		lg:    zerolog.New(os.Stdout).With().Str("Module", "SnapshotQueue").Timestamp().Logger(),
	}
}

func (q *SnapshotQueue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for userId := range q.tasks {
			q.process(userId)
		}
	}()
}

func (q *SnapshotQueue) process(userId uint) {
	err := q.run(userId)
	if err != nil {
		q.lg.Error().Err(err).Uint("userId", userId).Msg("Snapshot task failed")
		if q.Failed != nil {
			q.Failed(userId, err)
		}
	} else {
		q.lg.Info().Uint("userId", userId).Msg("Snapshot task processed")
	}
	if q.Processed != nil {
		q.Processed(userId, err)
	}
}

// Enqueue never blocks. A full or closed queue drops the task and returns false.
func (q *SnapshotQueue) Enqueue(userId uint) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.lg.Warn().Uint("userId", userId).Msg("Snapshot queue is closed. task dropped")
		return false
	}

	select {
	case q.tasks <- userId:
		return true
	default:
		q.lg.Warn().Uint("userId", userId).Msg("Snapshot queue is full. task dropped")
		return false
	}
}

// Close stops accepting tasks and waits until the queued ones are processed.
func (q *SnapshotQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	q.wg.Wait()
}

// RecomputeSnapshot writes today's net worth of the user. Running it twice on the same day
// leaves one row holding the latest total.
func (e *AssetMaster) RecomputeSnapshot(userId uint) error {

	assets, err := e.stg.RetrieveAssets(userId, m.AssetFilter{})
	if err != nil {
		return fmt.Errorf("RetrieveAssets 시 오류 발생. %w", err)
	}

	snapshot := &m.Snapshot{
		UserID:        userId,
		RecordDate:    datatypes.Date(startOfDay(e.now())),
		TotalNetWorth: cost.NetWorth(assets),
	}
	if err := e.stg.UpsertSnapshot(snapshot); err != nil {
		return fmt.Errorf("UpsertSnapshot 시 오류 발생. %w", err)
	}
	return nil
}

// SnapshotAll recomputes the snapshot of every user and returns how many succeeded.
func (e *AssetMaster) SnapshotAll() (int, error) {

	userIds, err := e.stg.RetrieveUserIds()
	if err != nil {
		return 0, fmt.Errorf("RetrieveUserIds 시 오류 발생. %w", err)
	}

	done := 0
	for _, id := range userIds {
		if err := e.RecomputeSnapshot(id); err != nil {
			e.lg.Error().Err(err).Uint("userId", id).Msg("RecomputeSnapshot 시 오류 발생")
			continue
		}
		done++
	}
	return done, nil
}
