package assetmaster

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron"
)

const (
	TargetCheckSpec = "0 0 16 * * *" // UTC 16:00 == UTC+8 00:00
	SnapshotSpec    = "0 5 16 * * *"
)

const (
	TargetCheckEventId uint = iota + 1
	SnapshotEventId
)

func (e *AssetMaster) Run() error {
	e.lg.Info().Msg("Starting AssetMaster Run")
	c := cron.New()

	for _, enrolled := range e.enrolledEvents {
		if enrolled.schedule == "" {
			continue
		}
		err := c.AddFunc(enrolled.schedule, func() {
			if e.eventActive(enrolled) {
				enrolled.Event(Auto)
			}
		})
		if err != nil {
			e.lg.Error().Err(err).Uint("id", enrolled.Id).Str("schedule", enrolled.schedule).Msg("Failed to schedule event")
			return fmt.Errorf("%s 스케줄(%s) 등록 시 오류 발생. %w", enrolled.Title, enrolled.schedule, err)
		}
	}

	c.Start()
	e.cron = c
	e.lg.Info().Msg("AssetMaster Run completed")
	return nil
}

type EnrolledEvent struct {
	Id          uint
	Title       string
	Description string
	IsActive    bool
	schedule    string
	Event       func(WayOfLaunch)
}

type WayOfLaunch bool

const (
	Manual WayOfLaunch = true
	Auto   WayOfLaunch = false
)

// Events returns copies of the enrolled events. Later status changes are not reflected in them.
func (e *AssetMaster) Events() []*EnrolledEvent {
	e.evMu.RLock()
	defer e.evMu.RUnlock()

	events := make([]*EnrolledEvent, len(e.enrolledEvents))
	for i, ev := range e.enrolledEvents {
		cp := *ev
		events[i] = &cp
	}
	return events
}

func (e *AssetMaster) eventActive(ev *EnrolledEvent) bool {
	e.evMu.RLock()
	defer e.evMu.RUnlock()
	return ev.IsActive
}

func (e *AssetMaster) SetEventStatus(id uint, active bool) error {
	e.lg.Info().Uint("id", id).Bool("active", active).Msg("Changing event status")

	for _, ev := range e.enrolledEvents {
		if ev.Id == id {
			if err := e.stg.UpdateEventIsActive(ev.Id, active); err != nil {
				return fmt.Errorf("UpdateEventIsActive 시 오류 발생. %w", err)
			}
			e.evMu.Lock()
			ev.IsActive = active
			e.evMu.Unlock()
			e.lg.Info().Uint("id", id).Bool("active", active).Msg("Event status changed successfully")
			return nil
		}
	}
	return fmt.Errorf("미존재 Id : %d", id)
}

func (e *AssetMaster) LaunchEvent(id uint) error {
	e.lg.Info().Uint("id", id).Msg("Launching event")

	for _, ev := range e.enrolledEvents {
		if ev.Id == id {
			if !e.eventActive(ev) {
				return fmt.Errorf("비활성화 이벤트 Id: %d", id)
			}
			ev.Event(Manual)
			e.lg.Info().Uint("id", id).Msg("Event launched successfully")
			return nil
		}
	}
	return fmt.Errorf("미존재 Id : %d", id)
}

func (e *AssetMaster) registerEvents() {
	e.enrolledEvents = []*EnrolledEvent{
		{
			Id:          TargetCheckEventId,
			Title:       "목표 비용 확인",
			Description: "서비스 중 자산의 일평균 비용과 목표 날짜를 확인하여 도달 시 Bark 알림 전송.\n매일 UTC 16시(UTC+8 자정) 실행",
			schedule:    e.cronSpec,
			Event:       e.runTargetCheckEvent,
		},
		{
			Id:          SnapshotEventId,
			Title:       "순자산 스냅샷",
			Description: "전체 사용자의 당일 순자산 스냅샷 갱신.\n목표 비용 확인 5분 후 실행",
			schedule:    SnapshotSpec,
			Event:       e.runSnapshotEvent,
		},
	}

	for _, event := range e.enrolledEvents {
		event.IsActive = e.stg.RetreiveEventIsActive(event.Id)
	}
}

func (e *AssetMaster) runTargetCheckEvent(wol WayOfLaunch) {
	e.lg.Info().Msg("Starting TargetCheckEvent")

	rpt, err := e.CheckTargets(context.Background())
	if err != nil {
		e.lg.Error().Err(err).Msg("[TargetCheckEvent] CheckTargets 시, 에러 발생")
		e.report(fmt.Sprintf("[TargetCheckEvent] CheckTargets 시, 에러 발생. %s", err))
		return
	}

	if rpt.NotificationsSent > 0 || rpt.Truncated || wol == Manual {
		e.report(targetCheckMsg(rpt))
	}
	e.lg.Info().Msg("TargetCheckEvent completed")
}

func (e *AssetMaster) runSnapshotEvent(wol WayOfLaunch) {
	e.lg.Info().Msg("Starting SnapshotEvent")

	n, err := e.SnapshotAll()
	if err != nil {
		e.lg.Error().Err(err).Msg("[SnapshotEvent] SnapshotAll 시, 에러 발생")
		e.report(fmt.Sprintf("[SnapshotEvent] SnapshotAll 시, 에러 발생. %s", err))
		return
	}
	if wol == Manual {
		e.report(fmt.Sprintf("[SnapshotEvent] 사용자 %d명 스냅샷 갱신 완료", n))
	}
	e.lg.Info().Int("users", n).Msg("SnapshotEvent completed")
}

func targetCheckMsg(rpt *TargetCheckReport) string {
	if rpt.Skipped {
		return "[TargetCheckEvent] 다른 인스턴스에서 실행 중. 건너뜀"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[TargetCheckEvent] 대상 %d건 중 %d건 확인, 알림 %d건 전송", rpt.AssetsChecked, rpt.Processed, rpt.NotificationsSent)
	if rpt.Truncated {
		sb.WriteString(" (시간 초과로 중단)")
	}
	for _, n := range rpt.Notifications {
		fmt.Fprintf(&sb, "\n  - %s (사용자 %d)", n.AssetName, n.UserId)
	}
	return sb.String()
}
