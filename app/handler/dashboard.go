package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	d DashboardRetriever
	s SnapshotRetriever
}

func NewDashboardHandler(d DashboardRetriever, s SnapshotRetriever) *DashboardHandler {
	return &DashboardHandler{
		d: d,
		s: s,
	}
}

func (h *DashboardHandler) InitRoute(app *fiber.App) {
	app.Get("/dashboard", h.Dashboard)
	app.Get("/snapshots", h.Snapshots)
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {

	dash, err := h.d.Dashboard(userId(c))
	if err != nil {
		return fmt.Errorf("Dashboard 조회 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(dashboardResponse{
		TotalAssets:      dash.TotalAssets,
		DailyAverageCost: dash.DailyAverageCost,
		NetWorth:         dash.NetWorth,
		Assets:           toAssetResponses(dash.Assets, h.d.Now()),
		StatusCounts:     dash.StatusCounts,
		Categories:       dash.Categories,
	})
}

// Snapshots returns the net worth history of the last days (default 30).
func (h *DashboardHandler) Snapshots(c *fiber.Ctx) error {

	days := c.QueryInt("days", 30)
	if days <= 0 || days > 366 {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("days 범위 오류. 1~366 : %d", days))
	}

	snapshots, err := h.s.Snapshots(userId(c), days)
	if err != nil {
		return fmt.Errorf("Snapshots 조회 시 오류 발생. %w", err)
	}

	rtn := make([]snapshotResponse, len(snapshots))
	for i, s := range snapshots {
		rtn[i] = snapshotResponse{
			RecordDate:    time.Time(s.RecordDate).Format(time.DateOnly),
			TotalNetWorth: s.TotalNetWorth,
		}
	}

	return c.Status(fiber.StatusOK).JSON(rtn)
}
