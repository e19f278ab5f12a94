package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hiresphere/api/internal/middleware"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/usecase"
	"github.com/hiresphere/api/internal/util"
)

type DashboardHandler struct {
	dashboard *usecase.DashboardUsecase
	reports   *usecase.ReportUsecase
	users     *repository.UserRepository
}

func NewDashboardHandler(dashboard *usecase.DashboardUsecase, reports *usecase.ReportUsecase,
	users *repository.UserRepository) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, users: users}
}

func (h *DashboardHandler) RegisterRoutes(api fiber.Router) {
	guard := []fiber.Handler{
		middleware.RequireAuth(h.users),
		middleware.RequireRole(model.RoleHR, model.RoleAdmin),
	}
	api.Get("/dashboard", append(guard, h.Overview)...)
	api.Get("/reports/interviews", append(guard, h.ExportInterviews)...)
}

func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.dashboard.Overview(c.Context(), middleware.CurrentUser(c).ID.String())
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get dashboard overview",
		Data:    overview,
	})
}

func (h *DashboardHandler) ExportInterviews(c *fiber.Ctx) error {
	data, name, err := h.reports.ExportInterviews(middleware.CurrentUser(c).ID.String())
	if err != nil {
		return util.HandleError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(data)
}
