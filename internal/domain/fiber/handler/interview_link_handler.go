package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/middleware"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/usecase"
	"github.com/hiresphere/api/internal/util"
)

// InterviewLinkHandler is the HR-facing link management surface.
type InterviewLinkHandler struct {
	uc        *usecase.LinkUsecase
	dashboard *usecase.DashboardUsecase
	users     *repository.UserRepository
}

func NewInterviewLinkHandler(uc *usecase.LinkUsecase, dashboard *usecase.DashboardUsecase,
	users *repository.UserRepository) *InterviewLinkHandler {
	return &InterviewLinkHandler{uc: uc, dashboard: dashboard, users: users}
}

func (h *InterviewLinkHandler) RegisterRoutes(api fiber.Router) {
	links := api.Group("/links",
		middleware.RequireAuth(h.users),
		middleware.RequireRole(model.RoleHR, model.RoleAdmin))
	links.Post("/", h.Create)
	links.Get("/", h.List)
	links.Get("/:id", h.Get)
	links.Patch("/:id", h.Update)
	links.Delete("/:id", h.Delete)
	links.Post("/:id/resend", h.Resend)
}

func (h *InterviewLinkHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	user := middleware.CurrentUser(c)
	link, err := h.uc.Create(user, &req)
	if err != nil {
		return util.HandleError(c, err)
	}
	h.dashboard.Invalidate(c.Context(), user.ID.String())
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interview link created",
		Data:    link,
	})
}

func (h *InterviewLinkHandler) List(c *fiber.Ctx) error {
	links, err := h.uc.List(middleware.CurrentUser(c).ID.String())
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get interview links",
		Data:    links,
	})
}

func (h *InterviewLinkHandler) Get(c *fiber.Ctx) error {
	link, err := h.uc.Get(middleware.CurrentUser(c).ID.String(), c.Params("id"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get interview link",
		Data:    link,
	})
}

func (h *InterviewLinkHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	link, err := h.uc.Update(middleware.CurrentUser(c).ID.String(), c.Params("id"), &req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Interview link updated",
		Data:    link,
	})
}

func (h *InterviewLinkHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.uc.Delete(user.ID.String(), c.Params("id")); err != nil {
		return util.HandleError(c, err)
	}
	h.dashboard.Invalidate(c.Context(), user.ID.String())
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Interview link deleted",
	})
}

func (h *InterviewLinkHandler) Resend(c *fiber.Ctx) error {
	link, err := h.uc.Resend(middleware.CurrentUser(c).ID.String(), c.Params("id"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Invitation resent",
		Data:    link,
	})
}
