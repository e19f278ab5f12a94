package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/middleware"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/usecase"
	"github.com/hiresphere/api/internal/util"
)

// InterviewHandler is the HR-facing surface over finished and in-flight
// interviews, including the analysis trigger.
type InterviewHandler struct {
	interviews *repository.InterviewRepository
	sessions   *usecase.InterviewUsecase
	users      *repository.UserRepository
}

func NewInterviewHandler(interviews *repository.InterviewRepository,
	sessions *usecase.InterviewUsecase, users *repository.UserRepository) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, sessions: sessions, users: users}
}

func (h *InterviewHandler) RegisterRoutes(api fiber.Router) {
	interviews := api.Group("/interviews",
		middleware.RequireAuth(h.users),
		middleware.RequireRole(model.RoleHR, model.RoleAdmin))
	interviews.Get("/", h.List)
	interviews.Get("/:id", h.Get)
	interviews.Post("/:id/analyze", h.Analyze)
}

func (h *InterviewHandler) List(c *fiber.Ctx) error {
	interviews, err := h.interviews.ListByHR(middleware.CurrentUser(c).ID.String())
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get interviews",
		Data:    interviews,
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	interview, err := h.interviews.FindByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.HandleError(c, apperror.NotFound("Interview not found"))
		}
		return util.HandleError(c, err)
	}
	if interview.HRID != middleware.CurrentUser(c).ID {
		return util.HandleError(c, apperror.NotFound("Interview not found"))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get interview",
		Data:    interview,
	})
}

// Analyze schedules the analysis run for an interview the caller owns. It is
// also the retry path after a failed run.
func (h *InterviewHandler) Analyze(c *fiber.Ctx) error {
	hrID := middleware.CurrentUser(c).ID.String()
	if _, err := h.sessions.Analyze(c.Context(), hrID, c.Params("id")); err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Analysis started",
		Data:    fiber.Map{"id": c.Params("id"), "status": "processing"},
	})
}
