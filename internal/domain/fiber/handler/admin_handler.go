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

// AdminHandler exposes platform-level operations for the admin console.
type AdminHandler struct {
	users      *repository.UserRepository
	subs       *repository.SubscriptionRepository
	interviews *repository.InterviewRepository
	auth       *usecase.AuthUsecase
}

func NewAdminHandler(users *repository.UserRepository, subs *repository.SubscriptionRepository,
	interviews *repository.InterviewRepository, auth *usecase.AuthUsecase) *AdminHandler {
	return &AdminHandler{users: users, subs: subs, interviews: interviews, auth: auth}
}

func (h *AdminHandler) RegisterRoutes(api fiber.Router) {
	admin := api.Group("/admin",
		middleware.RequireAuth(h.users),
		middleware.RequireRole(model.RoleAdmin))
	admin.Get("/stats", h.Stats)
	admin.Get("/users", h.ListHRUsers)
	admin.Post("/users", h.CreateHRUser)
	admin.Get("/subscriptions", h.ListSubscriptions)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	hrCount, err := h.users.CountByRole(model.RoleHR)
	if err != nil {
		return util.HandleError(c, err)
	}
	candidateCount, err := h.users.CountByRole(model.RoleCandidate)
	if err != nil {
		return util.HandleError(c, err)
	}
	activeSubs, err := h.subs.CountActive()
	if err != nil {
		return util.HandleError(c, err)
	}
	totalInterviews, err := h.interviews.Count()
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get platform stats",
		Data: fiber.Map{
			"hr_users":             hrCount,
			"candidate_users":      candidateCount,
			"active_subscriptions": activeSubs,
			"total_interviews":     totalInterviews,
		},
	})
}

func (h *AdminHandler) ListHRUsers(c *fiber.Ctx) error {
	users, err := h.users.ListByRole(model.RoleHR)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get users",
		Data:    users,
	})
}

// CreateHRUser provisions an HR account on behalf of an admin. The role is
// forced server-side.
func (h *AdminHandler) CreateHRUser(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	req.Role = string(model.RoleHR)
	user, err := h.auth.Register(&req)
	if err != nil {
		return util.HandleError(c, err)
	}
	adminID := middleware.CurrentUser(c).ID
	user.CreatedBy = &adminID
	if err := h.users.Update(user); err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "HR user created",
		Data:    user,
	})
}

func (h *AdminHandler) ListSubscriptions(c *fiber.Ctx) error {
	subs, err := h.subs.List()
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get subscriptions",
		Data:    subs,
	})
}
