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

type SubscriptionHandler struct {
	uc    *usecase.SubscriptionUsecase
	users *repository.UserRepository
}

func NewSubscriptionHandler(uc *usecase.SubscriptionUsecase, users *repository.UserRepository) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, users: users}
}

func (h *SubscriptionHandler) RegisterRoutes(api fiber.Router) {
	api.Get("/plans", h.ListPlans)

	subs := api.Group("/subscriptions",
		middleware.RequireAuth(h.users),
		middleware.RequireRole(model.RoleHR, model.RoleAdmin))
	subs.Post("/", h.Subscribe)
	subs.Get("/me", h.Current)
	subs.Delete("/me", h.Cancel)
}

func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.uc.ListPlans()
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get subscription plans",
		Data:    plans,
	})
}

func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	sub, err := h.uc.Subscribe(middleware.CurrentUser(c).ID.String(), &req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Subscription created",
		Data:    sub,
	})
}

func (h *SubscriptionHandler) Current(c *fiber.Ctx) error {
	sub, err := h.uc.Current(middleware.CurrentUser(c).ID.String())
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get subscription",
		Data:    sub,
	})
}

func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(middleware.CurrentUser(c).ID.String()); err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Subscription cancelled",
	})
}
