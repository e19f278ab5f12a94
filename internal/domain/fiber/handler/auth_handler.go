package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/middleware"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/usecase"
	"github.com/hiresphere/api/internal/util"
)

type AuthHandler struct {
	uc    *usecase.AuthUsecase
	users *repository.UserRepository
}

func NewAuthHandler(uc *usecase.AuthUsecase, users *repository.UserRepository) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

func (h *AuthHandler) RegisterRoutes(api fiber.Router) {
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.RequireAuth(h.users), h.Me)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	user, err := h.uc.Register(&req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Registration successful",
		Data:    user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	token, err := h.uc.Login(&req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Login successful",
		Data:    token,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get profile",
		Data:    middleware.CurrentUser(c),
	})
}
