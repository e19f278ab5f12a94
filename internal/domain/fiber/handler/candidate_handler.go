package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/middleware"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/usecase"
	"github.com/hiresphere/api/internal/util"
)

const maxResumeSize = 5 * 1024 * 1024

type CandidateHandler struct {
	uc    *usecase.CandidateUsecase
	users *repository.UserRepository
}

func NewCandidateHandler(uc *usecase.CandidateUsecase, users *repository.UserRepository) *CandidateHandler {
	return &CandidateHandler{uc: uc, users: users}
}

func (h *CandidateHandler) RegisterRoutes(api fiber.Router) {
	candidates := api.Group("/candidates",
		middleware.RequireAuth(h.users),
		middleware.RequireRole(model.RoleHR, model.RoleAdmin))
	candidates.Post("/", h.Create)
	candidates.Get("/", h.List)
	candidates.Get("/:id", h.Get)
	candidates.Patch("/:id", h.Update)
	candidates.Delete("/:id", h.Delete)
	candidates.Post("/:id/resume", h.UploadResume)
}

func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	candidate, err := h.uc.Create(middleware.CurrentUser(c), &req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Candidate created",
		Data:    candidate,
	})
}

func (h *CandidateHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)
	candidates, pagination, err := h.uc.List(middleware.CurrentUser(c).ID.String(), page, pageSize)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success get candidates",
		Data:       candidates,
		Pagination: pagination,
	})
}

func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	candidate, err := h.uc.Get(middleware.CurrentUser(c).ID.String(), c.Params("id"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get candidate",
		Data:    candidate,
	})
}

func (h *CandidateHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	candidate, err := h.uc.Update(middleware.CurrentUser(c).ID.String(), c.Params("id"), &req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Candidate updated",
		Data:    candidate,
	})
}

func (h *CandidateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(middleware.CurrentUser(c).ID.String(), c.Params("id")); err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Candidate deleted",
	})
}

func (h *CandidateHandler) UploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is required",
		}, err)
	}
	if file.Size > maxResumeSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file size is too large (max 5MB)",
		})
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "unsupported resume file type",
		})
	}

	savePath := filepath.Join("./uploads/resumes/", fmt.Sprintf("%s-%s", c.Params("id"), file.Filename))
	if err := c.SaveFile(file, savePath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save resume file",
		}, err)
	}
	defer os.Remove(savePath)

	candidate, err := h.uc.AttachResume(middleware.CurrentUser(c).ID.String(), c.Params("id"), savePath)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Resume processed",
		Data:    candidate,
	})
}
