package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/middleware"
	"github.com/hiresphere/api/internal/usecase"
	"github.com/hiresphere/api/internal/util"
)

// PublicInterviewHandler is the unauthenticated candidate surface. Every
// route is rate limited because the only credential is the link token.
type PublicInterviewHandler struct {
	links      *usecase.LinkUsecase
	interviews *usecase.InterviewUsecase
	analysis   *usecase.AnalysisUsecase
}

func NewPublicInterviewHandler(links *usecase.LinkUsecase,
	interviews *usecase.InterviewUsecase, analysis *usecase.AnalysisUsecase) *PublicInterviewHandler {
	return &PublicInterviewHandler{links: links, interviews: interviews, analysis: analysis}
}

func (h *PublicInterviewHandler) RegisterRoutes(api fiber.Router) {
	public := api.Group("/public/interviews", middleware.RateLimiter(30, time.Minute))
	public.Get("/:token", h.Validate)
	public.Post("/:token/start", h.Start)
	public.Post("/sessions/:id/responses", h.SubmitResponse)
	public.Post("/sessions/:id/complete", h.Complete)
	public.Get("/sessions/:id/status", h.Status)
	public.Get("/sessions/:id/feedback", h.Feedback)
}

func (h *PublicInterviewHandler) Validate(c *fiber.Ctx) error {
	result, err := h.links.Validate(c.Params("token"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success validate interview link",
		Data:    result,
	})
}

func (h *PublicInterviewHandler) Start(c *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	session, err := h.interviews.Start(c.Context(), c.Params("token"), &req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Interview session started",
		Data:    session,
	})
}

func (h *PublicInterviewHandler) SubmitResponse(c *fiber.Ctx) error {
	var req dto.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	if err := h.interviews.SubmitResponse(c.Params("id"), &req); err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Response recorded",
	})
}

func (h *PublicInterviewHandler) Complete(c *fiber.Ctx) error {
	if _, err := h.interviews.Complete(c.Context(), c.Params("id")); err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Interview completed, analysis in progress",
		Data:    fiber.Map{"id": c.Params("id"), "status": "processing"},
	})
}

func (h *PublicInterviewHandler) Status(c *fiber.Ctx) error {
	status, err := h.analysis.Status(c.Params("id"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get analysis status",
		Data:    status,
	})
}

func (h *PublicInterviewHandler) Feedback(c *fiber.Ctx) error {
	feedback, err := h.analysis.Feedback(c.Params("id"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get interview feedback",
		Data:    feedback,
	})
}
