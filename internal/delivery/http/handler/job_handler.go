package handler

import (
	"encoding/json"
	"time"

	"shutterbid/internal/delivery/http/middleware"
	"shutterbid/internal/domain/market"
	"shutterbid/internal/pkg/response"
	"shutterbid/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/:jobId", h.Delete)
}

type createJobRequest struct {
	Description   string              `json:"description"`
	Services      []market.ServiceTag `json:"services"`
	City          string              `json:"city"`
	Area          string              `json:"area"`
	ExactAddress  string              `json:"exactAddress"`
	Radius        int                 `json:"radius"`
	Date          string              `json:"date"`
	DateRange     *market.DateRange   `json:"dateRange"`
	Duration      string              `json:"duration"`
	Difficulty    market.Difficulty   `json:"difficulty"`
	BudgetMin     *float64            `json:"budgetMin"`
	BudgetMax     *float64            `json:"budgetMax"`
	BudgetUnknown bool                `json:"budgetUnknown"`
	ExpiresAt     *time.Time          `json:"expiresAt"`

	PhotoDetails      json.RawMessage `json:"photoDetails"`
	VideoDetails      json.RawMessage `json:"videoDetails"`
	DroneDetails      json.RawMessage `json:"droneDetails"`
	ShortVideoDetails json.RawMessage `json:"shortVideoDetails"`
	EditingDetails    json.RawMessage `json:"editingDetails"`
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	job, err := h.uc.Create(c.Context(), ident, usecase.CreateJobInput{
		Description:   req.Description,
		Services:      req.Services,
		City:          req.City,
		Area:          req.Area,
		ExactAddress:  req.ExactAddress,
		Radius:        req.Radius,
		Date:          req.Date,
		DateRange:     req.DateRange,
		Duration:      req.Duration,
		Difficulty:    req.Difficulty,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		BudgetUnknown: req.BudgetUnknown,
		ExpiresAt:     req.ExpiresAt,

		PhotoDetails:      req.PhotoDetails,
		VideoDetails:      req.VideoDetails,
		DroneDetails:      req.DroneDetails,
		ShortVideoDetails: req.ShortVideoDetails,
		EditingDetails:    req.EditingDetails,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job created successfully", fiber.Map{"job": job})
}

func (h *JobHandler) List(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	jobs, err := h.uc.List(c.Context(), ident)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "", fiber.Map{"jobs": jobs})
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	if err := h.uc.Delete(c.Context(), ident, c.Params("jobId")); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}
