package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/founder-assessment/internal/dto"
	"github.com/fadilmartias/founder-assessment/internal/logger"
	"github.com/fadilmartias/founder-assessment/internal/middleware"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/fadilmartias/founder-assessment/internal/report"
	"github.com/fadilmartias/founder-assessment/internal/repository"
	"github.com/fadilmartias/founder-assessment/internal/usecase"
	"github.com/fadilmartias/founder-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AssessmentHandler struct {
	uc            *usecase.AssessmentUsecase
	log           *logger.Logger
	appName       string
	maxAudioBytes int64
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase, log *logger.Logger, appName string, maxAudioBytes int64) *AssessmentHandler {
	return &AssessmentHandler{uc: uc, log: log.Component("http"), appName: appName, maxAudioBytes: maxAudioBytes}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)

	api := app.Group("/api")
	api.Post("/process-interview", middleware.RateLimiter(10, time.Minute), h.ProcessInterview)
	api.Get("/report/:reportId", h.GetReport)
	api.Get("/report/:reportId/html", h.GetReportHTML)
	api.Get("/report/:reportId/export", h.ExportReport)
	api.Get("/health", h.Health)
}

func (h *AssessmentHandler) ProcessInterview(c *fiber.Ctx) error {
	entry := logger.FromContext(c.UserContext(), h.log.Entry)

	var req dto.ProcessInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid form data",
		}, err)
	}

	var clip *model.AudioClip
	if file, err := c.FormFile("audio"); err == nil {
		spooled, cleanup, err := util.SpoolAudio(file, h.maxAudioBytes, entry)
		defer cleanup()
		if err != nil {
			if errors.Is(err, util.ErrAudioTooLarge) {
				return util.ErrorResponse(c, util.ErrorResponseFormat{
					Code:    fiber.StatusRequestEntityTooLarge,
					Message: fmt.Sprintf("Audio file is too large (max %dMB)", h.maxAudioBytes/(1024*1024)),
				})
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "Failed to read audio upload",
			}, err)
		}
		clip = spooled
	}

	res, err := h.uc.Process(c.UserContext(), req.ToSubmission(clip))
	if err != nil {
		message := usecase.MsgInternal
		var pe *usecase.PipelineError
		if errors.As(err, &pe) {
			message = pe.Message
			err = pe.Cause
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: message,
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview processed successfully",
		Data: fiber.Map{
			"reportId":         res.ReportID,
			"partialReport":    res.RenderedText,
			"detectedLanguage": res.DetectedLanguage,
		},
	})
}

func (h *AssessmentHandler) GetReport(c *fiber.Ctx) error {
	rep, err := h.findReport(c)
	if rep == nil {
		return err
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Data: fiber.Map{
			"report":    dto.NewReportDTO(rep),
			"createdAt": rep.CreatedAt,
		},
	})
}

func (h *AssessmentHandler) GetReportHTML(c *fiber.Ctx) error {
	rep, err := h.findReport(c)
	if rep == nil {
		return err
	}
	page, err := report.RenderHTML(*rep)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to render report",
		}, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

func (h *AssessmentHandler) ExportReport(c *fiber.Ctx) error {
	rep, err := h.findReport(c)
	if rep == nil {
		return err
	}
	buf, err := report.ExportXLSX(*rep)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to export report",
		}, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, report.ExportFilename(*rep)))
	return c.Send(buf.Bytes())
}

// findReport loads the report named in the path. A nil report means the
// error response was already written and err is the result of writing it.
func (h *AssessmentHandler) findReport(c *fiber.Ctx) (*model.Report, error) {
	rep, err := h.uc.GetReport(c.UserContext(), c.Params("reportId"))
	if err == nil {
		return rep, nil
	}
	if errors.Is(err, repository.ErrReportNotFound) {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Report not found",
		})
	}
	return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "Failed to load report",
	}, err)
}

func (h *AssessmentHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"services":  h.uc.Health(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AssessmentHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        h.appName,
		"description": "Founder interview assessment service",
		"endpoints": []fiber.Map{
			{"method": fiber.MethodPost, "path": "/api/process-interview"},
			{"method": fiber.MethodGet, "path": "/api/report/:reportId"},
			{"method": fiber.MethodGet, "path": "/api/report/:reportId/html"},
			{"method": fiber.MethodGet, "path": "/api/report/:reportId/export"},
			{"method": fiber.MethodGet, "path": "/api/health"},
		},
	})
}
