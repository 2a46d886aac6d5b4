package analysisHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	analysisService "station-guard/internal/api/analysis/service"
	"station-guard/internal/middleware"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	analysisService analysisService.IAnalysisService,
) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		analysisService: analysisService,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	analysis := srv.Group("/analysis")

	analysis.Post("/positioning", h.AnalyzePositioning)
	analysis.Post("/condition", h.AssessCondition)
	analysis.Post("/labeling", h.TriageLabels)
	analysis.Post("/context", h.InferContext)

	labels := srv.Group("/labels")
	labels.Get("/custom", h.GetCustomLabels)
	labels.Put("/custom", h.middleware.NewTokenMiddleware, h.UpdateCustomLabels)
}
