package safetyHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	safetyService "station-guard/internal/api/safety/service"
	"station-guard/internal/middleware"
)

type SafetyHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	safetyService safetyService.ISafetyService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	safetyService safetyService.ISafetyService,
) *SafetyHandler {
	return &SafetyHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		safetyService: safetyService,
	}
}

func (h *SafetyHandler) Start(srv fiber.Router) {
	safety := srv.Group("/safety")

	safety.Post("/report", h.AssessFrame)
	safety.Post("/report/batch", h.middleware.NewRateLimiter, h.AssessBatch)
	safety.Get("/report/latest", h.GetLatestAssessment)
	safety.Get("/equipment", h.GetEquipmentCatalog)
	safety.Get("/checklist/:emergency_type", h.GetChecklist)
	safety.Post("/frames", h.middleware.NewRateLimiter, h.UploadFrame)

	safety.Use("/ws", h.upgradeWebSocket)
	safety.Get("/ws", websocket.New(h.handleWebSocket))
}

func (h *SafetyHandler) upgradeWebSocket(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		ctx.Locals("allowed", true)
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
