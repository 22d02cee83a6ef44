package smr

import (
	"errors"

	"smr-checker/core/logger"
	"smr-checker/core/patch"
	"smr-checker/feature/smr/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for SMR reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.Run{}
	var _ = patch.Comparison{}
	return &Handler{service: service}
}

// RegisterRoutes registers the smr routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/smr")
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/patch", h.HandlePatch)
	group.Get("/history", h.HandleHistory)
}

// HandleReconcile compares an MR snapshot against an SMR snapshot.
// @Summary Reconcile MR and SMR
// @Description Loads both deviceinfo snapshots from storage, runs every check and returns the verdict.
// @Tags smr
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Snapshots to compare"
// @Success 200 {object} Report "Reconciliation Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Snapshot Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /smr/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	l.Info("Starting reconciliation", zap.String("mr", req.MR), zap.String("smr", req.SMR))

	report, err := h.service.Reconcile(c.Context(), req)
	if err != nil {
		return h.fail(c, l, "Reconciliation failed", err)
	}

	l.Info("Reconciliation completed",
		zap.Bool("can_proceed", report.Verdict.CanProceed),
		zap.Strings("fail_reasons", report.Verdict.FailReasons))

	return c.JSON(report)
}

// HandlePatch compares two security patch levels.
// @Summary Compare Security Patches
// @Description Validates both security patch dates against the accepted window and checks that the SMR patch is newer.
// @Tags smr
// @Accept json
// @Produce json
// @Param request body PatchRequest true "Patch levels"
// @Success 200 {object} patch.Comparison "Patch Comparison"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /smr/patch [post]
func (h *Handler) HandlePatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req PatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.CheckPatch(req)
	if err != nil {
		return h.fail(c, l, "Patch comparison failed", err)
	}

	return c.JSON(result)
}

// HandleHistory lists stored reconciliation runs.
// @Summary List Reconciliation Runs
// @Description Returns the most recent stored runs, newest first. Requires a database.
// @Tags smr
// @Produce json
// @Param limit query int false "Maximum number of runs (default 20)"
// @Success 200 {array} models.Run "Runs"
// @Failure 503 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /smr/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.ListRuns(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, l, "Listing runs failed", err)
	}

	return c.JSON(runs)
}

// fail maps service errors onto HTTP status codes.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidRequest):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrSnapshotNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		status = fiber.StatusServiceUnavailable
	}

	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
