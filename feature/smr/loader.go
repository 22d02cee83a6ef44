package smr

import (
	"smr-checker/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new SMR feature. When db is set the run history
// table is migrated; a failed migration only disables history.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, settings Settings) *Feature {
	if logger == nil {
		logger = zap.NewNop()
	}
	if db != nil {
		if err := NewHistory(db).Migrate(); err != nil {
			logger.Warn("Run history unavailable", zap.Error(err))
			db = nil
		}
	}

	// Local directories are never exposed over HTTP.
	settings.AllowDir = false

	svc := NewService(client, bucket, logger, db, settings)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "smr"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
