package smr

import (
	"testing"

	"smr-checker/core/patch"
	"smr-checker/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	// Pass nil db: history stays disabled
	feature := NewFeature(mockClient, "test-bucket", logger, nil, Settings{Patch: patch.DefaultConfig(), AllowDir: true})

	assert.Equal(t, "smr", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.False(t, feature.service.allowDir, "directories are never served over HTTP")
	assert.False(t, feature.service.History().Enabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}

func TestLoader_MigratesHistory(t *testing.T) {
	feature := NewFeature(new(mocks.Client), "test-bucket", zap.NewNop(), setupHistoryDB(t), Settings{})
	assert.True(t, feature.service.History().Enabled())
}
