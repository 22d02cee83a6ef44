package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		status int
	}{
		{"Disabled", "", "", 200},
		{"Valid key", "secret", "secret", 200},
		{"Wrong key", "secret", "guess", 401},
		{"Missing key", "secret", "", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(Config{ApiKey: tt.key}))
			app.Get("/smr/history", func(c *fiber.Ctx) error { return c.SendStatus(200) })

			req := httptest.NewRequest("GET", "/smr/history", nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
