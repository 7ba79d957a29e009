package cli

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func TestCreateFiberConfig(t *testing.T) {
	appName := "Test App"
	config := createFiberConfig(appName)

	assert.Equal(t, appName, config.AppName, "AppName should match input")
	assert.Equal(t, fiber.HeaderXForwardedFor, config.ProxyHeader)
	assert.Greater(t, config.WriteTimeout, config.IdleTimeout)
}

func TestCreateFiberConfigAppNameFormat(t *testing.T) {
	tests := []struct {
		name     string
		appName  string
		expected string
	}{
		{
			name:     "simple name",
			appName:  "LP Explorer",
			expected: "LP Explorer",
		},
		{
			name:     "name with version",
			appName:  "LP Explorer v1.0.0",
			expected: "LP Explorer v1.0.0",
		},
		{
			name:     "empty name",
			appName:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createFiberConfig(tt.appName)
			assert.Equal(t, tt.expected, config.AppName)
		})
	}
}
