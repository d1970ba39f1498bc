package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelcast/internal/alerting"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "fuelcast", cfg.App.Name)
	assert.Equal(t, 7, cfg.Prediction.Window)
	assert.Equal(t, 6, cfg.Prediction.DefaultHour)
	assert.False(t, cfg.Alerting.Enabled)
	assert.InDelta(t, 1.85, cfg.Alerting.Threshold, 1e-9)
	assert.Equal(t, "email", cfg.Alerting.Method)
	assert.Empty(t, cfg.Database.DSN)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Prediction.DefaultHour = 24
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Alerting.Method = "pigeon"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Alerting.Threshold = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Watch.Interval = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Catalog.Products = []ProductConfig{{ID: "x", BasePrice: -1}}
	assert.Error(t, cfg.Validate())
}

func TestBuildCatalogDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cat := cfg.BuildCatalog()
	assert.Len(t, cat.Products(), 4)
	assert.Len(t, cat.Stores(), 4)
}

func TestBuildCatalogOverride(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Catalog.Products = []ProductConfig{
		{ID: "lpg", Name: "LPG", BasePrice: 1.10, Variance: 0.05},
	}

	cat := cfg.BuildCatalog()
	products := cat.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "lpg", products[0].ID)
	assert.Equal(t, "1.100", products[0].BasePrice.StringFixed(3))

	// Stores keep the built-in defaults when not overridden.
	assert.Len(t, cat.Stores(), 4)
}

func TestAlertConfigConversion(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Alerting.Enabled = true
	cfg.Alerting.Method = "sms"

	alert := cfg.AlertConfig()
	assert.True(t, alert.Enabled)
	assert.Equal(t, alerting.MethodSMS, alert.Method)
	assert.Equal(t, "1.85", alert.Threshold.StringFixed(2))
}
