package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"fuelcast/internal/alerting"
	"fuelcast/internal/catalog"
	"fuelcast/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logging    logging.Config   `mapstructure:"logging"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Prediction PredictionConfig `mapstructure:"prediction"`
	Alerting   AlertingConfig   `mapstructure:"alerting"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Export     ExportConfig     `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// CatalogConfig optionally overrides the built-in fuel and store
// reference data. Empty lists keep the defaults.
type CatalogConfig struct {
	Products []ProductConfig `mapstructure:"products"`
	Stores   []StoreConfig   `mapstructure:"stores"`
}

// ProductConfig is one configured fuel product.
type ProductConfig struct {
	ID        string  `mapstructure:"id"`
	Name      string  `mapstructure:"name"`
	Octane    string  `mapstructure:"octane"`
	BasePrice float64 `mapstructure:"base_price"`
	Variance  float64 `mapstructure:"variance"`
}

// StoreConfig is one configured retail location.
type StoreConfig struct {
	ID       string  `mapstructure:"id"`
	Name     string  `mapstructure:"name"`
	Address  string  `mapstructure:"address"`
	Distance string  `mapstructure:"distance"`
	Lat      float64 `mapstructure:"lat"`
	Lng      float64 `mapstructure:"lng"`
}

// PredictionConfig tunes the prediction engine.
type PredictionConfig struct {
	Window      int `mapstructure:"window"`
	DefaultHour int `mapstructure:"default_hour"`
}

// AlertingConfig defines the default alert setting and delivery
// gateways.
type AlertingConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Threshold      float64       `mapstructure:"threshold"`
	Method         string        `mapstructure:"method"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Webhooks       WebhookConfig `mapstructure:"webhooks"`
}

// WebhookConfig holds the gateway endpoints alerts are handed to.
// Delivery itself happens outside this process.
type WebhookConfig struct {
	EmailURL string `mapstructure:"email_url"`
	SMSURL   string `mapstructure:"sms_url"`
}

// DatabaseConfig encapsulates optional PostgreSQL connectivity. An
// empty DSN disables persistence entirely.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// WatchConfig governs the periodic alert-evaluation loop.
type WatchConfig struct {
	Interval        time.Duration `mapstructure:"interval"`
	AlignToCycle    bool          `mapstructure:"align_to_cycle"`
	AdvisoryLockKey int64         `mapstructure:"advisory_lock_key"`
	StartupDelay    time.Duration `mapstructure:"startup_delay"`
	Fuel            string        `mapstructure:"fuel"`
	Store           string        `mapstructure:"store"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FUELCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fuelcast")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("prediction.window", 7)
	v.SetDefault("prediction.default_hour", 6)

	v.SetDefault("alerting.enabled", false)
	v.SetDefault("alerting.threshold", 1.85)
	v.SetDefault("alerting.method", "email")
	v.SetDefault("alerting.cooldown", "30m")
	v.SetDefault("alerting.request_timeout", "10s")

	v.SetDefault("watch.interval", "15m")
	v.SetDefault("watch.align_to_cycle", true)
	v.SetDefault("watch.advisory_lock_key", int64(0x6675656c))
	v.SetDefault("watch.startup_delay", "0s")

	v.SetDefault("export.max_data_points", 10000)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Prediction.Window < 0 {
		return fmt.Errorf("prediction.window cannot be negative")
	}
	if c.Prediction.DefaultHour < 0 || c.Prediction.DefaultHour > 23 {
		return fmt.Errorf("prediction.default_hour must be between 0 and 23")
	}
	if c.Alerting.Threshold <= 0 {
		return fmt.Errorf("alerting.threshold must be greater than zero")
	}
	if _, err := alerting.ParseMethod(c.Alerting.Method); err != nil {
		return fmt.Errorf("alerting.method: %w", err)
	}
	if c.Alerting.Cooldown < 0 {
		return fmt.Errorf("alerting.cooldown cannot be negative")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be greater than zero")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	for _, p := range c.Catalog.Products {
		if p.ID == "" {
			return fmt.Errorf("catalog.products entries require an id")
		}
		if p.BasePrice <= 0 {
			return fmt.Errorf("catalog product %s: base_price must be greater than zero", p.ID)
		}
		if p.Variance < 0 {
			return fmt.Errorf("catalog product %s: variance cannot be negative", p.ID)
		}
	}
	return nil
}

// BuildCatalog materialises the configured catalog, falling back to the
// built-in reference data when no products are configured.
func (c *Config) BuildCatalog() catalog.Catalog {
	if len(c.Catalog.Products) == 0 {
		return catalog.Default()
	}

	products := make([]catalog.Product, 0, len(c.Catalog.Products))
	for _, p := range c.Catalog.Products {
		products = append(products, catalog.Product{
			ID:        p.ID,
			Name:      p.Name,
			Octane:    p.Octane,
			BasePrice: decimal.NewFromFloat(p.BasePrice),
			Variance:  decimal.NewFromFloat(p.Variance),
		})
	}

	stores := make([]catalog.Store, 0, len(c.Catalog.Stores))
	for _, s := range c.Catalog.Stores {
		stores = append(stores, catalog.Store{
			ID:          s.ID,
			Name:        s.Name,
			Address:     s.Address,
			Distance:    s.Distance,
			Coordinates: catalog.Coordinates{Lat: s.Lat, Lng: s.Lng},
		})
	}
	if len(stores) == 0 {
		stores = catalog.Default().Stores()
	}

	return catalog.New(products, stores)
}

// AlertConfig converts the configured alert defaults into an engine
// alert configuration.
func (c *Config) AlertConfig() alerting.Config {
	method, err := alerting.ParseMethod(c.Alerting.Method)
	if err != nil {
		method = alerting.MethodEmail
	}
	return alerting.Config{
		Enabled:   c.Alerting.Enabled,
		Threshold: decimal.NewFromFloat(c.Alerting.Threshold),
		Method:    method,
	}
}
