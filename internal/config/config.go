package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	Store   StoreConfig
	Catalog CatalogConfig
	Pricing PricingConfig
	Gate    GateConfig
	Region  RegionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"gametopup-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// StoreConfig holds catalog store settings.
type StoreConfig struct {
	Type string `envconfig:"STORE_TYPE" default:"mongodb"` // mongodb, postgres, or sqlite
	Path string `envconfig:"STORE_SQLITE_PATH" default:"./data/catalog.db"`
	// PostgreSQL settings
	Host     string `envconfig:"STORE_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"STORE_DB_PORT" default:"5432"`
	Name     string `envconfig:"STORE_DB_NAME" default:"gametopup"`
	User     string `envconfig:"STORE_DB_USER" default:"postgres"`
	Password string `envconfig:"STORE_DB_PASS" default:""`
	SSLMode  string `envconfig:"STORE_DB_SSLMODE" default:"disable"`
	// MongoDB settings
	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"gametopup"`
}

// CatalogConfig holds upstream catalog API settings and sync-job policy.
type CatalogConfig struct {
	BaseURL         string        `envconfig:"CATALOG_API_URL" default:""`
	APIKey          string        `envconfig:"CATALOG_API_KEY" default:""`
	DumpSlugsRaw    string        `envconfig:"CATALOG_DUMP_SLUGS" default:""`
	SentinelSlug    string        `envconfig:"CATALOG_SENTINEL_SLUG" default:"test-1637"`
	ReconcilePolicy string        `envconfig:"CATALOG_RECONCILE_POLICY" default:"replace"` // replace or upsert
	RequestTimeout  time.Duration `envconfig:"CATALOG_REQUEST_TIMEOUT" default:"10s"`
}

// DumpSlugs returns the configured detail-dump slug list. The list is
// maintained by hand and may contain duplicates or stale entries; callers
// must tolerate both.
func (c *CatalogConfig) DumpSlugs() []string {
	if c.DumpSlugsRaw == "" {
		return nil
	}
	parts := strings.Split(c.DumpSlugsRaw, ",")
	slugs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

// PricingConfig holds the markup rates applied at read time. These control
// revenue margin directly and must not silently vary between endpoints, so
// they are injected once at startup and never read from ambient state.
type PricingConfig struct {
	SellingMarkupPercent float64 `envconfig:"SELLING_MARKUP_PERCENT" default:"6"`
	DummyMarkupPercent   float64 `envconfig:"DUMMY_MARKUP_PERCENT" default:"9"`
}

// GateConfig holds the account-check passthrough settings.
type GateConfig struct {
	BaseURL        string        `envconfig:"GATE_BASE_URL" default:""`
	APIKey         string        `envconfig:"GATE_API_KEY" default:""`
	DefaultGame    string        `envconfig:"GATE_DEFAULT_GAME" default:"mlbb"`
	RequestTimeout time.Duration `envconfig:"GATE_REQUEST_TIMEOUT" default:"10s"`
}

// RegionConfig holds the region-lookup passthrough settings.
type RegionConfig struct {
	BaseURL        string        `envconfig:"REGION_BASE_URL" default:"https://xpreloads.com/api/api"`
	DefaultGame    string        `envconfig:"REGION_DEFAULT_GAME" default:"mlbb"`
	RequestTimeout time.Duration `envconfig:"REGION_REQUEST_TIMEOUT" default:"10s"`
}

// PostgresDSN returns the PostgreSQL connection string.
func (s *StoreConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.User, s.Password, s.Host, s.Port, s.Name, s.SSLMode)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
