package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	DBMaxConns   int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns   int32    `mapstructure:"DB_MIN_CONNS"`
	AuthIssuer   string   `mapstructure:"AUTH_ISSUER"`
	AuthJWKSURL  string   `mapstructure:"AUTH_JWKS_URL"`
	AuthAudience string   `mapstructure:"AUTH_AUDIENCE"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`

	// Headless Chromium used by the document rasterizer.
	ChromePath     string `mapstructure:"CHROME_PATH"`
	RenderWidthPx  int    `mapstructure:"RENDER_WIDTH_PX"`
	RenderScale    int    `mapstructure:"RENDER_SCALE"`
	RenderSettleMS int    `mapstructure:"RENDER_SETTLE_MS"`

	// Clinic identity snapshotted onto new superbills.
	ClinicName    string `mapstructure:"CLINIC_NAME"`
	ClinicAddress string `mapstructure:"CLINIC_ADDRESS"`
	ClinicPhone   string `mapstructure:"CLINIC_PHONE"`
	ClinicEmail   string `mapstructure:"CLINIC_EMAIL"`
	ClinicEIN     string `mapstructure:"CLINIC_EIN"`
	ClinicNPI     string `mapstructure:"CLINIC_NPI"`
	ProviderName  string `mapstructure:"PROVIDER_NAME"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RENDER_WIDTH_PX", 794)
	v.SetDefault("RENDER_SCALE", 2)
	v.SetDefault("RENDER_SETTLE_MS", 300)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"AUTH_ISSUER", "AUTH_JWKS_URL", "AUTH_AUDIENCE", "CORS_ORIGINS",
		"CHROME_PATH", "RENDER_WIDTH_PX", "RENDER_SCALE", "RENDER_SETTLE_MS",
		"CLINIC_NAME", "CLINIC_ADDRESS", "CLINIC_PHONE", "CLINIC_EMAIL",
		"CLINIC_EIN", "CLINIC_NPI", "PROVIDER_NAME",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active — all requests get admin access.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Clinic bundles the provider identity fields copied onto a superbill at
// creation time. Values are opaque strings interpolated verbatim into
// generated documents.
type Clinic struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	EIN      string
	NPI      string
	Provider string
}

func (c *Config) Clinic() Clinic {
	return Clinic{
		Name:     c.ClinicName,
		Address:  c.ClinicAddress,
		Phone:    c.ClinicPhone,
		Email:    c.ClinicEmail,
		EIN:      c.ClinicEIN,
		NPI:      c.ClinicNPI,
		Provider: c.ProviderName,
	}
}
