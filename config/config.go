package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// HTTP
	HTTPAddr    string   `envconfig:"HTTP_ADDR" default:":8080"`
	StaticDir   string   `envconfig:"STATIC_DIR" default:"public"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	SiteURL     string   `envconfig:"SITE_URL" default:"https://soundwalk.band"`

	// Mongo
	MongoURI string `envconfig:"MONGODB_URI" required:"true"`
	MongoDB  string `envconfig:"MONGODB_DB" default:"soundwalk"`

	// JWT
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Google Calendar
	GoogleCredentials string `envconfig:"GOOGLE_CREDENTIALS"`
	GoogleCalendarID  string `envconfig:"GOOGLE_CALENDAR_ID" default:"soundwalkgigs@gmail.com"`
	Timezone          string `envconfig:"TIMEZONE" default:"Europe/London"`
	SyncSchedule      string `envconfig:"SYNC_SCHEDULE"`

	// Web Push
	VAPIDPublicKey  string `envconfig:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `envconfig:"VAPID_PRIVATE_KEY"`
	VAPIDSubject    string `envconfig:"VAPID_SUBJECT" default:"mailto:admin@soundwalk.local"`

	// First-run admin account
	AdminSeedUser     string `envconfig:"ADMIN_SEED_USER"`
	AdminSeedPassword string `envconfig:"ADMIN_SEED_PASSWORD"`

	PayslipLogoPath string `envconfig:"PAYSLIP_LOGO_PATH"`

	// Observability
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Env          string `envconfig:"ENV" default:"dev"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile      string `envconfig:"LOG_FILE"`
}

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("failed to load config: %w", err)
	}
	c.SiteURL = strings.TrimRight(strings.TrimSpace(c.SiteURL), "/")

	if strings.TrimSpace(c.MongoURI) == "" {
		return c, fmt.Errorf("MONGODB_URI is empty")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return c, fmt.Errorf("JWT_SECRET is empty")
	}

	if c.JWTTTL <= 0 {
		return c, fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if (c.AdminSeedUser == "") != (c.AdminSeedPassword == "") {
		return c, fmt.Errorf("ADMIN_SEED_USER and ADMIN_SEED_PASSWORD must be set together")
	}
	return c, nil
}

// Location resolves the band timezone.
func (c App) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// PushEnabled reports whether both VAPID keys are configured.
func (c App) PushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}
