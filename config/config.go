package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

// Prefix of every environment variable read by Load. Unprefixed names such as PORT are
// accepted as a fallback.
const Prefix = "FISCAL"

// Config holds the project config values
type Config struct {
	Port                string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	BaseUrl             string        `envconfig:"BASE_URL" validate:"omitempty,url"`
	Env                 string        `envconfig:"ENV" default:"local" validate:"oneof=local development production"`
	GeolocationDelay    time.Duration `envconfig:"GEOLOCATION_DELAY" default:"2s" validate:"gte=0"`
	SubmissionDelay     time.Duration `envconfig:"SUBMISSION_DELAY" default:"1500ms" validate:"gte=0"`
	NotificationTTL     time.Duration `envconfig:"NOTIFICATION_TTL" default:"3s" validate:"gt=0"`
	SessionIdleTimeout  time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m" validate:"gt=0"`
	SweepSchedule       string        `envconfig:"SWEEP_SCHEDULE" default:"@every 5m" validate:"required"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s" validate:"gt=0"`
	MaxUploadBytes      int64         `envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"gt=0"`
	ExperiencePerReport int           `envconfig:"XP_PER_REPORT" default:"15" validate:"gte=0"`
}

// Load reads the configuration from the environment. A .env file in the working directory is
// loaded first unless ENV is production.
func Load() (*Config, error) {
	if os.Getenv(Prefix+"_ENV") != "production" && os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

// New sets up all config related services
func New() (*Config, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(c.Env)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return c, nil
}

// Addr is the listen address of the http server
func (c Config) Addr() string {
	return ":" + c.Port
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "status", httpStatusCode, "error", err)
	body := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		body.Response.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(body)
}
