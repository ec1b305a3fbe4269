package profile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/chronoparse/plugin/datetime"
	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// Profile is the configuration of the CLI and the HTTP server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// Recognizer configuration
	Culture  string // CHRONOPARSE_CULTURE (default: en-us)
	Options  string // CHRONOPARSE_OPTIONS, e.g. "SkipFromToMerge|CalendarMode" (default: None)
	Timezone string // CHRONOPARSE_TIMEZONE, IANA name used for reference instants (default: UTC)
	Lazy     bool   // CHRONOPARSE_LAZY, build models on first use (default: false)

	// Rate limiting of the HTTP server, per client IP
	RateLimit float64 // CHRONOPARSE_RATE_LIMIT requests per second (default: 10)
	RateBurst int     // CHRONOPARSE_RATE_BURST (default: 20)

	// MaxQueryLength caps the bytes of one HTTP query.
	MaxQueryLength int // CHRONOPARSE_MAX_QUERY_LENGTH (default: 8192)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from CHRONOPARSE_* environment variables.
// Fields already set keep their value when the variable is empty.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("CHRONOPARSE_MODE", p.Mode)
	p.Addr = getEnvOrDefault("CHRONOPARSE_ADDR", p.Addr)
	if v, err := strconv.Atoi(os.Getenv("CHRONOPARSE_PORT")); err == nil {
		p.Port = v
	}
	p.Culture = getEnvOrDefault("CHRONOPARSE_CULTURE", p.Culture)
	p.Options = getEnvOrDefault("CHRONOPARSE_OPTIONS", p.Options)
	p.Timezone = getEnvOrDefault("CHRONOPARSE_TIMEZONE", p.Timezone)
	if v := os.Getenv("CHRONOPARSE_LAZY"); v != "" {
		p.Lazy = v == "true"
	}
	if v, err := strconv.ParseFloat(os.Getenv("CHRONOPARSE_RATE_LIMIT"), 64); err == nil {
		p.RateLimit = v
	}
	if v, err := strconv.Atoi(os.Getenv("CHRONOPARSE_RATE_BURST")); err == nil {
		p.RateBurst = v
	}
	if v, err := strconv.Atoi(os.Getenv("CHRONOPARSE_MAX_QUERY_LENGTH")); err == nil {
		p.MaxQueryLength = v
	}
}

// Validate fills defaults and rejects values the recognizer cannot serve.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Port == 0 {
		p.Port = 8081
	}
	if p.Port < 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	code := strings.ToLower(strings.TrimSpace(p.Culture))
	if code == "" {
		code = recognizer.DefaultCulture
	}
	mapped := recognizer.MapToNearestLanguage(code, culture.Supported())
	if _, ok := culture.Lookup(mapped); !ok {
		return errors.Errorf("unsupported culture %q (supported: %s)", p.Culture, strings.Join(culture.Supported(), ", "))
	}
	p.Culture = mapped

	if _, err := p.RecognizerOptions(); err != nil {
		return err
	}
	if _, err := p.Location(); err != nil {
		return err
	}

	if p.RateLimit <= 0 {
		p.RateLimit = 10
	}
	if p.RateBurst <= 0 {
		p.RateBurst = 20
	}
	if p.MaxQueryLength <= 0 {
		p.MaxQueryLength = 8192
	}
	return nil
}

// RecognizerOptions parses Options into the recognizer bitmask.
func (p *Profile) RecognizerOptions() (datetime.Options, error) {
	o, ok := datetime.ParseOptions(p.Options)
	if !ok {
		if n, err := strconv.Atoi(strings.TrimSpace(p.Options)); err == nil && datetime.Options(n).Valid() {
			return datetime.Options(n), nil
		}
		return 0, errors.Errorf("invalid recognizer options %q", p.Options)
	}
	return o, nil
}

// Location resolves Timezone.
func (p *Profile) Location() (*time.Location, error) {
	loc, err := dateutil.LoadLocation(p.Timezone)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load timezone")
	}
	return loc, nil
}

// String renders the profile for startup logs.
func (p *Profile) String() string {
	return fmt.Sprintf("mode=%s addr=%s port=%d culture=%s options=%q timezone=%q lazy=%t",
		p.Mode, p.Addr, p.Port, p.Culture, p.Options, p.Timezone, p.Lazy)
}
