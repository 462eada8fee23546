package app

import (
	"errors"
	"fmt"
)

// Modes of operation.
const (
	ModeRun      = "run"
	ModeValidate = "validate"
	ModeVerify   = "verify"
)

// Collaborator backends.
const (
	BackendOffline = "offline"
	BackendGemini  = "gemini"
)

// S3Config holds the optional S3 artifact sink settings. The sink is enabled
// when Bucket is set.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Mode string

	PlanPaths   []string // hcl files with unit blocks
	PolicyPath  string   // hcl file with a policy block
	Requirement string

	// File and Language are used by the validate mode.
	File     string
	Language string

	MaxRetries int
	VerifyRuns int
	CacheSize  int

	Backend      string
	GeminiAPIKey string
	GeminiModel  string
	HTTPTimeout  string

	OutDir      string
	S3          S3Config
	NATSURL     string
	SocketIOURL string

	Verbose         bool
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg for its mode and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeRun
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendOffline
	}

	switch cfg.Mode {
	case ModeValidate:
		if cfg.File == "" {
			return nil, errors.New("validate mode requires a file to validate")
		}
		return &cfg, nil
	case ModeRun, ModeVerify:
	default:
		return nil, fmt.Errorf("unknown mode '%s': must be 'run', 'validate', or 'verify'", cfg.Mode)
	}

	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must not be negative, got %d", cfg.MaxRetries)
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("cache size must not be negative, got %d", cfg.CacheSize)
	}
	if cfg.Mode == ModeVerify && cfg.VerifyRuns < 2 {
		return nil, fmt.Errorf("verify mode needs at least 2 runs, got %d", cfg.VerifyRuns)
	}

	switch cfg.Backend {
	case BackendOffline:
		if len(cfg.PlanPaths) == 0 {
			return nil, errors.New("the offline backend requires a plan path")
		}
	case BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("the gemini backend requires GEMINI_API_KEY")
		}
		if len(cfg.PlanPaths) == 0 && cfg.Requirement == "" {
			return nil, errors.New("the gemini backend requires a plan path or a requirement")
		}
	default:
		return nil, fmt.Errorf("unknown backend '%s': must be 'offline' or 'gemini'", cfg.Backend)
	}
	return &cfg, nil
}
