package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/app"
	"github.com/specialistvlad/axiomgrid/modules/gemini"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Environment variables consulted when the matching flag is not set.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGeminiModel  = "AXIOM_GEMINI_MODEL"
	EnvS3Endpoint   = "AXIOM_S3_ENDPOINT"
	EnvS3Region     = "AXIOM_S3_REGION"
	EnvS3AccessKey  = "AXIOM_S3_ACCESS_KEY"
	EnvS3SecretKey  = "AXIOM_S3_SECRET_KEY"
	EnvS3Bucket     = "AXIOM_S3_BUCKET"
	EnvS3UseSSL     = "AXIOM_S3_USE_SSL"
	EnvNATSURL      = "AXIOM_NATS_URL"
	EnvSocketIOURL  = "AXIOM_SOCKETIO_URL"
)

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("axiomgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
AxiomGrid - Deterministic, placeholder-free code generation.

Usage:
  axiomgrid [options] [PLAN_PATH...]
  axiomgrid -mode validate -file FILE [-language LANG]

Arguments:
  PLAN_PATH
    Path to a single .hcl file or a directory containing .hcl files with
    unit blocks.

Environment:
  GEMINI_API_KEY, AXIOM_GEMINI_MODEL, AXIOM_S3_ENDPOINT, AXIOM_S3_REGION,
  AXIOM_S3_ACCESS_KEY, AXIOM_S3_SECRET_KEY, AXIOM_S3_BUCKET, AXIOM_S3_USE_SSL,
  AXIOM_NATS_URL, AXIOM_SOCKETIO_URL

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Comma-separated plan files or directories.")
	pFlag := flagSet.String("p", "", "Comma-separated plan files or directories (shorthand).")
	requirementFlag := flagSet.String("requirement", "", "Natural-language requirement for the planner.")
	policyFlag := flagSet.String("policy", "", "Path to an .hcl file with a policy block.")
	modeFlag := flagSet.String("mode", app.ModeRun, "Mode of operation. Options: 'run', 'validate', 'verify'.")
	fileFlag := flagSet.String("file", "", "File to check in validate mode.")
	languageFlag := flagSet.String("language", "", "Language of -file. Guessed from the extension when empty.")
	retriesFlag := flagSet.Int("max-retries", 10, "Repair attempts per unit before it fails.")
	verifyRunsFlag := flagSet.Int("verify-runs", 3, "Number of runs compared in verify mode.")
	backendFlag := flagSet.String("backend", app.BackendOffline, "Collaborator backend. Options: 'offline' or 'gemini'.")
	outFlag := flagSet.String("out", "", "Directory to write passing artifacts to.")
	cacheFlag := flagSet.Int("cache-size", 1024, "Validation cache entries. 0 disables the cache.")
	httpTimeoutFlag := flagSet.String("http-timeout", "60s", "Timeout for collaborator HTTP requests.")
	modelFlag := flagSet.String("gemini-model", "", "Gemini model name. Defaults to $"+EnvGeminiModel+" or "+gemini.DefaultModel+".")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	verboseFlag := flagSet.Bool("verbose", false, "Print every repair iteration.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var planPaths []string
	for _, raw := range []string{*planFlag, *pFlag} {
		planPaths = append(planPaths, splitList(raw)...)
	}
	planPaths = append(planPaths, flagSet.Args()...)
	slog.Debug("Plan paths determined.", "paths", planPaths)

	mode := strings.ToLower(*modeFlag)
	if mode != app.ModeValidate && len(planPaths) == 0 && *requirementFlag == "" {
		slog.Debug("No plan or requirement provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	geminiModel := *modelFlag
	if geminiModel == "" {
		geminiModel = os.Getenv(EnvGeminiModel)
	}

	config, err := app.NewConfig(app.Config{
		Mode:         mode,
		PlanPaths:    planPaths,
		PolicyPath:   *policyFlag,
		Requirement:  *requirementFlag,
		File:         *fileFlag,
		Language:     strings.ToLower(*languageFlag),
		MaxRetries:   *retriesFlag,
		VerifyRuns:   *verifyRunsFlag,
		CacheSize:    *cacheFlag,
		Backend:      strings.ToLower(*backendFlag),
		GeminiAPIKey: os.Getenv(EnvGeminiAPIKey),
		GeminiModel:  geminiModel,
		HTTPTimeout:  *httpTimeoutFlag,
		OutDir:       *outFlag,
		S3: app.S3Config{
			Endpoint:  os.Getenv(EnvS3Endpoint),
			Region:    os.Getenv(EnvS3Region),
			AccessKey: os.Getenv(EnvS3AccessKey),
			SecretKey: os.Getenv(EnvS3SecretKey),
			Bucket:    os.Getenv(EnvS3Bucket),
			UseSSL:    envBool(EnvS3UseSSL),
		},
		NATSURL:         os.Getenv(EnvNATSURL),
		SocketIOURL:     os.Getenv(EnvSocketIOURL),
		Verbose:         *verboseFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "mode", config.Mode, "backend", config.Backend)
	return config, false, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
