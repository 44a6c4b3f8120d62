package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Execution environments decide where result tables land.
const (
	ExecLocal     = "local"     // CSV files under OutDir
	ExecWarehouse = "warehouse" // Postgres tables via DB_URL
)

// Config stores runtime configuration for one pipeline run.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	ExecEnv        string

	DataDir      string
	OutDir       string
	ArchiveDumps bool

	TopTeams      int
	PerTeam       int
	TopPlayers    int
	DiffThreshold float64
	TempThreshold float64

	FPLBaseURL    string
	FPLUserAgent  string
	FPLTimeout    time.Duration
	FPLMaxRetries int
	FetchWorkers  int
	ForceFetch    bool

	DBURL string

	UptraceEnabled bool
	UptraceDSN     string

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	execEnv, err := parseExecEnv(getEnv("EXEC_ENV", ExecLocal))
	if err != nil {
		return Config{}, err
	}

	topTeams, err := getEnvAsInt("TOP_TEAMS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse TOP_TEAMS: %w", err)
	}
	if topTeams < 1 {
		return Config{}, fmt.Errorf("TOP_TEAMS must be >= 1")
	}

	perTeam, err := getEnvAsInt("PER_TEAM", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PER_TEAM: %w", err)
	}
	if perTeam < 1 {
		return Config{}, fmt.Errorf("PER_TEAM must be >= 1")
	}

	topPlayers, err := getEnvAsInt("TOP_PLAYERS", 40)
	if err != nil {
		return Config{}, fmt.Errorf("parse TOP_PLAYERS: %w", err)
	}
	if topPlayers < 1 {
		return Config{}, fmt.Errorf("TOP_PLAYERS must be >= 1")
	}

	diffThreshold, err := getEnvAsFloat("DIFF_THRESHOLD", 10.0)
	if err != nil {
		return Config{}, fmt.Errorf("parse DIFF_THRESHOLD: %w", err)
	}
	if diffThreshold < 0 {
		return Config{}, fmt.Errorf("DIFF_THRESHOLD must be >= 0")
	}

	tempThreshold, err := getEnvAsFloat("TEMP_THRESHOLD", 50.0)
	if err != nil {
		return Config{}, fmt.Errorf("parse TEMP_THRESHOLD: %w", err)
	}
	if tempThreshold < diffThreshold {
		return Config{}, fmt.Errorf("TEMP_THRESHOLD must be >= DIFF_THRESHOLD")
	}

	fplTimeout, err := time.ParseDuration(getEnv("FPL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_TIMEOUT: %w", err)
	}
	if fplTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_TIMEOUT must be > 0")
	}

	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}

	fetchWorkers, err := getEnvAsInt("MAX_FETCH_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_FETCH_WORKERS: %w", err)
	}
	if fetchWorkers < 1 {
		return Config{}, fmt.Errorf("MAX_FETCH_WORKERS must be >= 1")
	}

	forceFetch, err := strconv.ParseBool(getEnv("FORCE_FETCH", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FORCE_FETCH: %w", err)
	}

	archiveDumps, err := strconv.ParseBool(getEnv("ARCHIVE_DUMPS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_DUMPS: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if execEnv == ExecWarehouse && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when EXEC_ENV=warehouse")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "fpl-weekly"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		ExecEnv:        execEnv,
		DataDir:        getEnv("DATA_DIR", "."),
		OutDir:         getEnv("OUT_DIR", "./fpl_analysis"),
		ArchiveDumps:   archiveDumps,
		TopTeams:       topTeams,
		PerTeam:        perTeam,
		TopPlayers:     topPlayers,
		DiffThreshold:  diffThreshold,
		TempThreshold:  tempThreshold,
		FPLBaseURL:     getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api"),
		FPLUserAgent:   getEnv("FPL_USER_AGENT", "fpl-weekly/1.0"),
		FPLTimeout:     fplTimeout,
		FPLMaxRetries:  fplMaxRetries,
		FetchWorkers:   fetchWorkers,
		ForceFetch:     forceFetch,
		DBURL:          dbURL,
		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseExecEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case ExecLocal, ExecWarehouse:
		return value, nil
	default:
		return "", fmt.Errorf("invalid EXEC_ENV %q: valid values are %s, %s", v, ExecLocal, ExecWarehouse)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}
