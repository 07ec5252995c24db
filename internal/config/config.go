package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/joho/godotenv"
)

const (
	StorageMemory    = "memory"
	StorageFirestore = "firestore"
)

// Config stores runtime configuration for the api and worker processes.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	LogLevel                    logging.Level
	CORSAllowedOrigins          []string
	SwaggerEnabled              bool
	PprofEnabled                bool
	PprofAddr                   string
	StorageBackend              string
	MemoryFixturePath           string
	FirestoreProjectID          string
	FirestoreCredentialsFile    string
	CacheEnabled                bool
	CacheTTL                    time.Duration
	DBURL                       string
	DBDisablePreparedBinary     bool
	DBMaxOpenConns              int
	DBMaxIdleConns              int
	JobLedgerEnabled            bool
	JobWorkerPoolSize           int
	JobDedupWindow              time.Duration
	InternalJobToken            string
	RedisURL                    string
	RecalcQueueName             string
	RecalcQueueMaxRetries       int
	RecalcQueueWorkers          int
	OpenDotaBaseURL             string
	OpenDotaAPIKey              string
	OpenDotaTimeout             time.Duration
	OpenDotaMaxRetries          int
	OpenDotaRequestGap          time.Duration
	OpenDotaCircuitEnabled      bool
	OpenDotaCircuitFailureCount int
	OpenDotaCircuitOpenTimeout  time.Duration
	OpenDotaCircuitHalfOpenReq  int
	AuthVerifyURL               string
	AuthServiceKey              string
	AuthTimeout                 time.Duration
	AuthCacheTTL                time.Duration
	AuthCircuitEnabled          bool
	AuthCircuitFailureCount     int
	AuthCircuitOpenTimeout      time.Duration
	AuthCircuitHalfOpenReq      int
	AdminUserIDs                []string
	PickemSheetID               string
	PickemSheetName             string
	GoogleSheetsCredentialsFile string
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
}

// Load reads the process environment. An optional .env file in the working
// directory is applied first and never overrides variables already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return load()
}

func load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	logLevel, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	// Reprocess batches are synchronous and spaced by the provider gap.
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	useMemoryStore, err := strconv.ParseBool(getEnv("USE_MEMORY_STORE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse USE_MEMORY_STORE: %w", err)
	}
	firestoreProjectID := strings.TrimSpace(getEnv("FIRESTORE_PROJECT_ID", ""))
	storageBackend := StorageFirestore
	if useMemoryStore {
		storageBackend = StorageMemory
	} else if firestoreProjectID == "" {
		return Config{}, fmt.Errorf("FIRESTORE_PROJECT_ID is required unless USE_MEMORY_STORE=true")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	jobLedgerEnabled, err := strconv.ParseBool(getEnv("JOB_LEDGER_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_LEDGER_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if jobLedgerEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when JOB_LEDGER_ENABLED=true")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	dbMaxIdleConns, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if dbMaxOpenConns < 1 || dbMaxIdleConns < 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1 and DB_MAX_IDLE_CONNS >= 0")
	}

	jobWorkerPoolSize, err := getEnvAsInt("JOB_WORKER_POOL_SIZE", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_WORKER_POOL_SIZE: %w", err)
	}
	if jobWorkerPoolSize < 1 {
		return Config{}, fmt.Errorf("JOB_WORKER_POOL_SIZE must be >= 1")
	}
	jobDedupWindow, err := time.ParseDuration(getEnv("JOB_DEDUP_WINDOW", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_DEDUP_WINDOW: %w", err)
	}
	if jobDedupWindow <= 0 {
		return Config{}, fmt.Errorf("JOB_DEDUP_WINDOW must be > 0")
	}

	recalcQueueMaxRetries, err := getEnvAsInt("RECALC_QUEUE_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECALC_QUEUE_MAX_RETRIES: %w", err)
	}
	if recalcQueueMaxRetries < 0 {
		return Config{}, fmt.Errorf("RECALC_QUEUE_MAX_RETRIES must be >= 0")
	}
	recalcQueueWorkers, err := getEnvAsInt("RECALC_QUEUE_WORKERS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECALC_QUEUE_WORKERS: %w", err)
	}
	if recalcQueueWorkers < 1 {
		return Config{}, fmt.Errorf("RECALC_QUEUE_WORKERS must be >= 1")
	}

	openDotaTimeout, err := time.ParseDuration(getEnv("OPENDOTA_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENDOTA_TIMEOUT: %w", err)
	}
	if openDotaTimeout <= 0 {
		return Config{}, fmt.Errorf("OPENDOTA_TIMEOUT must be > 0")
	}
	openDotaMaxRetries, err := getEnvAsInt("OPENDOTA_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENDOTA_MAX_RETRIES: %w", err)
	}
	if openDotaMaxRetries < 0 {
		return Config{}, fmt.Errorf("OPENDOTA_MAX_RETRIES must be >= 0")
	}
	openDotaRequestGap, err := time.ParseDuration(getEnv("OPENDOTA_REQUEST_GAP", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENDOTA_REQUEST_GAP: %w", err)
	}
	if openDotaRequestGap < 0 {
		return Config{}, fmt.Errorf("OPENDOTA_REQUEST_GAP must be >= 0")
	}
	openDotaCircuit, err := parseCircuit("OPENDOTA")
	if err != nil {
		return Config{}, err
	}

	authTimeout, err := time.ParseDuration(getEnv("AUTH_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_TIMEOUT: %w", err)
	}
	authCacheTTL, err := time.ParseDuration(getEnv("AUTH_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_CACHE_TTL: %w", err)
	}
	if authCacheTTL < 0 {
		return Config{}, fmt.Errorf("AUTH_CACHE_TTL must be >= 0")
	}
	authCircuit, err := parseCircuit("AUTH")
	if err != nil {
		return Config{}, err
	}
	authVerifyURL := strings.TrimSpace(getEnv("AUTH_VERIFY_URL", ""))
	if appEnv == EnvProd && authVerifyURL == "" {
		return Config{}, fmt.Errorf("AUTH_VERIFY_URL is required when APP_ENV=prod")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "automatic-tournament-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                 readTimeout,
		WriteTimeout:                writeTimeout,
		LogLevel:                    logLevel,
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:              swaggerEnabled,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		StorageBackend:              storageBackend,
		MemoryFixturePath:           strings.TrimSpace(getEnv("MEMORY_FIXTURE_PATH", "")),
		FirestoreProjectID:          firestoreProjectID,
		FirestoreCredentialsFile:    strings.TrimSpace(getEnv("FIRESTORE_CREDENTIALS_FILE", "")),
		CacheEnabled:                cacheEnabled,
		CacheTTL:                    cacheTTL,
		DBURL:                       dbURL,
		DBDisablePreparedBinary:     dbDisablePreparedBinary,
		DBMaxOpenConns:              dbMaxOpenConns,
		DBMaxIdleConns:              dbMaxIdleConns,
		JobLedgerEnabled:            jobLedgerEnabled,
		JobWorkerPoolSize:           jobWorkerPoolSize,
		JobDedupWindow:              jobDedupWindow,
		InternalJobToken:            strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		RedisURL:                    strings.TrimSpace(getEnv("REDIS_URL", "")),
		RecalcQueueName:             strings.TrimSpace(getEnv("RECALC_QUEUE_NAME", "tournament:recalc")),
		RecalcQueueMaxRetries:       recalcQueueMaxRetries,
		RecalcQueueWorkers:          recalcQueueWorkers,
		OpenDotaBaseURL:             strings.TrimSpace(getEnv("OPENDOTA_BASE_URL", "https://api.opendota.com/api")),
		OpenDotaAPIKey:              strings.TrimSpace(getEnv("OPENDOTA_API_KEY", "")),
		OpenDotaTimeout:             openDotaTimeout,
		OpenDotaMaxRetries:          openDotaMaxRetries,
		OpenDotaRequestGap:          openDotaRequestGap,
		OpenDotaCircuitEnabled:      openDotaCircuit.enabled,
		OpenDotaCircuitFailureCount: openDotaCircuit.failureCount,
		OpenDotaCircuitOpenTimeout:  openDotaCircuit.openTimeout,
		OpenDotaCircuitHalfOpenReq:  openDotaCircuit.halfOpenReq,
		AuthVerifyURL:               authVerifyURL,
		AuthServiceKey:              strings.TrimSpace(getEnv("AUTH_SERVICE_KEY", "")),
		AuthTimeout:                 authTimeout,
		AuthCacheTTL:                authCacheTTL,
		AuthCircuitEnabled:          authCircuit.enabled,
		AuthCircuitFailureCount:     authCircuit.failureCount,
		AuthCircuitOpenTimeout:      authCircuit.openTimeout,
		AuthCircuitHalfOpenReq:      authCircuit.halfOpenReq,
		AdminUserIDs:                splitCSV(getEnv("ADMIN_USER_IDS", "")),
		PickemSheetID:               strings.TrimSpace(getEnv("PICKEM_SHEET_ID", "")),
		PickemSheetName:             strings.TrimSpace(getEnv("PICKEM_SHEET_NAME", "Pickem")),
		GoogleSheetsCredentialsFile: strings.TrimSpace(getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", "")),
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		UptraceLogsEnabled:          uptraceLogsEnabled,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.RecalcQueueName == "" {
		return Config{}, fmt.Errorf("RECALC_QUEUE_NAME cannot be empty")
	}

	return cfg, nil
}

type circuitSettings struct {
	enabled      bool
	failureCount int
	openTimeout  time.Duration
	halfOpenReq  int
}

// parseCircuit reads <PREFIX>_CIRCUIT_{ENABLED,FAILURE_COUNT,OPEN_TIMEOUT,HALF_OPEN_MAX_REQ}.
func parseCircuit(prefix string) (circuitSettings, error) {
	var out circuitSettings
	var err error

	key := prefix + "_CIRCUIT_ENABLED"
	if out.enabled, err = strconv.ParseBool(getEnv(key, "true")); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}

	key = prefix + "_CIRCUIT_FAILURE_COUNT"
	if out.failureCount, err = getEnvAsInt(key, 5); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}
	if out.failureCount < 1 {
		return out, fmt.Errorf("%s must be >= 1", key)
	}

	key = prefix + "_CIRCUIT_OPEN_TIMEOUT"
	if out.openTimeout, err = time.ParseDuration(getEnv(key, "15s")); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}
	if out.openTimeout <= 0 {
		return out, fmt.Errorf("%s must be > 0", key)
	}

	key = prefix + "_CIRCUIT_HALF_OPEN_MAX_REQ"
	if out.halfOpenReq, err = getEnvAsInt(key, 2); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}
	if out.halfOpenReq < 1 {
		return out, fmt.Errorf("%s must be >= 1", key)
	}

	return out, nil
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

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
