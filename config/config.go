package config

import (
	"os"
	"strconv"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "EDGEGAME_"

type Config struct {
	Store  edgegame.StoreOpts
	Solver SolverConfig
	App    AppConfig
}

type SolverConfig struct {
	EarlyExit bool // stop searching a position once a move scores every vertex
	SaveMemo  bool // flush the memo table to the store after solving
}

type AppConfig struct {
	InputPathname string // edge list read when no generator is named
	LogVerbosity  int    // klog -v level
}

// Load reads an optional .env file and then EDGEGAME_* environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		klog.V(2).Infof("no .env file loaded, using environment variables")
	}

	cfg := &Config{
		Store: edgegame.StoreOpts{
			Kind:          edgegame.StoreKind(getEnv("STORE", string(edgegame.StoreText))),
			Pathname:      getEnv("MEMO_PATH", edgegame.DefaultMemoPathname),
			RedisURL:      getEnv("REDIS_URL", ""),
			RedisKey:      getEnv("REDIS_KEY", edgegame.DefaultRedisKey),
			SkipMalformed: getEnvAsBool("SKIP_MALFORMED", false),
		},
		Solver: SolverConfig{
			EarlyExit: getEnvAsBool("EARLY_EXIT", true),
			SaveMemo:  getEnvAsBool("SAVE_MEMO", true),
		},
		App: AppConfig{
			InputPathname: getEnv("INPUT_PATH", edgegame.DefaultInputPathname),
			LogVerbosity:  getEnvAsInt("LOG_V", 1),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Kind {
	case edgegame.StoreText, edgegame.StoreBadger, edgegame.StoreRedis, edgegame.StoreNone:
	default:
		return errors.Wrapf(edgegame.ErrUnknownStore, "%s%s=%q", EnvPrefix, "STORE", c.Store.Kind)
	}

	if c.Store.Kind == edgegame.StoreRedis && c.Store.RedisURL == "" {
		return errors.Wrapf(edgegame.ErrBadStoreParam, "%sREDIS_URL is required for the redis store", EnvPrefix)
	}

	if c.App.LogVerbosity < 0 {
		return errors.Wrapf(edgegame.ErrBadConfig, "%sLOG_V must be >= 0", EnvPrefix)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		klog.Warningf("invalid integer for %s%s, using default: %d", EnvPrefix, key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		klog.Warningf("invalid bool for %s%s, using default: %v", EnvPrefix, key, defaultValue)
		return defaultValue
	}

	return value
}
