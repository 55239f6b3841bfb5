package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultHTTPTimeoutSec = 20
	defaultTickMillis     = 250
	defaultRefreshSec     = 300
)

const (
	DefaultInstance   = "trs"
	defaultUserAgent  = "trs/0.1"
	defaultLogLevel   = "warn"
	configFolderName  = "trs"
	configFileName    = "config.toml"
	logFileName       = "trs.log"
	configPathEnvName = "XDG_CONFIG_HOME"
)

type Config struct {
	// Dir holds the per-instance databases and the UI log.
	Dir      string
	Instance string
	// DBPath, when set, wins over the instance-derived path.
	DBPath          string
	HTTPTimeout     time.Duration
	UserAgent       string
	Tick            time.Duration
	RefreshInterval time.Duration
	LogPath         string
	LogLevel        string
}

// DatabasePath resolves the SQLite file for the configured instance.
func (c Config) DatabasePath() string {
	if strings.TrimSpace(c.DBPath) != "" {
		return c.DBPath
	}
	instance := strings.TrimSpace(c.Instance)
	if instance == "" {
		instance = DefaultInstance
	}
	return filepath.Join(c.Dir, instance+".db")
}

func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	dir := configDir(home)

	cfg := Config{
		Dir:             dir,
		Instance:        DefaultInstance,
		HTTPTimeout:     defaultHTTPTimeoutSec * time.Second,
		UserAgent:       defaultUserAgent,
		Tick:            defaultTickMillis * time.Millisecond,
		RefreshInterval: defaultRefreshSec * time.Second,
		LogPath:         filepath.Join(dir, logFileName),
		LogLevel:        defaultLogLevel,
	}

	configPath, hasConfig, err := findConfigPath(home)
	if err != nil {
		return Config{}, err
	}
	if hasConfig {
		fileCfg, err := loadFileConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)

	if strings.TrimSpace(cfg.Instance) == "" {
		cfg.Instance = DefaultInstance
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeoutSec * time.Second
	}
	if cfg.Tick <= 0 {
		cfg.Tick = defaultTickMillis * time.Millisecond
	}
	if cfg.RefreshInterval < 0 {
		cfg.RefreshInterval = defaultRefreshSec * time.Second
	}
	if !validLogLevel(cfg.LogLevel) {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, nil
}

type fileConfig struct {
	Instance           *string `toml:"instance"`
	DBPath             *string `toml:"db_path"`
	HTTPTimeoutSeconds *int    `toml:"http_timeout_seconds"`
	UserAgent          *string `toml:"user_agent"`
	TickMillis         *int    `toml:"tick_millis"`
	RefreshSeconds     *int    `toml:"refresh_seconds"`
	LogPath            *string `toml:"log_path"`
	LogLevel           *string `toml:"log_level"`
}

func configDir(home string) string {
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, configFolderName)
	}
	return filepath.Join(home, ".config", configFolderName)
}

func findConfigPath(home string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdgConfigHome, configFolderName, configFileName))
	}
	candidates = append(candidates, filepath.Join(home, ".config", configFolderName, configFileName))

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory; expected a file", candidate)
			}
			return candidate, true, nil
		}
		if os.IsNotExist(err) {
			continue
		}
		return "", false, fmt.Errorf("failed to read config path %q: %w", candidate, err)
	}
	return "", false, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	if cfg.Instance != nil && strings.TrimSpace(*cfg.Instance) == "" {
		return fmt.Errorf("invalid config file %q: instance must be non-empty when provided", path)
	}
	if cfg.DBPath != nil && strings.TrimSpace(*cfg.DBPath) == "" {
		return fmt.Errorf("invalid config file %q: db_path must be non-empty when provided", path)
	}
	if cfg.HTTPTimeoutSeconds != nil && *cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid config file %q: http_timeout_seconds must be > 0", path)
	}
	if cfg.TickMillis != nil && *cfg.TickMillis <= 0 {
		return fmt.Errorf("invalid config file %q: tick_millis must be > 0", path)
	}
	if cfg.RefreshSeconds != nil && *cfg.RefreshSeconds < 0 {
		return fmt.Errorf("invalid config file %q: refresh_seconds must be >= 0", path)
	}
	if cfg.LogLevel != nil && !validLogLevel(*cfg.LogLevel) {
		return fmt.Errorf("invalid config file %q: log_level must be one of debug, info, warn, error", path)
	}
	return nil
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	if fileCfg.Instance != nil {
		cfg.Instance = strings.TrimSpace(*fileCfg.Instance)
	}
	if fileCfg.DBPath != nil {
		cfg.DBPath = *fileCfg.DBPath
	}
	if fileCfg.HTTPTimeoutSeconds != nil {
		cfg.HTTPTimeout = time.Duration(*fileCfg.HTTPTimeoutSeconds) * time.Second
	}
	if fileCfg.UserAgent != nil && strings.TrimSpace(*fileCfg.UserAgent) != "" {
		cfg.UserAgent = *fileCfg.UserAgent
	}
	if fileCfg.TickMillis != nil {
		cfg.Tick = time.Duration(*fileCfg.TickMillis) * time.Millisecond
	}
	if fileCfg.RefreshSeconds != nil {
		cfg.RefreshInterval = time.Duration(*fileCfg.RefreshSeconds) * time.Second
	}
	if fileCfg.LogPath != nil && strings.TrimSpace(*fileCfg.LogPath) != "" {
		cfg.LogPath = *fileCfg.LogPath
	}
	if fileCfg.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*fileCfg.LogLevel))
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("TRS_INSTANCE"); ok && strings.TrimSpace(v) != "" {
		cfg.Instance = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("TRS_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("TRS_HTTP_TIMEOUT_SECONDS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	if v, ok := os.LookupEnv("TRS_USER_AGENT"); ok && v != "" {
		cfg.UserAgent = v
	}
	if v, ok := os.LookupEnv("TRS_TICK_MILLIS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Tick = time.Duration(n) * time.Millisecond
		}
	}
	if v, ok := os.LookupEnv("TRS_REFRESH_SECONDS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RefreshInterval = time.Duration(n) * time.Second
		}
	}
	if v, ok := os.LookupEnv("TRS_LOG_PATH"); ok && v != "" {
		cfg.LogPath = v
	}
	if v, ok := os.LookupEnv("TRS_LOG_LEVEL"); ok && validLogLevel(v) {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
}

func validLogLevel(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
