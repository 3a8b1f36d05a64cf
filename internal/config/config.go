package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceStdin    = "stdin"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds every planner setting. Precedence, lowest first: defaults,
// the YAML file named by CONFIG_FILE, environment (including .env).
type Config struct {
	DepotX      int    `yaml:"depot_x"`
	DepotY      int    `yaml:"depot_y"`
	BatchSize   int    `yaml:"batch_size"`
	OrderCount  int    `yaml:"order_count"`
	TimeLimitMS int    `yaml:"time_limit_ms"`
	CheckEvery  int    `yaml:"check_every"`
	Seed        uint64 `yaml:"seed"`
	Constructor string `yaml:"constructor"`
	Moves       string `yaml:"moves"`
	OrderSource string `yaml:"order_source"`
	OrdersPath  string `yaml:"orders_path"`
	DatabaseURL string `yaml:"database_url"`
	MetricsFile string `yaml:"metrics_file"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

func Default() Config {
	return Config{
		DepotX:      400,
		DepotY:      400,
		BatchSize:   50,
		OrderCount:  1000,
		TimeLimitMS: 1900,
		CheckEvery:  32,
		Seed:        445,
		Constructor: "greedy",
		Moves:       "swap:1,reverse:1,relocate:1",
		OrderSource: SourceStdin,
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getUint64(key string, fallback uint64) (uint64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

// Load reads .env (a missing file is fine), the optional YAML file and the
// environment, then validates the result.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := Get("CONFIG_FILE", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	var err error
	ints := []struct {
		key string
		dst *int
	}{
		{"DEPOT_X", &c.DepotX},
		{"DEPOT_Y", &c.DepotY},
		{"BATCH_SIZE", &c.BatchSize},
		{"ORDER_COUNT", &c.OrderCount},
		{"TIME_LIMIT_MS", &c.TimeLimitMS},
		{"CHECK_EVERY", &c.CheckEvery},
	}
	for _, f := range ints {
		if *f.dst, err = getInt(f.key, *f.dst); err != nil {
			return err
		}
	}
	if c.Seed, err = getUint64("SEED", c.Seed); err != nil {
		return err
	}

	c.Constructor = Get("CONSTRUCTOR", c.Constructor)
	c.Moves = Get("MOVES", c.Moves)
	c.OrderSource = Get("ORDER_SOURCE", c.OrderSource)
	c.OrdersPath = Get("ORDERS_PATH", c.OrdersPath)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.MetricsFile = Get("METRICS_FILE", c.MetricsFile)
	c.LogLevel = Get("LOG_LEVEL", c.LogLevel)
	c.LogFormat = Get("LOG_FORMAT", c.LogFormat)
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("BATCH_SIZE must be >= 0, got %d", c.BatchSize))
	}
	if c.OrderCount < 0 {
		errs = append(errs, fmt.Errorf("ORDER_COUNT must be >= 0, got %d", c.OrderCount))
	}
	if c.TimeLimitMS <= 0 {
		errs = append(errs, fmt.Errorf("TIME_LIMIT_MS must be > 0, got %d", c.TimeLimitMS))
	}
	if c.CheckEvery <= 0 {
		errs = append(errs, fmt.Errorf("CHECK_EVERY must be > 0, got %d", c.CheckEvery))
	}
	switch c.Constructor {
	case "greedy", "fixed":
	default:
		errs = append(errs, fmt.Errorf("unknown CONSTRUCTOR %q", c.Constructor))
	}
	switch c.OrderSource {
	case SourceStdin:
	case SourceFile:
		if c.OrdersPath == "" {
			errs = append(errs, errors.New("ORDERS_PATH is required when ORDER_SOURCE=file"))
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when ORDER_SOURCE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ORDER_SOURCE %q", c.OrderSource))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat))
	}
	if _, err := c.MoveWeights(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMS) * time.Millisecond
}

// MoveWeights parses Moves, e.g. "swap:1,reverse:2". A bare name has weight 1.
// Move names themselves are checked by the services layer.
func (c Config) MoveWeights() (map[string]float64, error) {
	return ParseMoves(c.Moves)
}

func ParseMoves(s string) (map[string]float64, error) {
	weights := make(map[string]float64)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, raw, hasWeight := strings.Cut(part, ":")
		name = strings.ToLower(strings.TrimSpace(name))
		weight := 1.0
		if hasWeight {
			w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("MOVES: weight for %q: %w", name, err)
			}
			weight = w
		}
		if name == "" {
			return nil, fmt.Errorf("MOVES: empty move name in %q", part)
		}
		if _, dup := weights[name]; dup {
			return nil, fmt.Errorf("MOVES: move %q listed twice", name)
		}
		weights[name] = weight
	}
	if len(weights) == 0 {
		return nil, errors.New("MOVES: no moves configured")
	}
	return weights, nil
}
