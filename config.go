package qwalk

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Mode decides what happens to the walk between checkpoints.
type Mode string

const (
	// ModeCumulative keeps evolving the same state across checkpoints.
	ModeCumulative Mode = "cumulative"
	// ModeIndependent restarts from the initial state before every checkpoint.
	ModeIndependent Mode = "independent"
)

type OutputConfig struct {
	Path   string `yaml:"path"`
	Format Format `yaml:"format"`
}

type LoggingConfig struct {
	// Level is "info" or "debug". Debug logs every step.
	Level string `yaml:"level"`
}

type Config struct {
	Borders       Borders       `yaml:"borders"`
	Start         int           `yaml:"start"`
	Schedule      Schedule      `yaml:"schedule"`
	BiasThreshold float64       `yaml:"bias_threshold"`
	Seed          uint64        `yaml:"seed"`
	Mode          Mode          `yaml:"mode"`
	Output        OutputConfig  `yaml:"output"`
	Logging       LoggingConfig `yaml:"logging"`
}

func NewConfig() *Config {
	return &Config{
		Borders:       DefaultBorders(),
		Start:         0,
		Schedule:      DefaultSchedule(),
		BiasThreshold: 0.9,
		Seed:          0,
		Mode:          ModeCumulative,
		Output: OutputConfig{
			Path:   "quantum-walks.txt",
			Format: FormatText,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	return cfg, nil
}

/*
ApplyEnv overrides fields from QWALK_* environment variables, after loading a
.env file from the working directory when one exists. A variable that is set
but cannot be parsed is a configuration error.
*/
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(ErrInvalidConfig, "loading .env: %v", err)
	}

	if err := envInt("QWALK_LEFT", &c.Borders.Left); err != nil {
		return err
	}
	if err := envInt("QWALK_RIGHT", &c.Borders.Right); err != nil {
		return err
	}
	if err := envInt("QWALK_START", &c.Start); err != nil {
		return err
	}

	if v := os.Getenv("QWALK_SCHEDULE"); v != "" {
		schedule, err := ParseSchedule(v)
		if err != nil {
			return err
		}
		c.Schedule = schedule
	}

	if v := os.Getenv("QWALK_BIAS_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "QWALK_BIAS_THRESHOLD=%q", v)
		}
		c.BiasThreshold = f
	}

	if v := os.Getenv("QWALK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "QWALK_SEED=%q", v)
		}
		c.Seed = seed
	}

	if v := os.Getenv("QWALK_MODE"); v != "" {
		c.Mode = Mode(v)
	}
	if v := os.Getenv("QWALK_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("QWALK_FORMAT"); v != "" {
		c.Output.Format = Format(v)
	}
	if v := os.Getenv("QWALK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}

// Validate reports the first configuration problem, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.Borders.Validate(); err != nil {
		return err
	}

	if !c.Borders.Contains(c.Start) {
		return errors.Wrapf(ErrInvalidConfig, "start %d outside borders %s", c.Start, c.Borders)
	}

	if err := c.Schedule.Validate(); err != nil {
		return err
	}

	if c.BiasThreshold < 0 || c.BiasThreshold > 1 {
		return errors.Wrapf(ErrInvalidConfig, "bias threshold %v outside [0, 1]", c.BiasThreshold)
	}

	switch c.Mode {
	case ModeCumulative, ModeIndependent:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown mode %q", c.Mode)
	}

	switch c.Output.Format {
	case FormatText, FormatMsgpack:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown output format %q", c.Output.Format)
	}

	switch c.Logging.Level {
	case "", "info", "debug":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown log level %q", c.Logging.Level)
	}

	return nil
}

// ParseSchedule reads a comma separated list such as "10,20,30".
func ParseSchedule(s string) (Schedule, error) {
	var out Schedule

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "schedule entry %q", field)
		}
		out = append(out, n)
	}

	return out, nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%s=%q", key, v)
	}

	*dst = n
	return nil
}
