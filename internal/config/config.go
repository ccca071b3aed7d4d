package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Data DataConfig `mapstructure:"data"`
	Log  LogConfig  `mapstructure:"log"`
	UI   UIConfig   `mapstructure:"ui"`
}

// DataConfig holds storage configuration
type DataConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format   string `mapstructure:"format" validate:"oneof=json console"`
	Output   string `mapstructure:"output" validate:"oneof=stdout stderr file"`
	Filename string `mapstructure:"filename" validate:"required_if=Output file"`
}

// UIConfig holds terminal UI configuration
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// Load reads configuration from defaults, an optional config file, .env and
// DAYBOOK_* environment variables, in increasing order of precedence.
// configFile may be empty.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := setDefaults(v); err != nil {
		return nil, err
	}
	bindEnvVars(v)

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Dir returns ~/.config/daybook
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "daybook"), nil
}

func setDefaults(v *viper.Viper) error {
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	v.SetDefault("data.path", filepath.Join(dir, "daybook.db"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "file")
	v.SetDefault("log.filename", filepath.Join(dir, "daybook.log"))

	v.SetDefault("ui.alt_screen", true)
	return nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("data.path", "DAYBOOK_DB_PATH")
	v.BindEnv("log.level", "DAYBOOK_LOG_LEVEL")
	v.BindEnv("log.format", "DAYBOOK_LOG_FORMAT")
	v.BindEnv("log.output", "DAYBOOK_LOG_OUTPUT")
	v.BindEnv("log.filename", "DAYBOOK_LOG_FILE")
	v.BindEnv("ui.alt_screen", "DAYBOOK_ALT_SCREEN")
}

// readConfigFile reads configFile, or config.yaml from Dir() when it exists.
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
		return nil
	}

	dir, err := Dir()
	if err != nil {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q check (value %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value()))
		}
		return err
	}
	return nil
}
