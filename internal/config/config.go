package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rhyrak/go-timetable/internal/parser"
)

type Configuration struct {
	Parser   ParserConfig   `mapstructure:"parser"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
}

type ParserConfig struct {
	// Policy is "abort" or "collect".
	Policy  string `mapstructure:"policy"`
	Verbose bool   `mapstructure:"verbose"`
}

type ExportConfig struct {
	// Dir receives one CSV file per section. Empty disables export.
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
	// UploadLimit is the largest accepted problem file in bytes.
	UploadLimit int64 `mapstructure:"upload_limit"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		Parser:   ParserConfig{Policy: "abort"},
		Log:      LogConfig{Level: "info", Format: "console"},
		Server:   ServerConfig{Port: 3001, UploadLimit: 8 << 20},
		Database: DatabaseConfig{Path: "db/problems.db"},
	}
}

// Load reads configuration from path (or ./timetable.yaml, ./config/timetable.yaml
// when path is empty) and TIMETABLE_* environment variables.
// Environment beats file beats defaults.
func Load(path string) (*Configuration, error) {
	v := viper.New()
	def := NewDefaultConfiguration()

	v.SetDefault("parser.policy", def.Parser.Policy)
	v.SetDefault("parser.verbose", def.Parser.Verbose)
	v.SetDefault("export.dir", def.Export.Dir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.upload_limit", def.Server.UploadLimit)
	v.SetDefault("db.path", def.Database.Path)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("timetable")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Configuration{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	if _, err := parser.ParsePolicy(c.Parser.Policy); err != nil {
		return fmt.Errorf("parser.policy: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	if c.Server.UploadLimit <= 0 {
		return fmt.Errorf("server.upload_limit: must be positive")
	}
	return nil
}

// ParserOptions converts the parser section into parser.Options.
// The logger is left for the caller to fill in.
func (c *Configuration) ParserOptions() parser.Options {
	policy, _ := parser.ParsePolicy(c.Parser.Policy)
	return parser.Options{Policy: policy, Verbose: c.Parser.Verbose}
}
