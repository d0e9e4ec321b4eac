package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/csvops"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/sheet"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the base name of the optional config file (nricdiff.yaml).
	ConfigName = "nricdiff"

	// EnvPrefix prefixes environment overrides, e.g. NRICDIFF_NAME_COLUMN.
	EnvPrefix = "NRICDIFF"

	// DefaultOutput is the download name of the comparison workbook.
	DefaultOutput = "nric_name_comparison.xlsx"
)

// Config keys.
const (
	KeyNameColumn   = "name_column"
	KeySerialColumn = "serial_column"
	KeyAddedSheet   = "added_sheet"
	KeyRemovedSheet = "removed_sheet"
	KeyOutput       = "output"
	KeyCharset      = "charset"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyListen       = "listen"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(distinctSheets, Config{})
	return v
}

// distinctSheets rejects result sheet names that would land on the same worksheet:
// sheet names are truncated and compared case-insensitively.
func distinctSheets(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.AddedSheet == "" || cfg.RemovedSheet == "" {
		return
	}
	if strings.EqualFold(sheet.TruncateSheetName(cfg.AddedSheet), sheet.TruncateSheetName(cfg.RemovedSheet)) {
		sl.ReportError(cfg.AddedSheet, "AddedSheet", "AddedSheet", "distinct_sheet", "RemovedSheet")
	}
}

// Config is the resolved runtime configuration.
type Config struct {
	NameColumn   string `mapstructure:"name_column" validate:"required"`
	SerialColumn string `mapstructure:"serial_column" validate:"required,nefield=NameColumn"`
	AddedSheet   string `mapstructure:"added_sheet" validate:"required,nefield=RemovedSheet"`
	RemovedSheet string `mapstructure:"removed_sheet" validate:"required"`
	Output       string `mapstructure:"output" validate:"required"`
	Charset      string `mapstructure:"charset"`
	LogLevel     string `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error"`
	LogFormat    string `mapstructure:"log_format" validate:"oneof=text json"`
	Listen       string `mapstructure:"listen" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		NameColumn:   csvops.DefaultNameColumn,
		SerialColumn: csvops.DefaultSerialColumn,
		AddedSheet:   csvops.AddedSheetName,
		RemovedSheet: csvops.RemovedSheetName,
		Output:       DefaultOutput,
		LogLevel:     "info",
		LogFormat:    "text",
		Listen:       ":8080",
	}
}

// NewViper returns a Viper instance with defaults, config search paths and env binding.
// Priority: defaults < config file < environment < bound flags.
func NewViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyNameColumn, d.NameColumn)
	v.SetDefault(KeySerialColumn, d.SerialColumn)
	v.SetDefault(KeyAddedSheet, d.AddedSheet)
	v.SetDefault(KeyRemovedSheet, d.RemovedSheet)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyCharset, d.Charset)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyListen, d.Listen)

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file (an explicit path, or nricdiff.yaml if present), then
// unmarshals and validates the result.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
}
