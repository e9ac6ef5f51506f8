package hostnamer

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Control-D-Inc/hostnamer/internal/dnsformat"
)

const (
	defaultCacheSize = 256
	defaultListen    = "127.0.0.1:8053"
)

// SetConfigName set the config name that hostnamer will look for.
func SetConfigName(v *viper.Viper, name string) {
	v.SetConfigName(name)

	configPath := "$HOME"
	// viper has its own way to get user home directory:  https://github.com/spf13/viper/blob/v1.14.0/util.go#L134
	// To be consistent, we prefer os.UserHomeDir instead.
	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath = homeDir
	}
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
}

// InitConfig initializes default config values for given *viper.Viper instance.
func InitConfig(v *viper.Viper, name string) {
	SetConfigName(v, name)

	v.SetDefault("service", map[string]any{
		"log_level":    "info",
		"cache_enable": true,
		"cache_size":   defaultCacheSize,
		"listen":       defaultListen,
	})
	field := make(map[string]any, len(fields))
	for _, f := range fields {
		field[string(f)] = map[string]any{
			"pattern":   DefaultPatterns[f],
			"mandatory": f != FieldDomain,
		}
	}
	v.SetDefault("field", field)
}

// Config represents hostnamer supported configuration.
type Config struct {
	Service ServiceConfig           `mapstructure:"service" toml:"service,omitempty"`
	Field   map[string]*FieldConfig `mapstructure:"field" toml:"field" validate:"min=1,dive,keys,fieldname,endkeys"`
}

// ServiceConfig specifies the general hostnamer config.
type ServiceConfig struct {
	LogLevel    string `mapstructure:"log_level" toml:"log_level,omitempty"`
	LogPath     string `mapstructure:"log_path" toml:"log_path,omitempty"`
	CacheEnable bool   `mapstructure:"cache_enable" toml:"cache_enable,omitempty"`
	CacheSize   int    `mapstructure:"cache_size" toml:"cache_size,omitempty" validate:"gte=0"`
	Listen      string `mapstructure:"listen" toml:"listen,omitempty" validate:"omitempty,hostname_port"`
}

// FieldConfig specifies the format rules of a naming field.
type FieldConfig struct {
	Pattern   string `mapstructure:"pattern" toml:"pattern,omitempty" validate:"omitempty,regexp"`
	Mandatory bool   `mapstructure:"mandatory" toml:"mandatory"`
	Format    string `mapstructure:"format" toml:"format,omitempty" validate:"omitempty,format"`
}

// FieldSpecs builds the field specs described by the config.
// Fields absent from the config keep their DefaultFieldSpecs entry.
func (c *Config) FieldSpecs() (FieldSpecs, error) {
	specs := DefaultFieldSpecs()
	for name, fc := range c.Field {
		f, err := ParseField(name)
		if err != nil {
			return nil, err
		}
		if fc == nil {
			continue
		}
		spec, err := fc.spec(f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f, err)
		}
		specs[f] = spec
	}
	return specs, nil
}

// ValidatorOptions returns the Validator options described by the service config.
func (c *Config) ValidatorOptions() []Option {
	var opts []Option
	if c.Service.CacheEnable {
		size := c.Service.CacheSize
		if size == 0 {
			size = defaultCacheSize
		}
		opts = append(opts, WithCache(size))
	}
	return opts
}

func (fc *FieldConfig) spec(f Field) (FieldSpec, error) {
	var pattern, format Matcher
	if fc.Pattern != "" {
		m, err := NewPatternMatcher(fc.Pattern)
		if err != nil {
			return FieldSpec{}, err
		}
		pattern = m
	}
	if fc.Format != "" {
		m, err := FormatMatcher(fc.Format)
		if err != nil {
			return FieldSpec{}, err
		}
		format = m
	}
	return FieldSpec{Field: f, Matcher: AllOf(pattern, format), Mandatory: fc.Mandatory}, nil
}

// ValidateConfig validates the given config.
func ValidateConfig(validate *validator.Validate, cfg *Config) error {
	_ = validate.RegisterValidation("fieldname", validateFieldName)
	_ = validate.RegisterValidation("regexp", validateRegexp)
	_ = validate.RegisterValidation("format", validateFormat)
	return validate.Struct(cfg)
}

func validateFieldName(fl validator.FieldLevel) bool {
	return Field(fl.Field().String()).Valid()
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

func validateFormat(fl validator.FieldLevel) bool {
	return dnsformat.Lookup(fl.Field().String()) != nil
}
