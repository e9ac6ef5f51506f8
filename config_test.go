package hostnamer_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Control-D-Inc/hostnamer"
	"github.com/Control-D-Inc/hostnamer/testhelper"
)

func TestLoadConfig(t *testing.T) {
	cfg := testhelper.SampleConfig(t)
	validate := validator.New()
	require.NoError(t, hostnamer.ValidateConfig(validate, cfg))

	assert.Equal(t, "debug", cfg.Service.LogLevel)
	assert.Equal(t, "/path/to/log.log", cfg.Service.LogPath)
	assert.True(t, cfg.Service.CacheEnable)
	assert.Equal(t, 64, cfg.Service.CacheSize)

	require.Contains(t, cfg.Field, "organization")
	assert.Equal(t, "[a-z]{2,8}", cfg.Field["organization"].Pattern)
	require.Contains(t, cfg.Field, "tier")
	assert.Equal(t, "dev|test|stage|prod", cfg.Field["tier"].Pattern)
	require.Contains(t, cfg.Field, "domain")
	assert.Equal(t, "domain-name", cfg.Field["domain"].Format)
	assert.False(t, cfg.Field["domain"].Mandatory)
}

func TestLoadDefaultConfig(t *testing.T) {
	cfg := defaultConfig(t)
	validate := validator.New()
	require.NoError(t, hostnamer.ValidateConfig(validate, cfg))
	assert.Len(t, cfg.Field, len(hostnamer.Fields()))
	assert.Equal(t, "info", cfg.Service.LogLevel)
	for _, f := range hostnamer.Fields() {
		require.Contains(t, cfg.Field, string(f))
		assert.Equal(t, hostnamer.DefaultPatterns[f], cfg.Field[string(f)].Pattern)
		assert.Equal(t, f != hostnamer.FieldDomain, cfg.Field[string(f)].Mandatory)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *hostnamer.Config
		wantErr bool
	}{
		{"invalid Config", &hostnamer.Config{}, true},
		{"default Config", defaultConfig(t), false},
		{"sample Config", testhelper.SampleConfig(t), false},
		{"unknown field", configWithUnknownField(t), true},
		{"invalid pattern", configWithInvalidPattern(t), true},
		{"invalid format", configWithInvalidFormat(t), true},
		{"invalid cache size", configWithInvalidCacheSize(t), true},
		{"invalid listen address", configWithInvalidListen(t), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			validate := validator.New()
			err := hostnamer.ValidateConfig(validate, tc.cfg)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, but got nil: %+v", tc.cfg)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				t.Logf("%v", err)
			}
		})
	}
}

func TestConfigFieldSpecs(t *testing.T) {
	cfg := testhelper.SampleConfig(t)
	specs, err := cfg.FieldSpecs()
	require.NoError(t, err)
	require.Len(t, specs, len(hostnamer.Fields()))

	tier := specs[hostnamer.FieldTier]
	require.NotNil(t, tier.Matcher)
	assert.True(t, tier.Matcher.Match("prod"))
	assert.False(t, tier.Matcher.Match("production"))
	assert.True(t, tier.Mandatory)

	domain := specs[hostnamer.FieldDomain]
	require.NotNil(t, domain.Matcher)
	assert.True(t, domain.Matcher.Match("example.com"))
	assert.False(t, domain.Matcher.Match("example..com"))
	assert.False(t, domain.Mandatory)

	v, err := hostnamer.NewValidator(specs, cfg.ValidatorOptions()...)
	require.NoError(t, err)
	r, err := v.OnFieldChanged(hostnamer.FieldTier, "qa")
	require.NoError(t, err)
	assert.Contains(t, r.Errors(), "tier does not match pattern dev|test|stage|prod")
}

func TestConfigFieldSpecsErrors(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Field["hostname"] = &hostnamer.FieldConfig{}
	_, err := cfg.FieldSpecs()
	assert.ErrorIs(t, err, hostnamer.ErrUnknownField)

	cfg = defaultConfig(t)
	cfg.Field["role"].Pattern = "(["
	_, err = cfg.FieldSpecs()
	assert.Error(t, err)

	cfg = defaultConfig(t)
	cfg.Field["role"].Format = "ipv4"
	_, err = cfg.FieldSpecs()
	assert.Error(t, err)
}

func defaultConfig(t *testing.T) *hostnamer.Config {
	v := viper.New()
	hostnamer.InitConfig(v, "test_load_default_config")
	_, ok := v.ReadInConfig().(viper.ConfigFileNotFoundError)
	require.True(t, ok)

	var cfg hostnamer.Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func configWithUnknownField(t *testing.T) *hostnamer.Config {
	cfg := defaultConfig(t)
	cfg.Field["hostname"] = &hostnamer.FieldConfig{Pattern: "[a-z]+"}
	return cfg
}

func configWithInvalidPattern(t *testing.T) *hostnamer.Config {
	cfg := defaultConfig(t)
	cfg.Field["organization"].Pattern = "[a-z"
	return cfg
}

func configWithInvalidFormat(t *testing.T) *hostnamer.Config {
	cfg := defaultConfig(t)
	cfg.Field["domain"].Format = "fqdn"
	return cfg
}

func configWithInvalidCacheSize(t *testing.T) *hostnamer.Config {
	cfg := defaultConfig(t)
	cfg.Service.CacheSize = -1
	return cfg
}

func configWithInvalidListen(t *testing.T) *hostnamer.Config {
	cfg := defaultConfig(t)
	cfg.Service.Listen = "not an address"
	return cfg
}
