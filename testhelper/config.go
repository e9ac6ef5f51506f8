package testhelper

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/Control-D-Inc/hostnamer"
)

func SampleConfig(t *testing.T) *hostnamer.Config {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	hostnamer.InitConfig(v, "test_load_config")
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(sampleConfigContent)))
	var cfg hostnamer.Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

var sampleConfigContent = `
[service]
log_level = "debug"
log_path = "/path/to/log.log"
cache_enable = true
cache_size = 64

[field.organization]
pattern = "[a-z]{2,8}"
mandatory = true

[field.tier]
pattern = "dev|test|stage|prod"
mandatory = true

[field.sequence]
pattern = "[0-9]{1,3}"
mandatory = true

[field.domain]
format = "domain-name"
mandatory = false
`
