package hostnamer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Control-D-Inc/hostnamer"
)

func TestParseField(t *testing.T) {
	for _, f := range hostnamer.Fields() {
		got, err := hostnamer.ParseField(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := hostnamer.ParseField("Organization")
	assert.ErrorIs(t, err, hostnamer.ErrUnknownField)
}

func TestStateSetGet(t *testing.T) {
	var s hostnamer.State
	assert.True(t, s.Empty())
	require.NoError(t, s.Set(hostnamer.FieldRegion, "eu"))
	assert.Equal(t, "eu", s.Get(hostnamer.FieldRegion))
	assert.Equal(t, "eu", s.Region)
	assert.False(t, s.Empty())

	assert.ErrorIs(t, s.Set("purpose", "x"), hostnamer.ErrUnknownField)
	assert.Equal(t, "", s.Get("purpose"))

	m := s.Map()
	assert.Len(t, m, 7)
	assert.Equal(t, "eu", m["region"])
	assert.Equal(t, "", m["organization"])
}
