package hostnamer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceIsZero(t *testing.T) {
	tests := []struct {
		value string
		zero  bool
	}{
		{"0", true},
		{"00", true},
		{"-0", true},
		{"+0", true},
		{"  0", true},
		{"\uFEFF0", true},
		{"\u00a0\t0", true},
		{"\u00850", false},
		{"0abc", true},
		{"0.5", true},
		{"0x0", true},
		{"0x", false},
		{"0x10", false},
		{"1", false},
		{"01", false},
		{"10", false},
		{"abc", false},
		{"", false},
		{"-", false},
		{" ", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.zero, sequenceIsZero(tc.value))
		})
	}
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "", joinNonEmpty("-"))
	assert.Equal(t, "", joinNonEmpty("-", "", ""))
	assert.Equal(t, "a-c", joinNonEmpty("-", "a", "", "c"))
	assert.Equal(t, "b", joinNonEmpty(".", "", "b", ""))
}
