package flow

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCodeRoundTrip(t *testing.T) {
	want := []Flow{None, Spotting, Light, Medium, Heavy, Apocalyptic}
	for code := uint8(0); code <= 5; code++ {
		f, err := FromCode(code)
		require.NoError(t, err)
		assert.Equal(t, want[code], f)
		assert.Equal(t, code, f.Code())
	}
}

func TestFromCodeRejectsUnknown(t *testing.T) {
	for _, code := range []uint8{6, 7, 42, 255} {
		_, err := FromCode(code)
		if !errors.Is(err, ErrUnsupportedCode) {
			t.Fatalf("code %d: expected ErrUnsupportedCode, got %v", code, err)
		}
	}
}

func TestFromInt(t *testing.T) {
	f, err := FromInt(4)
	require.NoError(t, err)
	assert.Equal(t, Heavy, f)

	for _, code := range []int64{-1, 6, 256} {
		_, err := FromInt(code)
		assert.ErrorIs(t, err, ErrUnsupportedCode)
	}
}

func TestOptionsCanonicalOrder(t *testing.T) {
	opts := Options()
	require.Len(t, opts, 6)
	assert.Equal(t, None, opts[0])
	assert.Equal(t, Apocalyptic, opts[len(opts)-1])
	assert.True(t, sort.IsSorted(ByOrder(opts)))
}

func TestStringNames(t *testing.T) {
	names := []string{"None", "Spotting", "Light", "Medium", "Heavy", "Apocalyptic"}
	for i, f := range Options() {
		assert.Equal(t, names[i], f.String())
	}
	assert.Equal(t, "Flow(9)", Flow(9).String())
}

func TestParse(t *testing.T) {
	cases := map[string]Flow{
		"heavy":       Heavy,
		"  Medium ":   Medium,
		"APOCALYPTIC": Apocalyptic,
		"0":           None,
		"1":           Spotting,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("torrential")
	assert.Error(t, err)

	_, err = Parse("6")
	assert.ErrorIs(t, err, ErrUnsupportedCode)
}
