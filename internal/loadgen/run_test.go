package loadgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	testCases := []struct {
		kind   string
		hasher string
	}{
		{KindInt, HasherSplitmix},
		{KindInt, HasherMaphash},
		{KindString, HasherXXHash},
		{KindString, HasherXXH3},
		{KindUUID, HasherXXHash},
		{KindUUID, HasherMaphash},
	}

	for _, tc := range testCases {
		t.Run(tc.kind+"_"+tc.hasher, func(t *testing.T) {
			result, err := Run(Config{
				Keys:      2000,
				Kind:      tc.kind,
				Hasher:    tc.hasher,
				ValueSize: 16,
				Lookups:   500,
				Seed:      1,
			})
			require.NoError(t, err)

			require.Equal(t, tc.kind+"-"+tc.hasher+"-2000", result.Name)
			require.Equal(t, 2000, result.Operations)
			require.Zero(t, result.Metrics["lookup_errors"])
			require.Equal(t, 4096.0, result.Metrics["capacity"])
			require.Less(t, result.Metrics["load_factor"], 0.5)
			require.Contains(t, result.Metrics, "sequential_lookup_rate")
		})
	}
}

func TestRunReserve(t *testing.T) {
	result, err := Run(Config{Keys: 1000, Kind: KindInt, Hasher: HasherSplitmix, Reserve: true})
	require.NoError(t, err)
	require.Equal(t, 2048.0, result.Metrics["capacity"])
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := Run(Config{Keys: 0, Kind: KindInt, Hasher: HasherSplitmix})
	require.Error(t, err)

	_, err = Run(Config{Keys: 10, Kind: "float", Hasher: HasherSplitmix})
	require.EqualError(t, err, `unknown key kind "float"`)

	_, err = Run(Config{Keys: 10, Kind: KindString, Hasher: HasherSplitmix})
	require.EqualError(t, err, `hasher "splitmix" does not support string keys`)

	_, err = Run(Config{Keys: 10, Kind: KindInt, Hasher: HasherXXH3})
	require.Error(t, err)
}

func TestGeneratorIsReproducible(t *testing.T) {
	a, b := NewGenerator(42), NewGenerator(42)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.UUID(), b.UUID())
		require.Equal(t, a.Alphanumeric(20), b.Alphanumeric(20))
	}

	u := NewGenerator(7).UUID()
	require.Len(t, u, 36)
	require.Equal(t, byte('4'), u[14], "version nibble")
}
