package blockcache_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/kava-labs/block-resolver-cache/blockcache"
)

func TestUnitTestBuildKey(t *testing.T) {
	tests := []struct {
		name       string
		network    string
		block      string
		logicalKey string
		argSuffix  string
		wantKey    string
	}{
		{
			name:       "no suffix",
			network:    "2222",
			block:      "42",
			logicalKey: "chainId",
			wantKey:    "2222:42:chainId",
		},
		{
			name:       "fingerprint suffix",
			network:    "kava",
			block:      "earliest",
			logicalKey: "balance",
			argSuffix:  ":0x1234",
			wantKey:    "kava:earliest:balance:0x1234",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.wantKey, blockcache.BuildKey(tc.network, tc.block, tc.logicalKey, tc.argSuffix))
		})
	}
}

func TestUnitTestContextKey(t *testing.T) {
	c := blockcache.NewContext("2222", "42", nil)
	address := common.HexToAddress("0x6767114FFAA17c6439D7aEA480738b982ce63A02")

	fingerprint, err := blockcache.KeccakFingerprinter{}.Fingerprint([]any{address})
	require.NoError(t, err)

	tests := []struct {
		name    string
		spec    blockcache.KeySpec
		args    []any
		wantKey string
	}{
		{
			name:    "static without arguments",
			spec:    blockcache.StaticKey("chainId"),
			wantKey: "2222:42:chainId",
		},
		{
			name:    "static with arguments",
			spec:    blockcache.StaticKey("balance"),
			args:    []any{address},
			wantKey: "2222:42:balance:" + fingerprint,
		},
		{
			name: "key function",
			spec: blockcache.KeyFunc1(func(address common.Address) string {
				return "balance:" + address.Hex()
			}),
			args:    []any{address},
			wantKey: "2222:42:balance:" + address.Hex(),
		},
		{
			name: "key function without arguments",
			spec: blockcache.KeyFunc(func(args ...any) string {
				return "header"
			}),
			wantKey: "2222:42:header",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, err := c.Key(tc.spec, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.wantKey, key)
		})
	}
}

func TestUnitTestKeccakFingerprinter(t *testing.T) {
	fingerprinter := blockcache.KeccakFingerprinter{}

	first, err := fingerprinter.Fingerprint([]any{"0xabc", big.NewInt(42), map[string]bool{"b": true, "a": false}})
	require.NoError(t, err)
	second, err := fingerprinter.Fingerprint([]any{"0xabc", big.NewInt(42), map[string]bool{"a": false, "b": true}})
	require.NoError(t, err)
	other, err := fingerprinter.Fingerprint([]any{"0xabc", big.NewInt(43)})
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.NotEqual(t, first, other)
	require.True(t, strings.HasPrefix(first, "0x"))
	require.Len(t, first, 66)

	_, err = fingerprinter.Fingerprint([]any{func() {}})
	require.Error(t, err)
}

func TestUnitTestKeySpecString(t *testing.T) {
	require.True(t, blockcache.StaticKey("balance").IsStatic())
	require.Equal(t, "balance", blockcache.StaticKey("balance").String())

	spec := blockcache.KeyFunc3(func(a string, b string, c int) string { return a })
	require.False(t, spec.IsStatic())
	require.Equal(t, "<func>", spec.String())
}
