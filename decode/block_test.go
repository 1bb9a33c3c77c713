package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitTestParseBlockIdentifierReturnsExpectedBlockForValidNumber(t *testing.T) {
	testCases := []struct {
		name          string
		block         string
		expectedBlock int64
	}{
		{
			name:          "hex encoded",
			block:         "0x2",
			expectedBlock: 2,
		},
		{
			name:          "upper case hex prefix",
			block:         "0X2a",
			expectedBlock: 42,
		},
		{
			name:          "decimal",
			block:         "4242",
			expectedBlock: 4242,
		},
		{
			name:          "zero",
			block:         "0",
			expectedBlock: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blockNumber, err := ParseBlockIdentifier(tc.block)

			require.NoError(t, err)
			require.Equal(t, tc.expectedBlock, blockNumber)
		})
	}
}

func TestUnitTestParseBlockIdentifierReturnsExpectedBlockNumberForTag(t *testing.T) {
	tags := []string{"latest", "pending", "earliest", "finalized", "safe"}

	for _, requestedBlockTag := range tags {
		blockNumber, err := ParseBlockIdentifier(requestedBlockTag)

		assert.Nil(t, err)
		assert.Equal(t, BlockTagToNumberCodec[requestedBlockTag], blockNumber)
	}
}

func TestUnitTestParseBlockIdentifierReturnsEmptyTagForEmptyIdentifier(t *testing.T) {
	blockNumber, err := ParseBlockIdentifier("")

	assert.Nil(t, err)
	assert.Equal(t, BlockTagToNumberCodec[BlockTagEmpty], blockNumber)
}

func TestUnitTestParseBlockIdentifierFailsForInvalidIdentifier(t *testing.T) {
	for _, block := range []string{"invalid-block-tag", "0xzz", "-5", "0x"} {
		_, err := ParseBlockIdentifier(block)

		assert.ErrorIs(t, err, ErrInvalidBlockIdentifier, block)
	}
}

func TestUnitTestParseBlockIdentifierFailsForOverflow(t *testing.T) {
	_, err := ParseBlockIdentifier("0xffffffffffffffff")
	assert.ErrorIs(t, err, ErrInvalidBlockIdentifier)

	_, err = ParseBlockIdentifier("99999999999999999999999")
	assert.ErrorIs(t, err, ErrInvalidBlockIdentifier)
}

func TestUnitTestIsPinned(t *testing.T) {
	testCases := []struct {
		block  string
		pinned bool
	}{
		{"42", true},
		{"0x2a", true},
		{"earliest", true},
		{"0", false},
		{"latest", false},
		{"pending", false},
		{"finalized", false},
		{"safe", false},
		{"", false},
		{"not-a-block", false},
	}

	for _, tc := range testCases {
		t.Run(tc.block, func(t *testing.T) {
			require.Equal(t, tc.pinned, IsPinned(tc.block))
		})
	}
}

func TestUnitTestIsBlockTag(t *testing.T) {
	require.True(t, IsBlockTag("latest"))
	require.True(t, IsBlockTag(""))
	require.False(t, IsBlockTag("42"))
	require.False(t, IsBlockTag("bogus"))
}

func TestUnitTestFormatBlockNumber(t *testing.T) {
	require.Equal(t, "42", FormatBlockNumber(42))
	require.Equal(t, "0", FormatBlockNumber(0))
}
