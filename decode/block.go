// package decode parses the block identifiers a block cache context
// can be pinned to
package decode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cosmosmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// These block tags are special strings used to reference blocks in JSON-RPC
// see https://ethereum.org/en/developers/docs/apis/json-rpc/#default-block
const (
	BlockTagLatest    = "latest"
	BlockTagPending   = "pending"
	BlockTagEarliest  = "earliest"
	BlockTagFinalized = "finalized"
	BlockTagSafe      = "safe"
	// "empty" is not in the spec, it is our encoding for a missing block identifier.
	BlockTagEmpty = "empty"
)

var ErrInvalidBlockIdentifier = errors.New("invalid block identifier")

// Mapping of string tag values used in the eth api to
// normalized negative int values so that tags and numbers
// can be handled with a single int64
// see https://ethereum.org/en/developers/docs/apis/json-rpc/#default-block
var BlockTagToNumberCodec = map[string]int64{
	BlockTagLatest:    -1,
	BlockTagPending:   -2,
	BlockTagEarliest:  -3,
	BlockTagFinalized: -4,
	BlockTagSafe:      -5,
	// usually, clients interpret an empty block identifier to mean "latest"
	// we track it separately so callers can tell the two apart
	BlockTagEmpty: -6,
}

// ParseBlockIdentifier parses a block tag, a 0x prefixed hex number or
// a decimal number. Tags are returned as their negative codec value.
func ParseBlockIdentifier(block string) (int64, error) {
	block = strings.TrimSpace(block)
	if block == "" {
		return BlockTagToNumberCodec[BlockTagEmpty], nil
	}

	if blockNumber, exists := BlockTagToNumberCodec[block]; exists {
		return blockNumber, nil
	}

	if strings.HasPrefix(block, "0x") || strings.HasPrefix(block, "0X") {
		blockNumber, err := hexutil.DecodeUint64(strings.ToLower(block))
		if err != nil {
			return 0, fmt.Errorf("%w: unable to parse hex block number %s: %v", ErrInvalidBlockIdentifier, block, err)
		}
		if blockNumber > uint64(1<<63-1) {
			return 0, fmt.Errorf("%w: block number %s overflows int64", ErrInvalidBlockIdentifier, block)
		}
		return int64(blockNumber), nil
	}

	spaceint, valid := cosmosmath.NewIntFromString(block)
	if !valid {
		return 0, fmt.Errorf("%w: unable to parse tag %s to integer", ErrInvalidBlockIdentifier, block)
	}
	if spaceint.IsNegative() || !spaceint.IsInt64() {
		return 0, fmt.Errorf("%w: block number %s out of range", ErrInvalidBlockIdentifier, block)
	}

	return spaceint.Int64(), nil
}

// IsBlockTag returns true when block is one of the named tags or empty.
func IsBlockTag(block string) bool {
	blockNumber, err := ParseBlockIdentifier(block)
	return err == nil && blockNumber < 0
}

// IsPinned returns true when block always refers to the same chain state.
// Numbers greater than zero and the earliest tag are pinned, latest and
// the other moving tags are not.
func IsPinned(block string) bool {
	blockNumber, err := ParseBlockIdentifier(block)
	if err != nil {
		return false
	}

	return blockNumber > 0 || blockNumber == BlockTagToNumberCodec[BlockTagEarliest]
}

// FormatBlockNumber returns the canonical decimal identifier for a block number.
func FormatBlockNumber(blockNumber uint64) string {
	return strconv.FormatUint(blockNumber, 10)
}
