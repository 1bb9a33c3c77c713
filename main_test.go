package main_test

import (
	"context"
	"math/big"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kava-labs/block-resolver-cache/service"
)

var (
	testContext = context.Background()

	serviceHostname = os.Getenv("TEST_SERVICE_HOSTNAME")
	evmRPCURL       = os.Getenv("TEST_EVM_RPC_URL")

	redisURL      = os.Getenv("TEST_REDIS_ENDPOINT_URL")
	redisPassword = os.Getenv("REDIS_PASSWORD")
	cachePrefix   = os.Getenv("TEST_CACHE_PREFIX")
)

func newServiceClient(t *testing.T) *service.ServiceClient {
	t.Helper()

	if serviceHostname == "" || evmRPCURL == "" {
		t.Skip("TEST_SERVICE_HOSTNAME and TEST_EVM_RPC_URL must be set for e2e tests")
	}

	client, err := service.NewServiceClient(service.ServiceClientConfig{
		ServiceHostname: serviceHostname,
	})
	require.NoError(t, err)

	return client
}

func TestE2ETestChainStatusMatchesNodeAtPinnedBlock(t *testing.T) {
	client := newServiceClient(t)

	status, err := client.GetChainStatus(testContext, "")
	require.NoError(t, err)

	blockNumber, err := strconv.ParseInt(status.Block, 10, 64)
	require.NoError(t, err)
	assert.Greater(t, blockNumber, int64(0))

	evmClient, err := ethclient.Dial(evmRPCURL)
	require.NoError(t, err)
	defer evmClient.Close()

	header, err := evmClient.HeaderByNumber(testContext, big.NewInt(blockNumber))
	require.NoError(t, err)

	chainID, err := evmClient.ChainID(testContext)
	require.NoError(t, err)

	assert.Equal(t, header.Hash().Hex(), status.BlockHash)
	assert.Equal(t, header.Time, status.Timestamp)
	assert.Equal(t, chainID.String(), status.ChainID)
}

func TestE2ETestCacheStatusResolvesTags(t *testing.T) {
	client := newServiceClient(t)

	for _, tag := range []string{"latest", "pending", "finalized", "safe", "earliest"} {
		t.Run(tag, func(t *testing.T) {
			status, err := client.GetCacheStatus(testContext, tag)
			require.NoError(t, err)

			if tag == "earliest" {
				assert.Equal(t, "earliest", status.Block)
				return
			}

			blockNumber, err := strconv.ParseUint(status.Block, 10, 64)
			require.NoError(t, err)
			assert.Greater(t, blockNumber, uint64(0))
		})
	}
}

func TestE2ETestPinnedReadsAreWrittenToRedis(t *testing.T) {
	client := newServiceClient(t)

	if redisURL == "" {
		t.Skip("TEST_REDIS_ENDPOINT_URL must be set for cache tier tests")
	}

	status, err := client.GetChainStatus(testContext, "1")
	require.NoError(t, err)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	prefix := cachePrefix
	if prefix == "" {
		prefix = "resolver"
	}
	key := prefix + ":" + status.Network + ":1:header"

	require.Eventually(t, func() bool {
		_, err := redisClient.Get(testContext, key).Bytes()
		return err == nil
	}, 5*time.Second, 100*time.Millisecond)
}
