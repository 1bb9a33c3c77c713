package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kava-labs/block-resolver-cache/logging"
)

func TestUnitTestNewAcceptsSupportedLevels(t *testing.T) {
	for _, level := range []string{"TRACE", "DEBUG", "INFO", "ERROR"} {
		logger, err := logging.New(level)

		require.NoError(t, err, level)
		require.NotNil(t, logger.Logger)
	}
}

func TestUnitTestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New("whisper")

	require.Error(t, err)
}
