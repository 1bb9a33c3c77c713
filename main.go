// package main reads & validates configuration for the block resolver cache service
// and if the config is valid starts and monitors an instance of the service
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kava-labs/block-resolver-cache/config"
	"github.com/kava-labs/block-resolver-cache/logging"
	"github.com/kava-labs/block-resolver-cache/service"
)

const shutdownTimeout = 10 * time.Second

var (
	serviceConfig config.Config
	serviceLogger logging.ServiceLogger
)

func init() {
	err := config.LoadDotEnv()

	if err != nil {
		panic(err)
	}

	serviceConfig = config.ReadConfig()

	err = config.Validate(serviceConfig)

	if err != nil {
		panic(err)
	}

	serviceLogger, err = logging.New(serviceConfig.LogLevel)

	if err != nil {
		panic(err)
	}
}

func main() {
	serviceLogger.Debug().Msg(fmt.Sprintf("initial config: %+v", serviceConfig))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blockResolverService, err := service.New(ctx, serviceConfig, &serviceLogger)

	if err != nil {
		serviceLogger.Panic().Err(err).Msg("error creating service")
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := blockResolverService.Shutdown(shutdownCtx); err != nil {
			serviceLogger.Error().Err(err).Msg("error shutting down service")
		}
	}()

	err = blockResolverService.Run()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		serviceLogger.Panic().Err(err).Msg("service stopped")
	}
}
