package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ledger-works/expense-server/api"
	"github.com/ledger-works/expense-server/internal/config"
	"github.com/ledger-works/expense-server/internal/logging"
	"github.com/ledger-works/expense-server/internal/operator"
	"github.com/ledger-works/expense-server/internal/service"
	"github.com/ledger-works/expense-server/internal/storage"
	"github.com/ledger-works/expense-server/internal/sweeper"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("expense-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	writeOperator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	writeOperator.Start()

	svc := service.NewService(dbStorage, writeOperator, envConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	keySweeper := sweeper.NewSweeper(svc.Expense, envConfig.SweepInterval, logger)
	go keySweeper.Run(ctx)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Config:  envConfig,
			Service: svc,
		}
		httpRest.Serve()
	}()

	<-ctx.Done()
	logger.Info("expense-server shutting down")
	writeOperator.Stop()
}
