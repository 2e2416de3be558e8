package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/awmpietro/algoviz/internal/bootstrap"
	"github.com/awmpietro/algoviz/internal/config"
	"github.com/awmpietro/algoviz/internal/transport/lambdatransport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := bootstrap.Logger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	svc, cleanup, err := bootstrap.Service(context.Background(), cfg, logger, nil)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	h := lambdatransport.NewHandler(svc, logger)
	lambda.Start(h.Handle)
}
