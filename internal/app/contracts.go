package app

import (
	"context"
	"errors"

	"github.com/awmpietro/algoviz/internal/algo"
	"github.com/awmpietro/algoviz/internal/step"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidInput     = errors.New("invalid input")
)

// GenerateService is what the transports depend on.
type GenerateService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	GenerateBatch(ctx context.Context, req BatchRequest) ([]GenerateResult, error)
	Algorithms() []AlgorithmInfo
}

// GenerateRequest names one algorithm and its raw parameters. Missing
// parameters take their defaults; Random > 0 replaces an empty array with
// that many random values.
type GenerateRequest struct {
	Algorithm string
	Input     map[string]any
	Random    int
}

// BatchRequest runs several algorithms on the same parameters.
type BatchRequest struct {
	Algorithms []string
	Input      map[string]any
	Random     int
}

type GenerateResult struct {
	Algorithm algo.ID
	Input     algo.Input
	Sequence  step.Sequence
}

type AlgorithmInfo struct {
	ID     algo.ID
	Family step.Family
}
