// internal/app/service.go
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"

	"github.com/awmpietro/algoviz/internal/algo"
	"github.com/awmpietro/algoviz/internal/logging"
	"github.com/awmpietro/algoviz/internal/step"
	"github.com/awmpietro/algoviz/internal/validate"
)

type Validator interface {
	Check(id algo.ID, in algo.Input) error
}

type Cache interface {
	GetOrCompute(ctx context.Context, key string, fn func() (step.Sequence, error)) (step.Sequence, error)
}

// GeneratorFunc produces the sequence for a validated input.
type GeneratorFunc func(id algo.ID, in algo.Input) step.Sequence

type Service struct {
	validator  Validator
	cache      Cache
	generate   GeneratorFunc
	logger     *slog.Logger
	metrics    *Metrics
	batchLimit int

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithGenerator replaces algo.Generate.
func WithGenerator(fn GeneratorFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.generate = fn
		}
	}
}

// WithBatchLimit bounds how many sequences a batch generates concurrently.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// WithRand sets the source used for random arrays.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) {
		if r != nil {
			s.rng = r
		}
	}
}

func NewService(validator Validator, cache Cache, opts ...Option) *Service {
	s := &Service{
		validator:  validator,
		cache:      cache,
		generate:   algo.Generate,
		logger:     logging.NewNop(),
		batchLimit: 4,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Component(s.logger, "app")
	return s
}

// Generate resolves, decodes, validates and generates (cached) one sequence.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	id, err := parseID(req.Algorithm)
	if err != nil {
		return nil, err
	}

	in, err := s.decode(req.Input, req.Random)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, id, in)
}

// GenerateBatch generates every requested algorithm on the same input.
// Results keep the request order; the first failure cancels the rest.
func (s *Service) GenerateBatch(ctx context.Context, req BatchRequest) ([]GenerateResult, error) {
	if len(req.Algorithms) == 0 {
		return nil, fmt.Errorf("%w: algorithms is required", ErrInvalidInput)
	}

	ids := make([]algo.ID, len(req.Algorithms))
	for i, name := range req.Algorithms {
		id, err := parseID(name)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	in, err := s.decode(req.Input, req.Random)
	if err != nil {
		return nil, err
	}

	results := make([]GenerateResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, id := range ids {
		g.Go(func() error {
			res, err := s.run(gctx, id, in)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Algorithms lists every generator in catalogue order.
func (s *Service) Algorithms() []AlgorithmInfo {
	ids := algo.All()
	out := make([]AlgorithmInfo, len(ids))
	for i, id := range ids {
		out[i] = AlgorithmInfo{ID: id, Family: id.Family()}
	}
	return out
}

func (s *Service) run(ctx context.Context, id algo.ID, in algo.Input) (*GenerateResult, error) {
	start := time.Now()

	if err := s.validator.Check(id, in); err != nil {
		s.metrics.observe(id, outcomeRejected, time.Since(start))
		return nil, err
	}

	key, err := cacheKey(id, in)
	if err != nil {
		return nil, err
	}

	seq, err := s.cache.GetOrCompute(ctx, key, func() (step.Sequence, error) {
		return s.generate(id, in), nil
	})
	if err != nil {
		s.metrics.observe(id, outcomeFailed, time.Since(start))
		return nil, fmt.Errorf("generate %s: %w", id, err)
	}

	s.metrics.observe(id, outcomeOK, time.Since(start))
	s.logger.Debug("sequence_generated",
		"algorithm", id.String(),
		"steps", seq.Len(),
		"duration", time.Since(start),
	)
	return &GenerateResult{Algorithm: id, Input: in, Sequence: seq}, nil
}

func parseID(name string) (algo.ID, error) {
	id, ok := algo.Parse(strings.TrimSpace(name))
	if !ok {
		return algo.Unknown, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return id, nil
}

func (s *Service) decode(raw map[string]any, random int) (algo.Input, error) {
	in, err := DecodeInput(raw)
	if err != nil {
		return algo.Input{}, err
	}
	if random < 0 || random > algo.MaxRandom {
		return algo.Input{}, fmt.Errorf("%w: random must be between 0 and %d", ErrInvalidInput, algo.MaxRandom)
	}
	if random > 0 && len(in.Array) == 0 {
		s.rngMu.Lock()
		in.Array = algo.RandomArray(s.rng, random)
		s.rngMu.Unlock()
	}
	return in, nil
}

// DecodeInput overlays raw parameters on algo.DefaultInput. Numbers may
// arrive as JSON floats or strings; unknown keys are rejected.
func DecodeInput(raw map[string]any) (algo.Input, error) {
	in := algo.DefaultInput()
	if len(raw) == 0 {
		return in, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &in,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return algo.Input{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return algo.Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return in, nil
}

// cacheKey is the algorithm id plus the canonical JSON of the parameters
// the algorithm's family reads, so unrelated fields never split the cache.
func cacheKey(id algo.ID, in algo.Input) (string, error) {
	b, err := json.Marshal(relevant(id, in))
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	return id.String() + "|" + string(b), nil
}

func relevant(id algo.ID, in algo.Input) algo.Input {
	switch id {
	case algo.KMP, algo.RabinKarp, algo.ZAlgorithm,
		algo.Prim, algo.Kruskal,
		algo.InOrder, algo.PreOrder, algo.PostOrder:
		return algo.Input{}
	case algo.LinearSearch, algo.BinarySearch:
		return algo.Input{Array: in.Array, Target: in.Target}
	case algo.BFS, algo.DFS:
		return algo.Input{Start: in.Start}
	case algo.Dijkstra:
		return algo.Input{Start: in.Start, End: in.End}
	case algo.BSTInsert, algo.BSTSearch:
		return algo.Input{Value: in.Value}
	case algo.Fibonacci:
		return algo.Input{N: in.N}
	case algo.Knapsack:
		return algo.Input{Capacity: in.Capacity}
	case algo.MatrixChain:
		return algo.Input{Matrices: in.Matrices}
	case algo.NQueens:
		return algo.Input{Queens: in.Queens}
	}
	if id.Family() == step.FamilySorting {
		return algo.Input{Array: in.Array}
	}
	return in
}

// IsClientError reports whether err was caused by the request rather than
// the service.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownAlgorithm) || errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, validate.ErrPrecondition)
}
