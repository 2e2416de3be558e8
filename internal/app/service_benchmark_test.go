package app

import (
	"context"
	"testing"

	"github.com/awmpietro/algoviz/internal/cache"
	"github.com/awmpietro/algoviz/internal/step"
	"github.com/awmpietro/algoviz/internal/validate"
)

func benchmarkService(b *testing.B) *Service {
	b.Helper()
	v, err := validate.New(nil)
	if err != nil {
		b.Fatalf("validator: %v", err)
	}
	return NewService(v, cache.NewInMemory(1024))
}

type noCache struct{}

func (noCache) GetOrCompute(_ context.Context, _ string, fn func() (step.Sequence, error)) (step.Sequence, error) {
	return fn()
}

func benchRequest() GenerateRequest {
	return GenerateRequest{
		Algorithm: "merge-sort",
		Input: map[string]any{
			"array": []any{64.0, 34.0, 25.0, 12.0, 22.0, 11.0, 90.0, 45.0, 73.0, 18.0},
		},
	}
}

func BenchmarkServiceGenerateCached(b *testing.B) {
	svc := benchmarkService(b)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, benchRequest()); err != nil {
		b.Fatalf("warmup generate failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Generate(ctx, benchRequest()); err != nil {
			b.Fatalf("generate failed: %v", err)
		}
	}
}

func BenchmarkServiceGenerateCachedParallel(b *testing.B) {
	svc := benchmarkService(b)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, benchRequest()); err != nil {
		b.Fatalf("warmup generate failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.Generate(ctx, benchRequest()); err != nil {
				b.Fatalf("generate failed: %v", err)
			}
		}
	})
}

func BenchmarkServiceGenerateUncached(b *testing.B) {
	v, err := validate.New(nil)
	if err != nil {
		b.Fatalf("validator: %v", err)
	}
	svc := NewService(v, noCache{})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Generate(ctx, benchRequest()); err != nil {
			b.Fatalf("generate failed: %v", err)
		}
	}
}
