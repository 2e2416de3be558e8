package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/awmpietro/algoviz/internal/bootstrap"
	"github.com/awmpietro/algoviz/internal/config"
	"github.com/awmpietro/algoviz/internal/sink"
	"github.com/awmpietro/algoviz/internal/step"
	"github.com/awmpietro/algoviz/internal/transport/gendto"
	httptransport "github.com/awmpietro/algoviz/internal/transport/httptransport"
	"github.com/awmpietro/algoviz/internal/validate"
)

func newServer(t *testing.T, rt config.Runtime) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc, cleanup, err := bootstrap.Service(context.Background(), rt, nil, reg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(cleanup)

	h := httptransport.NewHandler(svc, nil)
	srv := httptest.NewServer(h.Router(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, rawBody string) (int, []byte) {
	t.Helper()

	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(rawBody))
	if err != nil {
		t.Fatalf("post %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response failed: %v", err)
	}
	return resp.StatusCode, body
}

func postJSON(t *testing.T, srv *httptest.Server, path string, payload any, out any) int {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	status, body := post(t, srv, path, string(b))
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("invalid response %q: %v", body, err)
		}
	}
	return status
}

func TestHTTPGenerate_StepsReplayToSortedArray(t *testing.T) {
	srv := newServer(t, config.Defaults())

	var out gendto.GenerateResponse
	status := postJSON(t, srv, "/generate", gendto.GenerateRequest{
		Algorithm: "merge-sort",
		Input:     map[string]any{"array": []int{8, 3, 5, 1, 9, 2}},
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if out.Family != step.FamilySorting {
		t.Fatalf("expected sorting family, got %q", out.Family)
	}

	arr := sink.NewArray(out.Input.Array)
	for _, st := range out.Steps {
		arr.Apply(st)
	}
	if got := arr.Snapshot().Values; !slices.Equal(got, []int{1, 2, 3, 5, 8, 9}) {
		t.Fatalf("replayed steps left %v", got)
	}
	if out.Steps[len(out.Steps)-1].Kind != step.KindMarkSorted {
		t.Fatalf("expected trailing mark-sorted, got %v", out.Steps[len(out.Steps)-1])
	}
}

func TestHTTPGenerate_CoversEveryFamily(t *testing.T) {
	srv := newServer(t, config.Defaults())

	tests := []struct {
		algorithm string
		input     map[string]any
		wantLast  step.Kind
	}{
		{algorithm: "binary-search", input: map[string]any{"array": []int{1, 3, 5, 7}, "target": 7}, wantLast: step.KindFound},
		{algorithm: "linear-search", input: map[string]any{"array": []int{4, 2}, "target": 9}, wantLast: step.KindNotFound},
		{algorithm: "dijkstra", input: map[string]any{"start": "A", "end": "F"}, wantLast: step.KindHighlightPath},
		{algorithm: "fibonacci", input: map[string]any{"n": 10}, wantLast: step.KindComplete},
	}

	for _, tc := range tests {
		t.Run(tc.algorithm, func(t *testing.T) {
			var out gendto.GenerateResponse
			status := postJSON(t, srv, "/generate", gendto.GenerateRequest{Algorithm: tc.algorithm, Input: tc.input}, &out)
			if status != http.StatusOK {
				t.Fatalf("expected 200, got %d", status)
			}
			if len(out.Steps) == 0 {
				t.Fatal("expected steps")
			}
			if last := out.Steps[len(out.Steps)-1]; last.Kind != tc.wantLast {
				t.Fatalf("expected last step %v, got %v", tc.wantLast, last)
			}
		})
	}
}

func TestHTTPGenerate_InputErrors(t *testing.T) {
	srv := newServer(t, config.Defaults())

	t.Run("invalid_json", func(t *testing.T) {
		status, _ := post(t, srv, "/generate", `{`)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})

	t.Run("unknown_algorithm", func(t *testing.T) {
		var out gendto.ErrorBody
		status := postJSON(t, srv, "/generate", gendto.GenerateRequest{Algorithm: "sudoku"}, &out)
		if status != http.StatusBadRequest || out.Error != "unknown algorithm" {
			t.Fatalf("unexpected response %d %+v", status, out)
		}
	})

	t.Run("unknown_field", func(t *testing.T) {
		var out gendto.ErrorBody
		status := postJSON(t, srv, "/generate", gendto.GenerateRequest{
			Algorithm: "bubble-sort",
			Input:     map[string]any{"colour": "red"},
		}, &out)
		if status != http.StatusBadRequest || out.Error != "invalid input" {
			t.Fatalf("unexpected response %d %+v", status, out)
		}
	})

	t.Run("unsorted_binary_search", func(t *testing.T) {
		var out gendto.ErrorBody
		status := postJSON(t, srv, "/generate", gendto.GenerateRequest{
			Algorithm: "binary-search",
			Input:     map[string]any{"array": []int{9, 1, 4}},
		}, &out)
		if status != http.StatusBadRequest || out.Error != "precondition failed" {
			t.Fatalf("unexpected response %d %+v", status, out)
		}
		details, _ := out.Details.([]any)
		if len(details) != 1 || !strings.Contains(details[0].(string), "ascending") {
			t.Fatalf("unexpected details %#v", out.Details)
		}
	})
}

func TestHTTPGenerate_RulesFromConfig(t *testing.T) {
	rt := config.Defaults()
	rt.Rules = map[string][]validate.Rule{
		"n-queens": {{Name: "queens-range", Expr: "queens >= 4 && queens <= 6", Message: "queens must be between 4 and 6"}},
	}
	srv := newServer(t, rt)

	var out gendto.ErrorBody
	status := postJSON(t, srv, "/generate", gendto.GenerateRequest{
		Algorithm: "n-queens",
		Input:     map[string]any{"queens": 8},
	}, &out)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	status = postJSON(t, srv, "/generate", gendto.GenerateRequest{
		Algorithm: "n-queens",
		Input:     map[string]any{"queens": 4},
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestHTTPGenerateBatch_SharesRandomArray(t *testing.T) {
	srv := newServer(t, config.Defaults())

	var out gendto.BatchResponse
	status := postJSON(t, srv, "/generate/batch", gendto.BatchRequest{
		Algorithms: []string{"bubble-sort", "quick-sort", "heap-sort"},
		Random:     12,
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(out.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out.Results))
	}

	first := out.Results[0].Input.Array
	if len(first) != 12 {
		t.Fatalf("expected 12 random values, got %v", first)
	}
	want := slices.Sorted(slices.Values(first))
	for _, res := range out.Results {
		if !slices.Equal(res.Input.Array, first) {
			t.Fatalf("%s got a different array: %v", res.Algorithm, res.Input.Array)
		}
		arr := sink.NewArray(res.Input.Array)
		for _, st := range res.Steps {
			arr.Apply(st)
		}
		if got := arr.Snapshot().Values; !slices.Equal(got, want) {
			t.Fatalf("%s replay left %v", res.Algorithm, got)
		}
	}
}

func TestHTTPGenerate_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rt := config.Defaults()
	rt.RedisAddr = mr.Addr()
	srv := newServer(t, rt)

	req := gendto.GenerateRequest{Algorithm: "knapsack", Input: map[string]any{"capacity": 9}}
	var first, second gendto.GenerateResponse
	if status := postJSON(t, srv, "/generate", req, &first); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if keys := mr.Keys(); len(keys) != 1 {
		t.Fatalf("expected one cached sequence, got %v", keys)
	}
	if status := postJSON(t, srv, "/generate", req, &second); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(first.Steps) != len(second.Steps) || len(mr.Keys()) != 1 {
		t.Fatalf("cached response differs: %d vs %d steps", len(first.Steps), len(second.Steps))
	}
}

func TestHTTPMetrics_CountsOutcomes(t *testing.T) {
	srv := newServer(t, config.Defaults())

	postJSON(t, srv, "/generate", gendto.GenerateRequest{Algorithm: "fibonacci"}, nil)
	postJSON(t, srv, "/generate", gendto.GenerateRequest{Algorithm: "fibonacci", Input: map[string]any{"n": 99}}, nil)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	text := string(body)
	for _, want := range []string{
		`algoviz_generate_requests_total{algorithm="fibonacci",outcome="ok"} 1`,
		`algoviz_generate_requests_total{algorithm="fibonacci",outcome="rejected"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}

func TestHTTPGenerate_ConcurrentRequests(t *testing.T) {
	srv := newServer(t, config.Defaults())

	const n = 60
	algorithms := []string{"bubble-sort", "bfs", "n-queens"}

	var wg sync.WaitGroup
	errs := make(chan string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, _ := json.Marshal(gendto.GenerateRequest{Algorithm: algorithms[i%len(algorithms)], Random: 8})
			resp, err := http.Post(srv.URL+"/generate", "application/json", bytes.NewBuffer(b))
			if err != nil {
				errs <- err.Error()
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				errs <- string(body)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Fatal(msg)
	}
}
