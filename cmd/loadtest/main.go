package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/awmpietro/algoviz/internal/transport/gendto"
)

func main() {
	url := flag.String("url", "http://localhost:8080/generate", "generate endpoint URL")
	algorithms := flag.String("algorithms", "merge-sort", "comma-separated algorithm ids, requested round-robin")
	random := flag.Int("random", 0, "request a fresh random array of this size (bypasses the cache)")
	array := flag.String("array", "64,34,25,12,22,11,90", "comma-separated array used when -random is 0")
	rps := flag.Int("rps", 50, "target requests per second")
	duration := flag.Duration("duration", 60*time.Second, "test duration")
	workers := flag.Int("workers", 50, "number of concurrent workers")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP client timeout")
	maxP90 := flag.Duration("max-p90", 30*time.Millisecond, "P90 latency the run must stay under")
	flag.Parse()

	if *rps <= 0 || *duration <= 0 || *workers <= 0 {
		fmt.Fprintln(os.Stderr, "rps, duration and workers must be > 0")
		os.Exit(2)
	}

	bodies, err := payloads(splitList(*algorithms), *random, parseArray(*array))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	jobs := make(chan payload, *workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make([]result, 0, *rps*int(duration.Seconds())+1)

	for range *workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				r := send(client, *url, p)
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(*rps))
	defer ticker.Stop()
	deadline := time.Now().Add(*duration)

	for n := 0; ; n++ {
		if now := <-ticker.C; now.After(deadline) {
			break
		}
		jobs <- bodies[n%len(bodies)]
	}
	close(jobs)
	wg.Wait()

	sum := summarize(results, *duration)
	if sum.Requests == 0 {
		fmt.Fprintln(os.Stderr, "no requests executed")
		os.Exit(1)
	}
	sum.print(os.Stdout, *rps)

	if sum.meets(*rps, *maxP90) {
		fmt.Printf("PASS: meets %d RPS and P90 < %s\n", *rps, *maxP90)
		return
	}
	fmt.Println("FAIL: does not meet target (or has request errors)")
	os.Exit(1)
}

type payload struct {
	algorithm string
	body      []byte
}

func payloads(algorithms []string, random int, array []int) ([]payload, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("at least one algorithm is required")
	}
	out := make([]payload, 0, len(algorithms))
	for _, name := range algorithms {
		req := gendto.GenerateRequest{Algorithm: name, Random: random}
		if random == 0 {
			req.Input = map[string]any{"array": array}
		}
		b, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", name, err)
		}
		out = append(out, payload{algorithm: name, body: b})
	}
	return out, nil
}

// send posts one request and counts the steps of a successful response.
func send(client *http.Client, url string, p payload) result {
	start := time.Now()
	r := result{algorithm: p.algorithm}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(p.body))
	if err != nil {
		r.latency, r.err = time.Since(start), err
		return r
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		r.latency, r.err = time.Since(start), err
		return r
	}
	defer resp.Body.Close()

	r.status = resp.StatusCode
	if resp.StatusCode == http.StatusOK {
		var out struct {
			Steps []json.RawMessage `json:"steps"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err == nil {
			r.steps = len(out.Steps)
		}
	}
	r.latency = time.Since(start)
	return r
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseArray(raw string) []int {
	var out []int
	for _, part := range splitList(raw) {
		if v, err := strconv.Atoi(part); err == nil {
			out = append(out, v)
		}
	}
	return out
}
