package main

import (
	"fmt"
	"io"
	"slices"
	"time"
)

type result struct {
	algorithm string
	latency   time.Duration
	status    int
	steps     int
	err       error
}

// algorithmStats aggregates the successful responses of one algorithm.
type algorithmStats struct {
	Requests int
	Steps    int // step count of the last response; sequences are deterministic
	P50      time.Duration
}

type summary struct {
	Requests    int
	OK          int
	Non2xx      int
	Errors      int
	AchievedRPS float64
	Avg         time.Duration
	P50         time.Duration
	P90         time.Duration
	P99         time.Duration
	Duration    time.Duration
	ByAlgorithm map[string]algorithmStats
}

func summarize(results []result, d time.Duration) summary {
	s := summary{Requests: len(results), Duration: d, ByAlgorithm: map[string]algorithmStats{}}
	if len(results) == 0 {
		return s
	}

	all := make([]time.Duration, 0, len(results))
	perAlg := map[string][]time.Duration{}
	var total time.Duration
	for _, r := range results {
		all = append(all, r.latency)
		total += r.latency
		switch {
		case r.err != nil:
			s.Errors++
		case r.status >= 200 && r.status < 300:
			s.OK++
			st := s.ByAlgorithm[r.algorithm]
			st.Requests++
			st.Steps = r.steps
			s.ByAlgorithm[r.algorithm] = st
			perAlg[r.algorithm] = append(perAlg[r.algorithm], r.latency)
		default:
			s.Non2xx++
		}
	}

	slices.Sort(all)
	s.Avg = total / time.Duration(len(all))
	s.P50, s.P90, s.P99 = percentile(all, 50), percentile(all, 90), percentile(all, 99)
	if d > 0 {
		s.AchievedRPS = float64(len(all)) / d.Seconds()
	}

	for name, lat := range perAlg {
		slices.Sort(lat)
		st := s.ByAlgorithm[name]
		st.P50 = percentile(lat, 50)
		s.ByAlgorithm[name] = st
	}
	return s
}

// meets reports whether the run held the target rate under maxP90 without
// failed requests.
func (s summary) meets(targetRPS int, maxP90 time.Duration) bool {
	return s.AchievedRPS >= float64(targetRPS)*0.98 && s.P90 < maxP90 && s.Errors == 0 && s.Non2xx == 0
}

func (s summary) print(w io.Writer, targetRPS int) {
	fmt.Fprintf(w, "Load test finished\n")
	fmt.Fprintf(w, "- target_rps: %d\n", targetRPS)
	fmt.Fprintf(w, "- achieved_rps: %.2f\n", s.AchievedRPS)
	fmt.Fprintf(w, "- duration: %s\n", s.Duration)
	fmt.Fprintf(w, "- requests: %d (2xx %d, non_2xx %d, errors %d)\n", s.Requests, s.OK, s.Non2xx, s.Errors)
	fmt.Fprintf(w, "- latency_ms: avg %.3f p50 %.3f p90 %.3f p99 %.3f\n", ms(s.Avg), ms(s.P50), ms(s.P90), ms(s.P99))

	names := make([]string, 0, len(s.ByAlgorithm))
	for name := range s.ByAlgorithm {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		st := s.ByAlgorithm[name]
		fmt.Fprintf(w, "- %s: requests %d steps %d p50_ms %.3f\n", name, st.Requests, st.Steps, ms(st.P50))
	}
}

// percentile expects items sorted ascending.
func percentile(items []time.Duration, p int) time.Duration {
	if len(items) == 0 {
		return 0
	}
	return items[(len(items)-1)*p/100]
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
