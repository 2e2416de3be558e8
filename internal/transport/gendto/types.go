// Package gendto holds the wire types shared by the HTTP and Lambda
// transports.
package gendto

import (
	"errors"
	"net/http"

	"github.com/awmpietro/algoviz/internal/algo"
	"github.com/awmpietro/algoviz/internal/app"
	"github.com/awmpietro/algoviz/internal/step"
	"github.com/awmpietro/algoviz/internal/validate"
)

type GenerateRequest struct {
	Algorithm string         `json:"algorithm" yaml:"algorithm"`
	Input     map[string]any `json:"input,omitempty" yaml:"input,omitempty"`
	Random    int            `json:"random,omitempty" yaml:"random,omitempty"`
}

func (r GenerateRequest) App() app.GenerateRequest {
	return app.GenerateRequest{Algorithm: r.Algorithm, Input: r.Input, Random: r.Random}
}

type BatchRequest struct {
	Algorithms []string       `json:"algorithms" yaml:"algorithms"`
	Input      map[string]any `json:"input,omitempty" yaml:"input,omitempty"`
	Random     int            `json:"random,omitempty" yaml:"random,omitempty"`
}

func (r BatchRequest) App() app.BatchRequest {
	return app.BatchRequest{Algorithms: r.Algorithms, Input: r.Input, Random: r.Random}
}

type GenerateResponse struct {
	Algorithm algo.ID        `json:"algorithm" yaml:"algorithm"`
	Family    step.Family    `json:"family" yaml:"family"`
	Input     algo.Input     `json:"input" yaml:"input"`
	Steps     []step.Step    `json:"steps" yaml:"steps"`
	Counts    map[string]int `json:"counts" yaml:"counts"`
}

func FromResult(r app.GenerateResult) GenerateResponse {
	return GenerateResponse{
		Algorithm: r.Algorithm,
		Family:    r.Algorithm.Family(),
		Input:     r.Input,
		Steps:     r.Sequence.Steps,
		Counts:    r.Sequence.Counts(),
	}
}

type BatchResponse struct {
	Results []GenerateResponse `json:"results" yaml:"results"`
}

func FromResults(rs []app.GenerateResult) BatchResponse {
	out := BatchResponse{Results: make([]GenerateResponse, len(rs))}
	for i, r := range rs {
		out.Results[i] = FromResult(r)
	}
	return out
}

type Algorithm struct {
	ID     algo.ID     `json:"id" yaml:"id"`
	Family step.Family `json:"family" yaml:"family"`
}

type AlgorithmsResponse struct {
	Algorithms []Algorithm `json:"algorithms" yaml:"algorithms"`
}

func FromAlgorithms(list []app.AlgorithmInfo) AlgorithmsResponse {
	out := AlgorithmsResponse{Algorithms: make([]Algorithm, len(list))}
	for i, a := range list {
		out.Algorithms[i] = Algorithm{ID: a.ID, Family: a.Family}
	}
	return out
}

// ErrorBody is the JSON body of every failed request. Details is a string,
// or the list of violated preconditions.
type ErrorBody struct {
	Error   string `json:"error" yaml:"error"`
	Details any    `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error maps a service error to its status code and body.
func Error(err error) (int, ErrorBody) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorBody{Error: "precondition failed", Details: verr.Details()}
	case errors.Is(err, app.ErrUnknownAlgorithm):
		return http.StatusBadRequest, ErrorBody{Error: "unknown algorithm", Details: err.Error()}
	case app.IsClientError(err):
		return http.StatusBadRequest, ErrorBody{Error: "invalid input", Details: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: "generate failed", Details: err.Error()}
	}
}
