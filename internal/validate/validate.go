// Package validate checks generator inputs against precondition rules
// written as expr-lang boolean expressions. Generators trust their input;
// the service runs these rules before handing a request to them.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/awmpietro/algoviz/internal/algo"
	"github.com/awmpietro/algoviz/internal/algo/graph"
	"github.com/awmpietro/algoviz/internal/step"
)

var ErrPrecondition = errors.New("precondition failed")

// Rule is one named condition. Message is reported when Expr evaluates to
// false.
type Rule struct {
	Name    string `yaml:"name" json:"name" mapstructure:"name"`
	Expr    string `yaml:"expr" json:"expr" mapstructure:"expr"`
	Message string `yaml:"message" json:"message" mapstructure:"message"`
}

// Violation is a rule that did not hold.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error lists every rule an input failed. It unwraps to ErrPrecondition.
type Error struct {
	Algorithm  string
	Violations []Violation
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Algorithm, ErrPrecondition, strings.Join(e.Details(), "; "))
}

func (e *Error) Unwrap() error { return ErrPrecondition }

// Details returns the violation messages in rule order.
func (e *Error) Details() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// env is what a rule sees. Field names follow the request input keys.
type env struct {
	Array    []int    `expr:"array"`
	Target   int      `expr:"target"`
	Start    string   `expr:"start"`
	End      string   `expr:"end"`
	Value    int      `expr:"value"`
	N        int      `expr:"n"`
	Capacity int      `expr:"capacity"`
	Matrices int      `expr:"matrices"`
	Queens   int      `expr:"queens"`
	Nodes    []string `expr:"nodes"`
}

func newEnv(in algo.Input) env {
	return env{
		Array:    in.Array,
		Target:   in.Target,
		Start:    in.Start,
		End:      in.End,
		Value:    in.Value,
		N:        in.N,
		Capacity: in.Capacity,
		Matrices: in.Matrices,
		Queens:   in.Queens,
		Nodes:    graph.Demo().Nodes,
	}
}

var ascending = expr.Function("ascending", func(params ...any) (any, error) {
	arr, ok := params[0].([]int)
	if !ok {
		return false, fmt.Errorf("ascending: want []int, got %T", params[0])
	}
	for i := 1; i < len(arr); i++ {
		if arr[i-1] > arr[i] {
			return false, nil
		}
	}
	return true, nil
}, new(func([]int) bool))

type compiled struct {
	rule    Rule
	program *vm.Program
}

// Compile type-checks a rule against the input environment.
func Compile(r Rule) (*vm.Program, error) {
	src := strings.TrimSpace(r.Expr)
	if src == "" {
		return nil, fmt.Errorf("rule %q: empty expression", r.Name)
	}
	p, err := expr.Compile(src, expr.Env(env{}), expr.AsBool(), ascending)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	return p, nil
}

// Validator holds the compiled rule set for every algorithm.
type Validator struct {
	rules map[algo.ID][]compiled
}

// New compiles the default rules merged with overrides. Override keys are
// algorithm ids or family names. An override replaces the default rule of
// the same name, or disables it when its Expr is empty; other overrides are
// appended.
func New(overrides map[string][]Rule) (*Validator, error) {
	for key := range overrides {
		if _, ok := algo.Parse(key); ok {
			continue
		}
		if !isFamily(key) {
			return nil, fmt.Errorf("rules for unknown algorithm or family %q", key)
		}
	}

	v := &Validator{rules: make(map[algo.ID][]compiled)}
	for _, id := range algo.All() {
		family := string(id.Family())
		set := merge(DefaultRules()[family], overrides[family])
		set = append(set, merge(DefaultRules()[id.String()], overrides[id.String()])...)

		for _, r := range set {
			p, err := Compile(r)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			v.rules[id] = append(v.rules[id], compiled{rule: r, program: p})
		}
	}
	return v, nil
}

func isFamily(s string) bool {
	for _, f := range step.Families() {
		if string(f) == s {
			return true
		}
	}
	return false
}

func merge(base, overrides []Rule) []Rule {
	out := append([]Rule(nil), base...)
	for _, o := range overrides {
		idx := -1
		for i, r := range out {
			if r.Name == o.Name {
				idx = i
				break
			}
		}
		switch {
		case idx >= 0 && strings.TrimSpace(o.Expr) == "":
			out = append(out[:idx], out[idx+1:]...)
		case idx >= 0:
			out[idx] = o
		case strings.TrimSpace(o.Expr) != "":
			out = append(out, o)
		}
	}
	return out
}

// Rules returns the effective rules for id.
func (v *Validator) Rules(id algo.ID) []Rule {
	out := make([]Rule, 0, len(v.rules[id]))
	for _, c := range v.rules[id] {
		out = append(out, c.rule)
	}
	return out
}

// Check evaluates every rule of id against in. It returns a *Error listing
// all failed rules, or a plain error when a rule cannot be evaluated.
func (v *Validator) Check(id algo.ID, in algo.Input) error {
	e := newEnv(in)
	var violations []Violation
	for _, c := range v.rules[id] {
		out, err := expr.Run(c.program, e)
		if err != nil {
			return fmt.Errorf("rule %q: %w", c.rule.Name, err)
		}
		if ok, _ := out.(bool); !ok {
			msg := c.rule.Message
			if msg == "" {
				msg = fmt.Sprintf("%s does not hold", c.rule.Expr)
			}
			violations = append(violations, Violation{Rule: c.rule.Name, Message: msg})
		}
	}
	if len(violations) > 0 {
		return &Error{Algorithm: id.String(), Violations: violations}
	}
	return nil
}
