// Package validation runs precondition rules against moderation commands
// before anything is mutated. Rules are grouped into named rule sets that can
// include shared base sets.
package validation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Failure is a single broken rule.
type Failure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f Failure) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// Result holds the ordered failures of one validation run. No failures means valid.
type Result struct {
	Failures []Failure
}

func (r Result) Valid() bool {
	return len(r.Failures) == 0
}

// Err returns nil for a valid result, *Error otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Failures: r.Failures}
}

// Error carries every failure of a validation run.
type Error struct {
	Failures []Failure
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages(), "; "))
}

// Messages lists the failure messages without field names, for display.
func (e *Error) Messages() []string {
	return lo.Map(e.Failures, func(f Failure, _ int) string {
		return f.Message
	})
}

// Rule inspects v and reports what is wrong with it.
type Rule[T any] func(v T) []Failure

// RuleSet is an ordered list of rules for one command type.
type RuleSet[T any] struct {
	name  string
	rules []Rule[T]
}

func NewRuleSet[T any](name string) *RuleSet[T] {
	return &RuleSet[T]{name: name}
}

func (s *RuleSet[T]) Name() string {
	return s.name
}

// Add appends rules and returns the set for chaining.
func (s *RuleSet[T]) Add(rules ...Rule[T]) *RuleSet[T] {
	s.rules = append(s.rules, rules...)
	return s
}

// Validate runs every rule in order and collects all failures.
func (s *RuleSet[T]) Validate(v T) Result {
	var failures []Failure
	for _, rule := range s.rules {
		failures = append(failures, rule(v)...)
	}
	return Result{Failures: failures}
}

// Include runs a base rule set against the part of T that view selects.
func Include[T, B any](base *RuleSet[B], view func(T) B) Rule[T] {
	return func(v T) []Failure {
		return base.Validate(view(v)).Failures
	}
}

// Check fails with message unless ok holds.
func Check[T any](field, message string, ok func(T) bool) Rule[T] {
	return func(v T) []Failure {
		if ok(v) {
			return nil
		}
		return []Failure{{Field: field, Message: message}}
	}
}

// When runs rule only if cond holds.
func When[T any](cond func(T) bool, rule Rule[T]) Rule[T] {
	return func(v T) []Failure {
		if !cond(v) {
			return nil
		}
		return rule(v)
	}
}
