// Package validate checks catalog content for structural integrity and
// display safety.
//
// Two kinds of result are returned. Result carries errors and warnings and
// is valid when there are no errors; warnings are advisory only. Advisory
// carries warnings alone and is valid when there are none. No function in
// this package returns a Go error for a content problem: findings are always
// reported in the result.
package validate

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of a check that can find both errors and warnings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found. Warnings do not count.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// MarshalJSON encodes the result with a computed "valid" field.
// Empty lists are encoded as [] rather than null.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Valid    bool     `json:"valid"`
		Errors   []string `json:"errors"`
		Warnings []string `json:"warnings"`
	}{r.Valid(), nonNil(r.Errors), nonNil(r.Warnings)})
}

// Advisory is the outcome of a heuristic check that only warns.
type Advisory struct {
	Warnings []string
}

// Valid reports whether no warnings fired.
func (a Advisory) Valid() bool {
	return len(a.Warnings) == 0
}

// MarshalJSON encodes the advisory with a computed "valid" field.
func (a Advisory) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Valid    bool     `json:"valid"`
		Warnings []string `json:"warnings"`
	}{a.Valid(), nonNil(a.Warnings)})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
