// Package matcherr holds the tagged error type shared across the
// matching core: a single struct carrying a kind enum, a human
// message, and an optionally wrapped cause, with errors.Is/errors.As
// support via Unwrap. Callers branch on Kind, never on message text.
package matcherr

import "fmt"

// Kind enumerates the error categories. A match-rule failure is never
// one of these — that is a negative boolean result, not an error.
type Kind string

const (
	KindNormalization   Kind = "NormalizationError"
	KindConfig          Kind = "ConfigError"
	KindRetrieval       Kind = "RetrievalError"
	KindRankingDegraded Kind = "RankingDegradation"
)

// Error is the tagged error value threaded through the core. FieldPath
// and Invariant are only populated for normalization failures, which
// always cite the offending field and the invariant that rejected it.
type Error struct {
	Kind      Kind
	Message   string
	FieldPath string
	Invariant string
	Cause     error
}

func (e *Error) Error() string {
	switch {
	case e.FieldPath != "" && e.Invariant != "":
		return fmt.Sprintf("%s: %s (field=%s, invariant=%s)", e.Kind, e.Message, e.FieldPath, e.Invariant)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Normalization builds a NormalizationError citing the offending field
// path and the invariant id that rejected it (e.g. "items[0].min.price",
// "I-06").
func Normalization(fieldPath, invariant, message string) error {
	return &Error{Kind: KindNormalization, Message: message, FieldPath: fieldPath, Invariant: invariant}
}

// Config builds a ConfigError — fatal at construction, never at query
// time.
func Config(message string, cause error) error {
	return &Error{Kind: KindConfig, Message: message, Cause: cause}
}

// Retrieval builds a RetrievalError wrapping a store/vector-search I/O
// failure; the caller decides whether to retry.
func Retrieval(message string, cause error) error {
	return &Error{Kind: KindRetrieval, Message: message, Cause: cause}
}

// RankingDegradation builds a RankingDegradation-kind error for the
// non-fatal case of a survivor that lacks a stored embedding and is
// dropped from ranking. The core's query path reports that case with a
// Warn log and a metric and does not construct this error.
func RankingDegradation(message string, cause error) error {
	return &Error{Kind: KindRankingDegraded, Message: message, Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
