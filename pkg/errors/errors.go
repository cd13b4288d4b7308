package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeScraperError = "SCRAPER_ERROR"
	CodeFetch        = "FETCH_ERROR"
	CodeParse        = "PARSE_ERROR"
	CodeMissingField = "MISSING_FIELD"
	CodeOutOfRange   = "OUT_OF_RANGE"
)

type ScraperError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ScraperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScraperError) Unwrap() error {
	return e.Cause
}

func NewScraperError(message, code string, context map[string]any) *ScraperError {
	return &ScraperError{
		Message: message,
		Code:    code,
		Context: context,
	}
}

func (e *ScraperError) WithCause(cause error) *ScraperError {
	e.Cause = cause
	return e
}

// FetchError reports a transport failure or a non-success status for a page.
type FetchError struct {
	*ScraperError
	URL        string
	StatusCode int
}

func NewFetchError(message, url string, statusCode int, cause error) *FetchError {
	return &FetchError{
		ScraperError: &ScraperError{
			Message: message,
			Code:    CodeFetch,
			Context: map[string]any{
				"url":         url,
				"status_code": statusCode,
			},
			Cause: cause,
		},
		URL:        url,
		StatusCode: statusCode,
	}
}

// ParseError reports an absent markup node or a malformed embedded payload.
type ParseError struct {
	*ScraperError
	Source string
}

func NewParseError(message, source string, cause error) *ParseError {
	return &ParseError{
		ScraperError: &ScraperError{
			Message: message,
			Code:    CodeParse,
			Context: map[string]any{
				"source": source,
			},
			Cause: cause,
		},
		Source: source,
	}
}

// MissingFieldError reports a statistic absent from a parsed profile blob.
type MissingFieldError struct {
	*ScraperError
	Path string
}

func NewMissingFieldError(path string) *MissingFieldError {
	return &MissingFieldError{
		ScraperError: &ScraperError{
			Message: fmt.Sprintf("missing field %q", path),
			Code:    CodeMissingField,
			Context: map[string]any{
				"path": path,
			},
		},
		Path: path,
	}
}

const (
	ReasonTooLow  = "too low"
	ReasonTooHigh = "too high"
)

type OutOfRangeError struct {
	*ScraperError
	Value  int
	Min    int
	Max    int
	Reason string
}

func NewOutOfRangeError(what string, value, min, max int) *OutOfRangeError {
	reason := ReasonTooHigh
	if value < min {
		reason = ReasonTooLow
	}
	return &OutOfRangeError{
		ScraperError: &ScraperError{
			Message: fmt.Sprintf("%s %d is %s (valid range %d-%d)", what, value, reason, min, max),
			Code:    CodeOutOfRange,
			Context: map[string]any{
				"value": value,
				"min":   min,
				"max":   max,
			},
		},
		Value:  value,
		Min:    min,
		Max:    max,
		Reason: reason,
	}
}

func (e *OutOfRangeError) TooLow() bool {
	return e.Reason == ReasonTooLow
}

func IsFetchError(err error) bool {
	var target *FetchError
	return stderrors.As(err, &target)
}

func IsParseError(err error) bool {
	var target *ParseError
	return stderrors.As(err, &target)
}

func IsMissingField(err error) bool {
	var target *MissingFieldError
	return stderrors.As(err, &target)
}

func IsOutOfRange(err error) bool {
	var target *OutOfRangeError
	return stderrors.As(err, &target)
}
