// internal/report/generator/generator.go
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	apperrors "report-writer/internal/common/errors"
	"report-writer/internal/models"
	"report-writer/internal/report/schema"
)

var (
	ErrGenerationTimeout = errors.New("GENERATION_TIMEOUT")
	ErrGenerationFailed  = errors.New("GENERATION_FAILED")
)

// Generator produces report text for one request. Implementations make exactly
// one outbound attempt per call.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// Request is immutable once built.
type Request struct {
	TemplateID models.TemplateID
	Fields     models.FieldSet
	Notes      string
	// RequestID correlates logs and audit rows; it is not sent on the wire.
	RequestID string
}

// WireRequest is the JSON body exchanged with the generation backend.
type WireRequest struct {
	Template        string            `json:"template"`
	FormData        map[string]string `json:"formData"`
	AdditionalNotes string            `json:"additionalNotes"`
}

// WireResponse is the success body; Error carries a backend message on failure.
type WireResponse struct {
	Report string          `json:"report,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

type Result struct {
	Report string `json:"report"`
}

// Wire converts the request to its JSON body.
func (r Request) Wire() WireRequest {
	form := map[string]string{}
	if r.Fields != nil {
		form = r.Fields.Values()
	}
	return WireRequest{
		Template:        string(r.TemplateID),
		FormData:        form,
		AdditionalNotes: r.Notes,
	}
}

// FromWire validates the template id and form data and builds the typed
// request. Keys must match a declared field name exactly and choice values must
// be one of the field's options; the first offending key in sorted order is
// reported as UNKNOWN_FIELD or INVALID_FIELD_VALUE.
func FromWire(w WireRequest) (Request, error) {
	id, err := models.ParseTemplateID(w.Template)
	if err != nil {
		return Request{}, err
	}
	if err := checkFormData(schema.MustFor(id), w.FormData); err != nil {
		return Request{}, err
	}
	fs, err := models.NewFieldSet(id, w.FormData)
	if err != nil {
		return Request{}, err
	}
	return Request{TemplateID: id, Fields: fs, Notes: w.AdditionalNotes}, nil
}

func checkFormData(s *schema.Schema, values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, ok := s.Field(name)
		if !ok {
			return apperrors.NewUnknownFieldError(string(s.Template), name)
		}
		if !f.Allows(values[name]) {
			return apperrors.NewInvalidFieldValueError(name, values[name])
		}
	}
	return nil
}

// GenerationError carries the most useful message available for the user.
// It wraps one of the package sentinels.
type GenerationError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Message returns the user-facing message carried by err, or "" when none is known.
func Message(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return ""
}

func failed(status int, msg string) error {
	return &GenerationError{Message: msg, StatusCode: status, Err: ErrGenerationFailed}
}

func timedOut() error {
	return &GenerationError{Message: "Report generation timed out. Please try again.", Err: ErrGenerationTimeout}
}

// unreachable wraps a transport failure. The user sees the underlying cause
// without the request URL.
func unreachable(err error) error {
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}
	return &GenerationError{
		Message: "Could not reach the report generator: " + cause.Error(),
		Err:     fmt.Errorf("%w: %v", ErrGenerationFailed, err),
	}
}

// contextError maps a finished context to the matching sentinel.
func contextError(ctx context.Context, cause error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timedOut()
	}
	return &GenerationError{Err: fmt.Errorf("%w: %v", ErrGenerationFailed, cause)}
}

// backendMessage pulls a human-readable message out of an error body. Accepted
// shapes: {"error":"msg"}, {"error":{"message":"msg"}}, {"message":"msg"}.
func backendMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if len(envelope.Error) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Error, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return nested.Message
		}
	}
	return strings.TrimSpace(envelope.Message)
}
