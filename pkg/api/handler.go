package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/eventkit/pkg/logger"
	"github.com/dmitrymomot/eventkit/pkg/requestid"
)

// Context gives a handler the request it serves. It is the request's context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

type httpContext struct {
	w http.ResponseWriter
	r *http.Request
}

func newContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }

// HandlerFunc handles a decoded request value of type R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from the request.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for an error from binding or rendering.
type ErrorHandler func(ctx Context, err error)

// Wrap converts h to an http.HandlerFunc. Binders run in order; the first
// error is passed to onError, as is any error returned by Render.
func Wrap[R any](h HandlerFunc[R], onError ErrorHandler, binders ...Bind) http.HandlerFunc {
	if onError == nil {
		onError = ErrorWriter(nil)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := newContext(w, r)

		var req R
		for _, bind := range binders {
			if err := bind(r, &req); err != nil {
				onError(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			onError(ctx, err)
		}
	}
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON renders v with status 200.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: v}
}

// JSONWithStatus renders v with status.
func JSONWithStatus(status int, v any) Response {
	return jsonResponse{status: status, body: v}
}

type failure struct{ err error }

func (f failure) Render(http.ResponseWriter, *http.Request) error { return f.err }

// Fail hands err to the error handler.
func Fail(err error) Response {
	return failure{err: err}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an error.
type ErrorDetail struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Details   map[string][]string `json:"details,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

type errorInfo struct {
	status  int
	code    string
	message string
	details map[string][]string
}

func classifyError(err error) errorInfo {
	info := errorInfo{
		status:  ErrInternalServerError.Code,
		code:    ErrInternalServerError.Key,
		message: http.StatusText(http.StatusInternalServerError),
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.code = httpErr.Key
		info.message = err.Error()
	}

	var reqErr RequestError
	if errors.As(err, &reqErr) {
		info.status = http.StatusBadRequest
		info.code = "invalid_request"
		info.message = reqErr.Error()
		info.details = reqErr
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		info.status = ErrRequestTooLarge.Code
		info.code = ErrRequestTooLarge.Key
		info.message = http.StatusText(ErrRequestTooLarge.Code)
	}

	return info
}

// ErrorWriter returns the default error handler: it logs the error, at
// warn level for client errors, and writes an ErrorBody.
func ErrorWriter(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx Context, err error) {
		info := classifyError(err)
		r := ctx.Request()

		level := slog.LevelError
		if info.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("api"),
		}
		if len(info.details) > 0 {
			fields := make([]slog.Attr, 0, len(info.details))
			for _, name := range slices.Sorted(maps.Keys(info.details)) {
				fields = append(fields, slog.Any(name, info.details[name]))
			}
			attrs = append(attrs, logger.Group("details", fields...))
		}
		log.LogAttrs(ctx, level, "request error", attrs...)

		_ = JSONWithStatus(info.status, ErrorBody{Error: ErrorDetail{
			Code:      info.code,
			Message:   info.message,
			Details:   info.details,
			RequestID: requestid.FromContext(ctx),
		}}).Render(ctx.ResponseWriter(), r)
	}
}
