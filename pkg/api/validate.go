package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/eventkit/pkg/editor"
	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/i18n"
	"github.com/dmitrymomot/eventkit/pkg/logger"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

// Record formats accepted by the validate endpoint.
const (
	FormatEditor = "editor"
	FormatWire   = "wire"
)

type validateRequest struct {
	Record    json.RawMessage `json:"record" validate:"required"`
	Format    string          `json:"format" validate:"omitempty,oneof=editor wire"`
	Intent    string          `json:"intent" validate:"required,oneof=draft public"`
	Languages []string        `json:"languages" validate:"omitempty,max=16,dive,bcp47_language_tag"`
	Messages  bool            `json:"messages"`
}

type validateResponse struct {
	Valid    bool               `json:"valid"`
	Errors   validator.ErrorMap `json:"errors"`
	Messages []i18n.Message     `json:"messages,omitempty"`
}

func decodeRecord(raw json.RawMessage, format string) (*event.Record, error) {
	if format == FormatWire {
		var w event.WireEvent
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, errors.Join(event.ErrInvalidWireEvent, err)
		}
		return event.FromWire(&w)
	}
	return event.Decode(raw)
}

func (s *Server) validate(ctx Context, req validateRequest) Response {
	rec, err := decodeRecord(req.Record, req.Format)
	if err != nil {
		return Fail(errors.Join(ErrBadRequest, err))
	}

	langs := req.Languages
	if len(langs) == 0 {
		langs = s.languages
	}
	intent := validator.Intent(req.Intent)

	start := time.Now()
	errs := editor.NewSession(rec,
		editor.WithValidator(s.validator),
		editor.WithTaxonomy(s.taxonomy),
		editor.WithLanguages(langs...),
	).Check(intent)
	elapsed := time.Since(start)

	if errs == nil {
		errs = validator.ErrorMap{}
	}
	s.metrics.ObserveValidation(intent, errs, elapsed)
	s.log.DebugContext(ctx, "record validated",
		logger.Intent(req.Intent),
		logger.FailureCount(errs.Count()),
		logger.Duration(elapsed),
		slog.String("format", req.Format),
		logger.Component("api"),
	)

	resp := validateResponse{Valid: errs.IsEmpty(), Errors: errs}
	if req.Messages && !resp.Valid {
		resp.Messages = s.translator.Localize(errs, i18n.GetLocale(ctx))
	}
	return JSON(resp)
}
