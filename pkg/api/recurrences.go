package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/i18n"
	"github.com/dmitrymomot/eventkit/pkg/recurring"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

type expandRequest struct {
	Recurrence event.Recurrence `json:"recurrence"`
	Messages   bool             `json:"messages"`
}

type expandResponse struct {
	Count       int                      `json:"count"`
	Occurrences []recurring.Occurrence   `json:"occurrences"`
	SubEvents   map[string]*event.Record `json:"sub_events"`
}

func (s *Server) expand(ctx Context, req expandRequest) Response {
	occ, err := recurring.Expand(req.Recurrence)
	if err != nil {
		s.metrics.ObserveExpansion(0, err)
		if errs, ok := validator.ExtractErrorMap(err); ok {
			resp := validateResponse{Errors: errs}
			if req.Messages {
				resp.Messages = s.translator.Localize(errs, i18n.GetLocale(ctx))
			}
			return JSONWithStatus(http.StatusUnprocessableEntity, resp)
		}
		if errors.Is(err, recurring.ErrTooManyOccurrences) {
			return Fail(errors.Join(ErrUnprocessableEntity, err))
		}
		return Fail(err)
	}

	s.metrics.ObserveExpansion(len(occ), nil)
	return JSON(expandResponse{Count: len(occ), Occurrences: occ, SubEvents: recurring.Records(occ)})
}
