package api

import (
	"errors"

	"github.com/dmitrymomot/eventkit/pkg/i18n"
	"github.com/dmitrymomot/eventkit/pkg/rules"
	"github.com/dmitrymomot/eventkit/pkg/validator"
)

type listRulesResponse struct {
	Rules []rules.Name `json:"rules"`
}

func (s *Server) listRules(Context, struct{}) Response {
	return JSON(listRulesResponse{Rules: rules.All()})
}

type ruleTableRequest struct {
	Intent string `path:"intent" validate:"required,oneof=draft public"`
}

type ruleTableResponse struct {
	Intent  validator.Intent  `json:"intent"`
	Entries []validator.Entry `json:"entries"`
}

func (s *Server) ruleTable(_ Context, req ruleTableRequest) Response {
	t, ok := s.validator.Table(validator.Intent(req.Intent))
	if !ok {
		return Fail(ErrNotFound)
	}
	return JSON(ruleTableResponse{Intent: validator.Intent(req.Intent), Entries: t.Entries()})
}

type messagesRequest struct {
	Lang string `path:"lang" validate:"required,max=35"`
}

type messagesResponse struct {
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}

func (s *Server) messages(_ Context, req messagesRequest) Response {
	msgs, err := s.translator.Messages(req.Lang)
	if err != nil {
		if errors.Is(err, i18n.ErrLanguageNotSupported) {
			return Fail(errors.Join(ErrNotFound, err))
		}
		return Fail(err)
	}
	return JSON(messagesResponse{Language: req.Lang, Messages: msgs})
}
