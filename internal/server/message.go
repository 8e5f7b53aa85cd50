package server

import (
	"github.com/lox/wildpoker/poker"
)

// Request asks the server to evaluate one hand of 5-7 tokens.
type Request struct {
	ID    string   `json:"id"`
	Cards []string `json:"cards"`
}

// Response is the reply to a Request. Exactly one of Cards or Error is set.
type Response struct {
	ID          string            `json:"id"`
	Cards       []string          `json:"cards,omitempty"`
	Category    string            `json:"category,omitempty"`
	Substitutes map[string]string `json:"substitutes,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Evaluate resolves a request into its response.
func Evaluate(req Request) Response {
	result, err := poker.Evaluate(req.Cards)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}

	resp := Response{
		ID:       req.ID,
		Cards:    result.Tokens(),
		Category: result.Category().String(),
	}
	if len(result.Substitutes) > 0 {
		resp.Substitutes = make(map[string]string, len(result.Substitutes))
		for _, s := range result.Substitutes {
			resp.Substitutes[s.Joker.String()] = s.Card.String()
		}
	}
	return resp
}

func errorResponse(id, message string) *Response {
	return &Response{ID: id, Error: message}
}
