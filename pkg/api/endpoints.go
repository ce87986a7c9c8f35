package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hazyhaar/wordcalc/pkg/dict"
	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/hazyhaar/wordcalc/pkg/kit"
	"github.com/hazyhaar/wordcalc/pkg/numwords"
	"github.com/hazyhaar/wordcalc/pkg/pipeline"
)

// MaxInputLength bounds the text accepted by compute, in bytes.
const MaxInputLength = 4096

// ErrInvalidRequest marks requests rejected before reaching the calculator.
var ErrInvalidRequest = errors.New("invalid request")

// Service is the calculator as seen by the transports.
// *pipeline.Calculator implements it.
type Service interface {
	Compute(ctx context.Context, raw string) (*pipeline.Result, error)
	History(ctx context.Context) ([]history.Record, error)
	ClearHistory(ctx context.Context) error
	Operators() []dict.Entry
	Locale() numwords.Locale
}

// Shared request/response types used by both HTTP and MCP transports.

type computeReq struct {
	Text string `json:"text"`
}

type historyResponse struct {
	Count   int              `json:"count"`
	Records []history.Record `json:"records"`
}

type clearResponse struct {
	Status string `json:"status"`
}

type operatorsResponse struct {
	Locale    string       `json:"locale"`
	Operators []dict.Entry `json:"operators"`
}

// endpoints holds the kit.Endpoints shared by HTTP handlers and MCP tools.
type endpoints struct {
	compute       kit.Endpoint
	listHistory   kit.Endpoint
	clearHistory  kit.Endpoint
	listOperators kit.Endpoint
}

func newEndpoints(svc Service, mw func(name string) kit.Middleware) endpoints {
	return endpoints{
		compute:       mw("compute")(computeEndpoint(svc)),
		listHistory:   mw("list_history")(listHistoryEndpoint(svc)),
		clearHistory:  mw("clear_history")(clearHistoryEndpoint(svc)),
		listOperators: mw("list_operators")(listOperatorsEndpoint(svc)),
	}
}

func computeEndpoint(svc Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*computeReq)
		if strings.TrimSpace(req.Text) == "" {
			return nil, fmt.Errorf("%w: text is empty", ErrInvalidRequest)
		}
		if len(req.Text) > MaxInputLength {
			return nil, fmt.Errorf("%w: text longer than %d bytes", ErrInvalidRequest, MaxInputLength)
		}
		if !utf8.ValidString(req.Text) {
			return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidRequest)
		}
		return svc.Compute(ctx, req.Text)
	}
}

func listHistoryEndpoint(svc Service) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		recs, err := svc.History(ctx)
		if err != nil {
			return nil, err
		}
		if recs == nil {
			recs = []history.Record{}
		}
		return historyResponse{Count: len(recs), Records: recs}, nil
	}
}

func clearHistoryEndpoint(svc Service) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		if err := svc.ClearHistory(ctx); err != nil {
			return nil, err
		}
		return clearResponse{Status: "cleared"}, nil
	}
}

func listOperatorsEndpoint(svc Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return operatorsResponse{Locale: string(svc.Locale()), Operators: svc.Operators()}, nil
	}
}
