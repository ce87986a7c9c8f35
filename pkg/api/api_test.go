package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/wordcalc/pkg/dict"
	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/hazyhaar/wordcalc/pkg/numwords"
	"github.com/hazyhaar/wordcalc/pkg/pipeline"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) *pipeline.Calculator {
	t.Helper()
	d, err := dict.LoadDictionary(filepath.Join("..", "..", "vocab", "ru"))
	require.NoError(t, err)
	c, err := pipeline.New(pipeline.Options{
		Locale:     numwords.Russian,
		Dictionary: d,
		History:    history.NewMemoryStore(),
		Logger:     discardLogger(),
	})
	require.NoError(t, err)
	return c
}

// brokenService fails every history operation.
type brokenService struct{ Service }

var errStore = errors.New("store offline")

func (brokenService) History(context.Context) ([]history.Record, error) { return nil, errStore }
func (brokenService) ClearHistory(context.Context) error               { return errStore }
