package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hazyhaar/wordcalc/pkg/dict"
	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/hazyhaar/wordcalc/pkg/logging"
	"github.com/hazyhaar/wordcalc/pkg/numwords"
	"github.com/hazyhaar/wordcalc/pkg/pipeline"
	"github.com/hazyhaar/wordcalc/pkg/storage"
)

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg      config
	logger   *slog.Logger
	db       *storage.DB
	vocab    *dict.Dictionary
	calc     *pipeline.Calculator
	registry *prometheus.Registry
	closers  []io.Closer
}

func openApp(ctx context.Context, cfg config, stderr io.Writer) (a *app, err error) {
	logger, logCloser, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return nil, err
	}
	a = &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	locale, err := numwords.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}

	a.db, err = storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.db)

	a.vocab, err = a.loadVocabulary(ctx, locale)
	if err != nil {
		return nil, err
	}

	store, err := a.historyStore(ctx)
	if err != nil {
		return nil, err
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.calc, err = pipeline.New(pipeline.Options{
		Locale:     locale,
		Dictionary: a.vocab,
		History:    store,
		Logger:     logger,
		Metrics:    pipeline.NewMetrics(a.registry),
		CacheSize:  cfg.CacheSize,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// loadVocabulary seeds the operator table from the vocabulary directory and
// builds the dictionary from the table, so edits made in SQLite win.
func (a *app) loadVocabulary(ctx context.Context, locale numwords.Locale) (*dict.Dictionary, error) {
	catalog, err := dict.NewCatalog(a.cfg.VocabDir)
	if err != nil {
		return nil, err
	}
	shipped, err := catalog.Load(string(locale))
	if err != nil {
		return nil, err
	}

	n, err := a.db.SeedOperators(ctx, string(locale), shipped.Entries())
	if err != nil {
		return nil, err
	}
	rows, err := a.db.Operators(ctx, string(locale))
	if err != nil {
		return nil, err
	}
	vocab, err := dict.FromEntries(shipped.Manifest, rows)
	if err != nil {
		return nil, fmt.Errorf("operators table: %w", err)
	}

	for _, pair := range vocab.Overlaps() {
		a.logger.Warn("operator phrases overlap", "first", pair[0], "second", pair[1])
	}
	a.logger.Debug("vocabulary loaded", "id", shipped.Manifest.ID, "locale", locale,
		"seeded", n, "entries", vocab.Len())
	return vocab, nil
}

func (a *app) historyStore(ctx context.Context) (history.Store, error) {
	switch a.cfg.History.Backend {
	case "memory":
		return history.NewMemoryStore(), nil
	case "redis":
		var opts []history.RedisOption
		if key := a.cfg.History.RedisKey; key != "" {
			opts = append(opts, history.WithKey(key))
		}
		rs := history.NewRedisStore(a.cfg.History.RedisAddr, opts...)
		a.closers = append(a.closers, rs)
		if err := rs.Ping(ctx); err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return a.db.History(), nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
