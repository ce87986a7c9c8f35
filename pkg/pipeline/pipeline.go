// Package pipeline runs a spoken arithmetic request through number-word
// normalization, operator mapping, evaluation and history recording.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/message"

	"github.com/hazyhaar/wordcalc/pkg/dict"
	"github.com/hazyhaar/wordcalc/pkg/expr"
	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/hazyhaar/wordcalc/pkg/mapper"
	"github.com/hazyhaar/wordcalc/pkg/numwords"
)

// Options configures a Calculator. Dictionary and History are required.
type Options struct {
	Locale     numwords.Locale
	Dictionary *dict.Dictionary
	History    history.Store
	Logger     *slog.Logger
	// Metrics may be nil.
	Metrics *Metrics
	// CacheSize bounds the raw input -> expression cache; 0 disables it.
	CacheSize int
}

// Result is the outcome of one Compute call. Value is nil and ErrorKind set
// when evaluation failed.
type Result struct {
	Input      string      `json:"input"`
	Expression string      `json:"expression"`
	Outcome    string      `json:"outcome"`
	Value      *expr.Value `json:"value,omitempty"`
	ErrorKind  string      `json:"error_kind,omitempty"`
}

// Calculator is safe for concurrent use: the dictionary is immutable and the
// history store serializes its own writers.
type Calculator struct {
	locale  numwords.Locale
	dict    *dict.Dictionary
	store   history.Store
	logger  *slog.Logger
	metrics *Metrics
	printer *message.Printer
	cache   *lru.Cache[string, string]
}

// New builds a Calculator.
func New(opts Options) (*Calculator, error) {
	if opts.Dictionary == nil {
		return nil, errors.New("pipeline: nil dictionary")
	}
	if opts.History == nil {
		return nil, errors.New("pipeline: nil history store")
	}
	if opts.Locale == "" {
		opts.Locale = numwords.Russian
	}
	if m := opts.Dictionary.Manifest; m != nil && m.Locale != string(opts.Locale) {
		return nil, fmt.Errorf("pipeline: vocabulary %s is for locale %q, not %q", m.ID, m.Locale, opts.Locale)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Calculator{
		locale:  opts.Locale,
		dict:    opts.Dictionary,
		store:   opts.History,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		printer: newPrinter(opts.Locale.Tag()),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, string](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("pipeline: translation cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// Translate turns raw text into the symbolic expression handed to the
// evaluator: number words become digits, operator phrases become symbols and
// whitespace is collapsed.
func (c *Calculator) Translate(raw string) string {
	if c.cache != nil {
		if e, ok := c.cache.Get(raw); ok {
			if c.metrics != nil {
				c.metrics.cacheHits.Inc()
			}
			return e
		}
	}
	text := numwords.Normalize(raw, c.locale)
	text = c.dict.NormalizeTerm(text)
	e := mapper.Collapse(mapper.Map(text, c.dict))
	if c.cache != nil {
		c.cache.Add(raw, e)
	}
	return e
}

// Compute translates and evaluates raw, then appends the attempt to the
// history, failures included. Evaluation errors are reported in the Result;
// the returned error is only set when the history could not be written.
func (c *Calculator) Compute(ctx context.Context, raw string) (*Result, error) {
	start := time.Now()
	res := &Result{Input: raw, Expression: c.Translate(raw)}

	label := "ok"
	v, err := expr.Evaluate(res.Expression)
	if err != nil {
		kind, _ := expr.KindOf(err)
		if kind == 0 {
			kind = expr.MalformedExpression
		}
		label = kind.String()
		res.ErrorKind = label
		res.Outcome = describe(c.printer, kind)
		c.logger.Debug("evaluation failed", "expression", res.Expression, "error", err)
	} else {
		res.Value = &v
		res.Outcome = v.String()
	}

	rec := history.Record{Input: res.Input, Expression: res.Expression, Outcome: res.Outcome}
	if err := c.store.Append(ctx, rec); err != nil {
		if c.metrics != nil {
			c.metrics.historyErrors.Inc()
		}
		c.logger.Error("append history", "input", raw, "error", err)
		return res, fmt.Errorf("record history: %w", err)
	}

	if c.metrics != nil {
		c.metrics.computations.WithLabelValues(label).Inc()
		c.metrics.duration.Observe(time.Since(start).Seconds())
	}
	c.logger.Info("computed", "expression", res.Expression, "outcome", res.Outcome)
	return res, nil
}

// History returns every recorded attempt in insertion order.
func (c *Calculator) History(ctx context.Context) ([]history.Record, error) {
	return c.store.List(ctx)
}

// ClearHistory empties the history.
func (c *Calculator) ClearHistory(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.logger.Info("history cleared")
	return nil
}

// Operators returns the vocabulary, longest phrase first.
func (c *Calculator) Operators() []dict.Entry {
	return c.dict.Entries()
}

// Locale returns the number-word locale.
func (c *Calculator) Locale() numwords.Locale {
	return c.locale
}
