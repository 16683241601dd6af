package validator

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Flatten expands nested schemas into a single level keyed by joined paths.
// "user": Schema{"name": ...} becomes "user.name".
func (s Schema) Flatten() map[string]Definition {
	out := make(map[string]Definition, len(s))
	s.flattenInto("", out)
	return out
}

func (s Schema) flattenInto(prefix string, out map[string]Definition) {
	for key, def := range s {
		path := Join(prefix, key)
		if nested, ok := def.(Schema); ok {
			nested.flattenInto(path, out)
			continue
		}
		out[path] = def
	}
}

// Paths returns the flattened schema paths in lexical order.
func (s Schema) Paths() []string {
	return slices.Sorted(maps.Keys(s.Flatten()))
}

// SchemaOption configures a schema validation call.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	labels map[string]string
	prefix string
	form   map[string]any
}

// WithLabels sets display names per flattened path.
func WithLabels(labels map[string]string) SchemaOption {
	return func(c *schemaConfig) {
		c.labels = labels
	}
}

// fieldJob is one field chain scheduled for execution.
type fieldJob struct {
	path  string
	value any
	rules []NormalizedRule
}

// prepare parses and normalizes every path before any value is evaluated.
// Paths with configuration errors are dropped from the returned jobs; their
// errors are joined.
func (e *Engine) prepare(schema Schema, values map[string]any, prefix string) ([]fieldJob, error) {
	flat := schema.Flatten()
	paths := slices.Sorted(maps.Keys(flat))

	jobs := make([]fieldJob, 0, len(paths))
	var errs []error
	for _, path := range paths {
		full := Join(prefix, path)
		parsed, err := ParsePath(path)
		if err != nil {
			errs = append(errs, withPath(err, full))
			continue
		}
		rules, err := e.Normalize(flat[path])
		if err != nil {
			errs = append(errs, withPath(err, full))
			continue
		}
		value, _ := parsed.Lookup(values)
		jobs = append(jobs, fieldJob{path: full, value: value, rules: rules})
	}
	return jobs, errors.Join(errs...)
}

// ValidateSchema validates each schema path independently and aggregates the
// results. Paths missing from values are validated against nil.
//
// Every path is parsed and normalized first. A path with a configuration
// error is skipped and reported in the returned error, while the remaining
// paths are still validated and returned.
//
// In bail mode fields run one after another in path order. In exhaustive mode
// field chains run concurrently, bounded by the engine concurrency; rules
// within a field always run in order.
func (e *Engine) ValidateSchema(ctx context.Context, schema Schema, values map[string]any, opts ...SchemaOption) (SchemaResult, error) {
	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	start := time.Now()
	jobs, cfgErr := e.prepare(schema, values, cfg.prefix)
	form := values
	if cfg.form != nil {
		form = cfg.form
	}
	if cfgErr != nil {
		e.logger.WarnContext(ctx, "schema has invalid definitions",
			logger.Component("validator"),
			logger.Error(cfgErr),
		)
	}

	results := make([]Result, len(jobs))
	run := func(ctx context.Context, i int) error {
		job := jobs[i]
		res, err := e.Run(ctx, job.rules, FieldContext{
			Field: job.path,
			Label: cfg.labels[job.path],
			Value: job.value,
			Form:  form,
		})
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	}

	if e.bails {
		for i := range jobs {
			if err := run(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.concurrency)
		for i := range jobs {
			g.Go(func() error {
				return run(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := make(SchemaResult, len(jobs))
	for i, job := range jobs {
		out[job.path] = results[i]
	}
	e.logger.DebugContext(ctx, "schema validated",
		logger.Component("validator"),
		logger.Count(len(jobs)),
		logger.Valid(out.Valid()),
		logger.Duration(time.Since(start)),
	)
	return out, cfgErr
}
