// Package app wires configuration, logging and the text engine together
// for the opentext command. An Application decodes input with the
// configured encoding, runs one Op over it and records metrics.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/opentext/internal/config"
	"github.com/dshills/opentext/internal/engine/alloc"
	"github.com/dshills/opentext/internal/engine/sequence"
)

// StdinTarget names standard input in logs and errors.
const StdinTarget = "<stdin>"

// Application runs text operations under one configuration.
type Application struct {
	cfg     *config.Config
	logger  *Logger
	metrics *Metrics

	// Every buffer goes through counting so stats can report allocations.
	counting *alloc.Counting[byte]
	codec    Codec
}

// Options configures the application.
type Options struct {
	// Config holds the settings. Nil means built-in defaults.
	Config *config.Config

	// Logger overrides the logger built from the log.level setting.
	Logger *Logger

	// Metrics collects run statistics. Nil creates a private collector.
	Metrics *Metrics
}

// New creates an Application from opts.
func New(opts Options) (*Application, error) {
	app := &Application{
		cfg:     opts.Config,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	if app.cfg == nil {
		app.cfg = config.New(config.WithEnv(false))
	}
	if app.logger == nil {
		lc := DefaultLoggerConfig()
		lc.Level = ParseLogLevel(app.cfg.Log().Level)
		app.logger = NewLogger(lc)
	}
	if app.metrics == nil {
		app.metrics = NewMetrics()
	}

	inner, err := alloc.ByName(app.cfg.Engine().Allocator)
	if err != nil {
		return fmt.Errorf("engine.allocator: %w", err)
	}
	app.counting = alloc.NewCounting(inner)

	codec, err := CodecFor(app.cfg.Input().Encoding)
	if err != nil {
		return fmt.Errorf("input.encoding: %w", err)
	}
	app.codec = codec

	app.logger.WithComponent("app").Debug("allocator=%s encoding=%s",
		app.cfg.Engine().Allocator, codec.Name())
	return nil
}

// Config returns the application settings.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the run metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Allocator returns the allocator every text of this application uses.
func (app *Application) Allocator() alloc.Allocator[byte] {
	return app.counting
}

// AllocStats returns the allocator activity since the application started.
func (app *Application) AllocStats() alloc.Stats {
	return app.counting.Stats()
}

// Codec returns the configured input codec.
func (app *Application) Codec() Codec {
	return app.codec
}

// Run decodes r, applies op and writes the encoded result to w. target names
// the input in logs and errors.
func (app *Application) Run(ctx context.Context, op Op, target string, r io.Reader, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := StartTimer()
	log := app.logger.WithFields(map[string]any{"op": op.Name(), "input": target})

	in := &countingReader{r: r}
	out := &countingWriter{w: w}
	err := app.run(op, in, out)

	app.metrics.RecordRun(timer.Elapsed(), in.n, out.n, err)
	if err != nil {
		log.Error("failed: %v", err)
		return NewOperationError(op.Name(), target, err)
	}
	log.Debug("done in %v, %d bytes in, %d bytes out", timer.Elapsed(), in.n, out.n)
	return nil
}

func (app *Application) run(op Op, r io.Reader, w io.Writer) error {
	t, err := app.codec.Decode(r, sequence.WithAllocator(app.counting))
	if err != nil {
		return err
	}
	defer t.Release()

	enc := app.codec.Writer(w)
	if err := op.Apply(&t, enc); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// RunFile runs op over the file at path.
func (app *Application) RunFile(ctx context.Context, op Op, path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return NewOperationError(op.Name(), path, err)
	}
	defer f.Close()
	return app.Run(ctx, op, path, f, w)
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
