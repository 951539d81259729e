// Package pipeline drives the page-to-text extraction flow: open a document,
// rasterize each page, recognize its text, aggregate the results in page
// order, and persist one transcript artifact.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"folio/document"
	"folio/ocr"
	"folio/store"
	"folio/textlayer"
	"folio/transcript"
)

// Options are the pipeline-wide knobs. Scale applies to every page of a run.
type Options struct {
	Scale            float64
	Languages        []string
	Workers          int
	PreferNativeText bool
}

// Pipeline wires the extraction stages together. Data flows strictly forward;
// only the transcript accumulates state across pages.
type Pipeline struct {
	loader    document.Loader
	engine    ocr.Engine
	native    *textlayer.Client
	persister *transcript.Persister
	runs      *store.Runs
	opts      Options
	logger    *zap.Logger
}

// New creates a pipeline. native and runs may be nil; the text-layer probe
// and the run journal are then disabled.
func New(loader document.Loader, engine ocr.Engine, native *textlayer.Client,
	persister *transcript.Persister, runs *store.Runs, opts Options, logger *zap.Logger) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		loader:    loader,
		engine:    engine,
		native:    native,
		persister: persister,
		runs:      runs,
		opts:      opts,
		logger:    logger,
	}
}

// Summary describes a completed run.
type Summary struct {
	RunID    string        `json:"run_id"`
	Source   string        `json:"source"`
	Artifact string        `json:"artifact"`
	Pages    int           `json:"pages"`
	Empty    int           `json:"empty_pages"`
	Duration time.Duration `json:"duration_ns"`
}

type pageResult struct {
	label string
	text  string
}

// Extract opens the source and produces the aggregated transcript without
// persisting it. Page-level failures degrade to empty text; only an
// unreadable document aborts the run.
func (p *Pipeline) Extract(ctx context.Context, source string) (*transcript.Transcript, error) {
	doc, err := p.loader.Open(source)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	n := doc.NumPages()
	p.logger.Info("Document opened",
		zap.String("file", source),
		zap.Int("pages", n))

	var native []string
	if p.opts.PreferNativeText && p.native != nil {
		native, err = p.native.PageTexts(source)
		if err != nil {
			p.logger.Warn("Text layer probe failed, falling back to OCR",
				zap.String("file", source),
				zap.Error(err))
			native = nil
		}
	}

	results := make([]pageResult, n)
	if p.opts.Workers > 1 && n > 1 {
		err = p.processParallel(ctx, doc, source, native, results)
	} else {
		err = p.processSequential(ctx, doc, source, native, results)
	}
	if err != nil {
		return nil, err
	}

	// Aggregation is ordered by page index regardless of how pages were
	// processed, so transcript order is deterministic.
	tr := transcript.New()
	for _, r := range results {
		tr.Add(r.label, r.text)
	}
	return tr, nil
}

func (p *Pipeline) processSequential(ctx context.Context, doc document.Document,
	source string, native []string, results []pageResult) error {
	for i := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = p.processPage(ctx, doc, source, native, i)
	}
	return nil
}

func (p *Pipeline) processParallel(ctx context.Context, doc document.Document,
	source string, native []string, results []pageResult) error {
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := p.opts.Workers
	if workers > len(results) {
		workers = len(results)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.processPage(ctx, doc, source, native, i)
			}
		}()
	}

	for i := range results {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return ctx.Err()
}

// processPage produces one (label, text) pair. Every failure past this point
// is local: the page is recorded with empty text and the run continues.
func (p *Pipeline) processPage(ctx context.Context, doc document.Document,
	source string, native []string, i int) pageResult {
	label := document.FallbackLabel(i)

	page, err := doc.Page(i)
	if err != nil {
		p.logger.Warn("Failed to read page",
			zap.String("file", source),
			zap.Int("page", i+1),
			zap.Error(err))
		return pageResult{label: label}
	}
	if page.Label != "" {
		label = page.Label
	}

	if i < len(native) {
		if text := strings.TrimSpace(native[i]); text != "" {
			p.logger.Debug("Using embedded text layer",
				zap.String("file", source),
				zap.Int("page", i+1))
			return pageResult{label: label, text: text}
		}
	}

	bitmap, err := doc.Rasterize(i, p.opts.Scale)
	if err != nil {
		p.logger.Warn("Failed to rasterize page",
			zap.String("file", source),
			zap.Int("page", i+1),
			zap.Error(err))
		return pageResult{label: label}
	}

	res, err := p.engine.Recognize(ctx, ocr.Input{
		Image:     bitmap.PNG,
		DPI:       bitmap.DPI,
		Languages: p.opts.Languages,
	})
	if err != nil {
		// Equivalent to zero detections; never escalated.
		p.logger.Warn("Recognition failed, recording empty text",
			zap.String("file", source),
			zap.Int("page", i+1),
			zap.String("engine", p.engine.Name()),
			zap.Error(err))
		return pageResult{label: label}
	}

	return pageResult{label: label, text: res.Text()}
}

// Run extracts the transcript, persists it, and journals the run. Persistence
// failure is surfaced; the journal is best-effort plumbing.
func (p *Pipeline) Run(ctx context.Context, source string) (Summary, error) {
	started := time.Now()
	runID := uuid.NewString()

	tr, err := p.Extract(ctx, source)
	if err != nil {
		return Summary{}, err
	}

	artifact, err := p.persister.Write(tr, sourceStem(source))
	if err != nil {
		return Summary{}, err
	}

	empty := 0
	for _, e := range tr.Entries() {
		if e.Text == "" {
			empty++
		}
	}

	sum := Summary{
		RunID:    runID,
		Source:   source,
		Artifact: artifact,
		Pages:    tr.Len(),
		Empty:    empty,
		Duration: time.Since(started),
	}

	if p.runs != nil {
		rec := store.RunRecord{
			ID:         runID,
			Source:     source,
			Artifact:   artifact,
			Pages:      sum.Pages,
			EmptyPages: sum.Empty,
			StartedAt:  started,
			FinishedAt: time.Now(),
		}
		if err := p.runs.Put(rec); err != nil {
			p.logger.Warn("Failed to journal run",
				zap.String("run_id", runID),
				zap.Error(err))
		}
	}

	p.logger.Info("Run complete",
		zap.String("run_id", runID),
		zap.String("file", source),
		zap.String("artifact", artifact),
		zap.Int("pages", sum.Pages),
		zap.Int("empty_pages", sum.Empty),
		zap.Duration("duration", sum.Duration))
	return sum, nil
}

func sourceStem(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
