// Package export orchestrates the generation of table artifacts:
// it validates preconditions, guarantees single-flight execution per
// pipeline, drives the loading and progress state, retains the most
// recent artifact per export target and persists artifacts to files.
package export

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ungerik/go-fs"

	"github.com/domonda/go-pictable"
	"github.com/domonda/go-pictable/fontmetrics"
	"github.com/domonda/go-pictable/pdftable"
	"github.com/domonda/go-pictable/pngtable"
)

// ErrClosed indicates an operation on a closed pipeline.
var ErrClosed = errors.New("pipeline closed")

type renderResult struct {
	artifact pictable.Artifact
	err      error
}

type renderJob struct {
	render func() (pictable.Artifact, error)
	result chan renderResult
}

// progressGate forwards progress reports to fn until stopped.
// After stop returned, no further report reaches fn, so an abandoned
// render job can no longer move the pipeline's progress state.
type progressGate struct {
	mu      sync.Mutex
	stopped bool
	fn      pictable.ProgressFunc
}

func (g *progressGate) report(progress float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.stopped {
		g.fn(progress)
	}
}

func (g *progressGate) stop() {
	g.mu.Lock()
	g.stopped = true
	g.mu.Unlock()
}

// Pipeline owns one parsed Table and turns it into rendered artifacts.
//
// All rendering runs on a single worker goroutine private to the pipeline,
// so the calling goroutine is never the one drawing; it suspends until the
// render finished or failed. A second Generate call while one is running
// fails fast with pictable.ErrGenerationInProgress instead of queuing.
//
// The Table, the generation state and the retained artifacts are owned
// exclusively by the pipeline and only reachable through its methods.
type Pipeline struct {
	state *State

	mu             sync.Mutex
	measurer       pictable.Measurer
	assigner       *pictable.StyleAssigner
	table          *pictable.Table
	styles         []pictable.Style
	renderers      map[pictable.ExportTarget]pictable.Renderer
	target         pictable.ExportTarget
	fontSize       float64
	maxRowsPerUnit int
	artifacts      map[pictable.ExportTarget]pictable.Artifact
	closed         bool

	jobs chan renderJob
	done chan struct{}
}

// NewPipeline returns a Pipeline for the passed table with default
// renderers for both export targets, the embedded Go Regular font for
// measurement and raster text, and styles assigned to all columns.
func NewPipeline(table *pictable.Table) (*Pipeline, error) {
	fonts, err := fontmetrics.GoRegular()
	if err != nil {
		return nil, err
	}
	assigner := pictable.NewStyleAssigner()

	p := &Pipeline{
		state:    NewState(),
		measurer: fonts,
		assigner: assigner,
		table:    table,
		styles:   assigner.Assign(table.NumColumns()),
		renderers: map[pictable.ExportTarget]pictable.Renderer{
			pictable.RasterImage:       pngtable.NewRenderer(fonts),
			pictable.PaginatedDocument: pdftable.NewRenderer(),
		},
		target:    pictable.RasterImage,
		fontSize:  pictable.DefaultFontSize,
		artifacts: make(map[pictable.ExportTarget]pictable.Artifact),
		jobs:      make(chan renderJob, 1),
		done:      make(chan struct{}),
	}
	go renderWorker(p.jobs, p.done)
	return p, nil
}

// NewPipelineFromText tokenizes rawText with BuildTable
// and returns a Pipeline for the resulting table.
func NewPipelineFromText(rawText, separator string, maxFieldLength int) (*Pipeline, error) {
	return NewPipeline(pictable.BuildTable(rawText, separator, maxFieldLength))
}

// renderWorker runs render jobs until the pipeline is closed.
// It deliberately holds no reference to the Pipeline: every job carries
// the data it needs, so a dropped pipeline does not keep render state
// alive beyond the job in flight.
func renderWorker(jobs <-chan renderJob, done <-chan struct{}) {
	for {
		select {
		case job := <-jobs:
			artifact, err := job.render()
			job.result <- renderResult{artifact: artifact, err: err}
			close(job.result)
		case <-done:
			return
		}
	}
}

// WithExportTarget sets the current export target used by Write
// when no Generate call happened yet.
func (p *Pipeline) WithExportTarget(target pictable.ExportTarget) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.target = target
	return p
}

// WithFontSize sets the default font size used when Generate
// is called without a font size override.
func (p *Pipeline) WithFontSize(fontSize float64) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	if fontSize > 0 {
		p.fontSize = fontSize
	}
	return p
}

// WithMaxRowsPerUnit limits how many data rows one page or image strip
// may hold. Zero or negative means no limit.
func (p *Pipeline) WithMaxRowsPerUnit(maxRows int) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxRowsPerUnit = maxRows
	return p
}

// WithRenderer replaces the renderer for the renderer's own target.
func (p *Pipeline) WithRenderer(renderer pictable.Renderer) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderers[renderer.Target()] = renderer
	return p
}

// WithMeasurer replaces the font-metrics collaborator of the layout engine.
func (p *Pipeline) WithMeasurer(measurer pictable.Measurer) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurer = measurer
	return p
}

// WithStyleAssigner replaces the style assigner and reassigns
// the styles of all current columns.
func (p *Pipeline) WithStyleAssigner(assigner *pictable.StyleAssigner) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assigner = assigner
	p.styles = assigner.Assign(p.table.NumColumns())
	return p
}

// Table returns the pipeline's table.
// The table must not be mutated while IsLoading reports true.
func (p *Pipeline) Table() *pictable.Table {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table
}

// Styles returns the styles assigned to the table's columns.
func (p *Pipeline) Styles() []pictable.Style {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.styles
}

// Target returns the current export target.
func (p *Pipeline) Target() pictable.ExportTarget {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// State returns the observable generation state of the pipeline.
func (p *Pipeline) State() *State { return p.state }

// IsLoading reports whether a generation is currently running.
func (p *Pipeline) IsLoading() bool { return p.state.IsLoading() }

// Progress returns the progress of the current or last generation in [0,1].
func (p *Pipeline) Progress() float64 { return p.state.Progress() }

// UpdateRows replaces all data rows of the table.
// It fails with pictable.ErrGenerationInProgress while a generation runs.
func (p *Pipeline) UpdateRows(rows []pictable.Row) error {
	if p.state.IsLoading() {
		return pictable.ErrGenerationInProgress
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table.ReplaceRows(rows)
	return nil
}

// UpdateColumns replaces all columns of the table and reassigns styles
// for the new column count.
// It fails with pictable.ErrGenerationInProgress while a generation runs.
func (p *Pipeline) UpdateColumns(columns []pictable.Column) error {
	if p.state.IsLoading() {
		return pictable.ErrGenerationInProgress
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table.ReplaceColumns(columns)
	p.styles = p.assigner.Assign(len(columns))
	return nil
}

// Generate renders the table for the passed export target and returns the
// artifact, retaining it as the most recent output for that target.
//
// A fontSize > 0 overrides the pipeline's default font size for this call.
//
// Generate fails fast with pictable.ErrGenerationInProgress while another
// generation runs, with pictable.ErrEmptyData for a table without columns
// or rows (the renderer is never invoked in that case), and with
// pictable.ErrUnsupportedExportTarget for a target without renderer.
// The loading state is reset on every exit path.
func (p *Pipeline) Generate(ctx context.Context, target pictable.ExportTarget, fontSize float64) (pictable.Artifact, error) {
	if !p.state.begin() {
		return nil, pictable.ErrGenerationInProgress
	}
	defer p.state.end()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	table := p.table
	styles := p.styles
	measurer := p.measurer
	renderer := p.renderers[target]
	maxRows := p.maxRowsPerUnit
	if fontSize <= 0 {
		fontSize = p.fontSize
	}
	if renderer != nil {
		p.target = target
	}
	p.mu.Unlock()

	if table.IsEmpty() {
		return nil, pictable.ErrEmptyData
	}
	if renderer == nil {
		return nil, fmt.Errorf("%w: %s", pictable.ErrUnsupportedExportTarget, target)
	}

	plan, err := pictable.NewLayouter(measurer).
		WithFontSize(fontSize).
		WithMaxRowsPerUnit(maxRows).
		Layout(table, styles)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", target, err)
	}

	gate := &progressGate{fn: p.state.setProgress}
	job := renderJob{
		render: func() (pictable.Artifact, error) {
			return renderer.Render(ctx, plan, gate.report)
		},
		result: make(chan renderResult, 1),
	}
	select {
	case p.jobs <- job:
	case <-p.done:
		return nil, ErrClosed
	}
	var result renderResult
	select {
	case result = <-job.result:
	case <-p.done:
		gate.stop()
		return nil, ErrClosed
	}
	if result.err != nil {
		return nil, fmt.Errorf("generating %s: %w", target, result.err)
	}

	p.mu.Lock()
	p.artifacts[target] = result.artifact
	p.mu.Unlock()

	return result.artifact, nil
}

// Write persists the most recent artifact of the current export target
// to the passed file, creating or overwriting it, and returns the
// serialized bytes that were written.
//
// If no artifact has been generated for the current target yet, Write
// returns nil bytes and pictable.ErrNothingToPersist.
func (p *Pipeline) Write(ctx context.Context, file fs.File) ([]byte, error) {
	p.mu.Lock()
	artifact := p.artifacts[p.target]
	p.mu.Unlock()

	if artifact == nil {
		return nil, pictable.ErrNothingToPersist
	}
	data, err := artifact.Encode()
	if err != nil {
		return nil, fmt.Errorf("persisting %s artifact: %w", artifact.Target(), err)
	}
	if err = file.WriteAllContext(ctx, data); err != nil {
		return nil, fmt.Errorf("persisting %s artifact to %q: %w", artifact.Target(), file, err)
	}
	return data, nil
}

// Artifact returns the most recent artifact generated for the target,
// or nil if none has been generated yet.
func (p *Pipeline) Artifact(target pictable.ExportTarget) pictable.Artifact {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.artifacts[target]
}

// Close stops the pipeline's render worker.
// Close is idempotent, further Generate calls fail with ErrClosed.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.done)
	}
	return nil
}
