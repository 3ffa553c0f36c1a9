package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/observ"
	"pycheck/internal/project"
	"pycheck/internal/sema"
	"pycheck/internal/source"
	"pycheck/internal/symbols"
	"pycheck/internal/trace"
)

// Options configure a multi-unit run.
type Options struct {
	Settings project.Settings
	Jobs     int // <= 0 means GOMAXPROCS
	BaseDir  string
	Timer    *observ.Timer
	Progress ProgressSink
}

// UnitResult is the outcome for one unit. Bag holds the load failure or the
// checker's diagnostics, rebased onto the run's FileSet.
type UnitResult struct {
	Path   string // snapshot path, or a label for in-memory units
	FileID source.FileID
	Bag    *diag.Bag
	Sema   *sema.Result // nil when the unit failed to load
	Bound  bool         // the table came from the reference binder

	Tree    *ast.Builder
	File    ast.FileID
	Symbols *symbols.Table
}

// Result holds every unit in input order.
type Result struct {
	FileSet *source.FileSet
	Units   []UnitResult
}

// Diagnostics concatenates unit diagnostics in input order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	if r == nil {
		return nil
	}
	var out []diag.Diagnostic
	for _, u := range r.Units {
		if u.Bag != nil {
			out = append(out, u.Bag.Items()...)
		}
	}
	return out
}

func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, u := range r.Units {
		if u.Bag != nil && u.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Merged folds every unit bag into one. With byPosition the result is ordered
// by file and span instead of input and traversal order.
func (r *Result) Merged(byPosition bool) *diag.Bag {
	out := diag.NewBag(0)
	if r == nil {
		return out
	}
	for _, u := range r.Units {
		out.Merge(u.Bag)
	}
	if byPosition {
		out.Sort()
	}
	return out
}

// Dropped sums diagnostics cut by max-diagnostics.
func (r *Result) Dropped() int {
	n := 0
	if r == nil {
		return n
	}
	for _, u := range r.Units {
		if u.Bag != nil {
			n += u.Bag.Dropped()
		}
	}
	return n
}

type loadedUnit struct {
	path string
	snap *Snapshot
	err  error
}

// CheckFiles decodes every snapshot and checks them concurrently. A unit that
// fails to load gets an IO diagnostic; the run itself only fails on invalid
// settings or cancellation.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", trace.ParentSpan(ctx))
	units := make([]loadedUnit, len(paths))
	for i, path := range paths {
		units[i].path = path
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(paths)))
	for i := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u := &units[i]
			emit(opts.Progress, Event{File: u.path, Stage: StageLoad, Status: StatusWorking})
			idx := opts.Timer.Begin("load " + u.path)
			u.snap, u.err = ReadSnapshotFile(u.path)
			opts.Timer.End(idx, "")
			return nil
		})
	}
	err := g.Wait()
	loadSpan.WithExtra("units", strconv.Itoa(len(units))).End("")
	if err != nil {
		return nil, err
	}
	return checkLoaded(ctx, units, opts)
}

// CheckSnapshots checks in-memory units; label names them in results and
// progress events.
func CheckSnapshots(ctx context.Context, snaps []*Snapshot, opts Options) (*Result, error) {
	units := make([]loadedUnit, len(snaps))
	for i, snap := range snaps {
		units[i] = loadedUnit{path: snapshotLabel(snap, i), snap: snap}
		if snap == nil || snap.Tree == nil {
			units[i].err = errors.New("decode snapshot: missing tree")
			units[i].snap = nil
		}
	}
	return checkLoaded(ctx, units, opts)
}

func snapshotLabel(snap *Snapshot, i int) string {
	if snap != nil && snap.Path != "" {
		return snap.Path
	}
	return fmt.Sprintf("<unit %d>", i)
}

func checkLoaded(ctx context.Context, units []loadedUnit, opts Options) (*Result, error) {
	policy, err := opts.Settings.Policy()
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentSpan(ctx))

	// FileSet is not goroutine-safe; register sources before fanning out.
	res := &Result{
		FileSet: source.NewFileSetWithBase(opts.BaseDir),
		Units:   make([]UnitResult, len(units)),
	}
	for i, u := range units {
		display := u.path
		var content []byte
		if u.snap != nil {
			content = u.snap.Source
			if u.snap.Path != "" {
				display = u.snap.Path
			}
		}
		res.Units[i] = UnitResult{
			Path:   u.path,
			FileID: res.FileSet.AddVirtual(display, content),
		}
	}

	run := unitRunner{
		opts:   opts,
		policy: policy,
		tracer: tracer,
		parent: root.ID(),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(units)))
	for i := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			run.check(&res.Units[i], units[i])
			return nil
		})
	}
	err = g.Wait()
	root.WithExtra("units", strconv.Itoa(len(units))).
		WithExtra("diagnostics", strconv.Itoa(len(res.Diagnostics()))).
		End("")
	emit(opts.Progress, Event{Stage: StageCheck, Status: StatusDone})
	return res, err
}

type unitRunner struct {
	opts   Options
	policy diag.Policy
	tracer trace.Tracer
	parent uint64
}

func (r unitRunner) check(out *UnitResult, u loadedUnit) {
	started := time.Now()
	span := trace.Begin(r.tracer, trace.ScopeModule, "unit:"+u.path, r.parent)
	limit := r.opts.Settings.MaxDiagnostics

	if u.err != nil || u.snap == nil {
		if u.err == nil {
			u.err = errors.New("decode snapshot: missing tree")
		}
		out.Bag = diag.NewBag(limit)
		out.Bag.Add(diag.NewError(loadErrorCode(u.err), source.Span{File: out.FileID},
			"failed to load snapshot: "+u.err.Error()))
		span.End("load error")
		emit(r.opts.Progress, Event{File: u.path, Stage: StageLoad, Status: StatusError, Err: u.err, Elapsed: time.Since(started)})
		return
	}

	table := u.snap.Symbols
	if table == nil {
		emit(r.opts.Progress, Event{File: u.path, Stage: StageBind, Status: StatusWorking})
		idx := r.opts.Timer.Begin("bind " + u.path)
		table = symbols.ResolveFile(u.snap.Tree, u.snap.File, symbols.ResolveOptions{}).Table
		r.opts.Timer.End(idx, "")
		out.Bound = true
	}

	emit(r.opts.Progress, Event{File: u.path, Stage: StageCheck, Status: StatusWorking})
	idx := r.opts.Timer.Begin("check " + u.path)
	semaRes := sema.Check(u.snap.Tree, u.snap.File, sema.Options{
		Symbols:        table,
		Rules:          r.opts.Settings.Rules(),
		Policy:         r.policy,
		MaxDiagnostics: limit,
		Tracer:         r.tracer,
	})
	semaRes.Bag.Rebase(out.FileID)
	n := semaRes.Bag.Len()
	r.opts.Timer.End(idx, fmt.Sprintf("%d diagnostics", n))

	out.Sema = &semaRes
	out.Tree, out.File, out.Symbols = u.snap.Tree, u.snap.File, table
	out.Bag = semaRes.Bag
	span.WithExtra("diagnostics", strconv.Itoa(n)).
		WithExtra("exprs", strconv.Itoa(len(semaRes.ExprTypes))).
		End("")
	emit(r.opts.Progress, Event{File: u.path, Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(started), Diagnostics: n})
}

func loadErrorCode(err error) diag.Code {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return diag.IOLoadFileError
	}
	return diag.IODecodeError
}

func jobLimit(jobs, units int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, units))
}
