// Package registry builds the palette's root command list from the static
// page commands and the orchestrator's projects, pipelines and jobs.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/oakwood-commons/cmdk/internal/command"
	"github.com/oakwood-commons/cmdk/internal/limiter"
	"github.com/oakwood-commons/cmdk/internal/where"
	"github.com/oakwood-commons/cmdk/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Snapshot is one complete build of the root command list.
type Snapshot struct {
	Seq      uint64
	Commands []command.Command
	BuiltAt  time.Time
}

// SourceFilter narrows the records of one source before labels are built.
type SourceFilter struct {
	Where *where.Predicate
	Limit limiter.Config
}

// Filters holds one SourceFilter per dynamic source.
type Filters struct {
	Projects  SourceFilter
	Pipelines SourceFilter
	Jobs      SourceFilter
}

// Aggregator assembles snapshots. It is safe for concurrent use.
type Aggregator struct {
	source  Source
	pages   []command.Command
	filters Filters
	now     func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFilters narrows each source's records.
func WithFilters(f Filters) Option {
	return func(a *Aggregator) { a.filters = f }
}

// WithClock overrides the time stamped on snapshots.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator returns an Aggregator reading from source. pages are
// placed first in every snapshot, in the given order.
func NewAggregator(source Source, pages []command.Command, opts ...Option) *Aggregator {
	a := &Aggregator{
		source: source,
		pages:  pages,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Seed returns a snapshot holding only the page commands. It is shown until
// the first build completes.
func (a *Aggregator) Seed() Snapshot {
	return Snapshot{Commands: append([]command.Command(nil), a.pages...), BuiltAt: a.now()}
}

// Build fetches all sources concurrently and returns the page, project,
// pipeline and job commands in that order. A failing source contributes no
// commands; Build itself never fails.
func (a *Aggregator) Build(ctx context.Context) Snapshot {
	log := logger.FromContext(ctx).WithName("registry")

	var (
		projects  Result[Project]
		pipelines Result[Pipeline]
		jobs      Result[Job]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects = fetch(gctx, SourceProjects, a.source.Projects)
		return nil
	})
	g.Go(func() error {
		pipelines = fetch(gctx, SourcePipelines, a.source.Pipelines)
		return nil
	})
	g.Go(func() error {
		jobs = fetch(gctx, SourceJobs, a.source.Jobs)
		return nil
	})
	_ = g.Wait()

	allProjects := projects.OrEmpty(log)
	// Labels resolve against every fetched project, including ones the
	// project filter hides.
	paths := PathsOf(allProjects)

	cmds := make([]command.Command, 0, len(a.pages)+len(allProjects))
	cmds = append(cmds, a.pages...)
	for _, p := range narrow(log, SourceProjects, allProjects, a.filters.Projects) {
		cmds = append(cmds, ProjectCommand(p))
	}
	for _, p := range narrow(log, SourcePipelines, pipelines.OrEmpty(log), a.filters.Pipelines) {
		cmds = append(cmds, PipelineCommand(paths, p))
	}
	for _, j := range narrow(log, SourceJobs, jobs.OrEmpty(log), a.filters.Jobs) {
		cmds = append(cmds, JobCommand(paths, j))
	}

	log.V(1).Info("registry built",
		"commands", len(cmds),
		SourceProjects, len(allProjects),
		SourcePipelines, len(pipelines.Items),
		SourceJobs, len(jobs.Items),
	)
	return Snapshot{Commands: cmds, BuiltAt: a.now()}
}

// fetch calls one source, turning a panic into a FetchFailure.
func fetch[T any](ctx context.Context, name string, call func(context.Context) Result[T]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Fail[T](name, fmt.Errorf("panic: %v", r))
		}
	}()
	res = call(ctx)
	if res.Err != nil {
		var failure *FetchFailure
		if !errors.As(res.Err, &failure) {
			res.Err = &FetchFailure{Source: name, Cause: res.Err}
		}
	}
	return res
}

type fielder interface {
	Fields() map[string]any
}

// narrow applies the where predicate, then the limiter. Records whose
// predicate fails to evaluate are dropped.
func narrow[T fielder](log logr.Logger, name string, items []T, f SourceFilter) []T {
	if f.Where != nil {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			ok, err := f.Where.Match(item.Fields())
			if err != nil {
				log.Error(err, "where predicate failed, record skipped", logger.SourceKey, name, "expr", f.Where.Expr())
				continue
			}
			if ok {
				kept = append(kept, item)
			}
		}
		items = kept
	}
	return limiter.Apply(f.Limit, items)
}
