package registry

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

// Source names used in FetchFailure and log entries.
const (
	SourceProjects  = "projects"
	SourcePipelines = "pipelines"
	SourceJobs      = "jobs"
)

// FetchFailure records that one provider could not deliver its records.
type FetchFailure struct {
	Source string
	Cause  error
}

func (f *FetchFailure) Error() string {
	return fmt.Sprintf("fetch %s: %v", f.Source, f.Cause)
}

func (f *FetchFailure) Unwrap() error {
	return f.Cause
}

// Result carries the outcome of a single provider call.
type Result[T any] struct {
	Items []T
	Err   error
}

// OK wraps a successful fetch.
func OK[T any](items []T) Result[T] {
	return Result[T]{Items: items}
}

// Fail wraps a failed fetch of source.
func Fail[T any](source string, cause error) Result[T] {
	return Result[T]{Err: &FetchFailure{Source: source, Cause: cause}}
}

// OrEmpty returns the fetched items, or an empty slice after logging the
// failure. It is the only place a fetch failure is turned into "no records".
func (r Result[T]) OrEmpty(log logr.Logger) []T {
	if r.Err != nil {
		log.Error(r.Err, "command source unavailable, continuing without it")
		return []T{}
	}
	if r.Items == nil {
		return []T{}
	}
	return r.Items
}

// Source provides the dynamic records the registry is built from.
type Source interface {
	Projects(ctx context.Context) Result[Project]
	Pipelines(ctx context.Context) Result[Pipeline]
	Jobs(ctx context.Context) Result[Job]
}
