package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/oakwood-commons/cmdk/pkg/logger"
)

// Consistency selects how overlapping refreshes are reconciled.
type Consistency string

const (
	// LastWriteWins publishes every completed build, in completion order.
	LastWriteWins Consistency = "last-write-wins"
	// Sequenced discards a build that started before the published one.
	Sequenced Consistency = "sequenced"
)

// ParseConsistency accepts the config spelling of a Consistency. Empty
// means LastWriteWins.
func ParseConsistency(s string) (Consistency, error) {
	switch Consistency(strings.ToLower(strings.TrimSpace(s))) {
	case "", LastWriteWins:
		return LastWriteWins, nil
	case Sequenced:
		return Sequenced, nil
	default:
		return "", fmt.Errorf("unknown registry consistency %q (want %s or %s)", s, LastWriteWins, Sequenced)
	}
}

// Builder produces snapshots. *Aggregator implements it.
type Builder interface {
	Build(ctx context.Context) Snapshot
}

// Store holds the published snapshot. Publishing swaps the whole snapshot
// under a lock, so readers never observe a partial list.
type Store struct {
	mu      sync.Mutex
	mode    Consistency
	next    uint64
	current Snapshot
}

// NewStore returns a Store publishing initial until the first refresh lands.
func NewStore(mode Consistency, initial Snapshot) *Store {
	return &Store{mode: mode, current: initial}
}

// Mode returns the store's consistency mode.
func (s *Store) Mode() Consistency {
	return s.mode
}

// Begin issues the token for a refresh that is about to start.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Publish replaces the current snapshot and reports whether it did. In
// Sequenced mode a snapshot whose token is older than the current one is
// dropped.
func (s *Store) Publish(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == Sequenced && snap.Seq < s.current.Seq {
		return false
	}
	s.current = snap
	return true
}

// Current returns the published snapshot.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Refresh builds a new snapshot and publishes it. A panic during the build
// is logged and leaves the current snapshot in place. The returned snapshot
// is the one current after the call.
func (s *Store) Refresh(ctx context.Context, b Builder) (snap Snapshot, published bool) {
	log := logger.FromContext(ctx).WithName("registry")
	token := s.Begin()

	defer func() {
		if r := recover(); r != nil {
			log.Error(fmt.Errorf("panic: %v", r), "registry refresh aborted", "seq", token)
			snap, published = s.Current(), false
		}
	}()

	snap = b.Build(ctx)
	snap.Seq = token
	if !s.Publish(snap) {
		log.V(1).Info("stale registry snapshot discarded", "seq", token)
		return s.Current(), false
	}
	log.V(1).Info("registry snapshot published", "seq", token, "commands", len(snap.Commands))
	return snap, true
}
