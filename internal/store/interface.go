// Package store persists match snapshots and fans committed snapshots out to subscribers.
package store

import (
	"context"
	"errors"

	"github.com/mauv0809/crease/internal/scoring"
)

var (
	// ErrPersistence is the kind of every storage failure.
	ErrPersistence = errors.New("persistence failure")
	// ErrNotFound is returned when no match has the requested id.
	ErrNotFound = errors.New("match not found")
	// ErrVersionConflict is returned when a snapshot was committed concurrently.
	ErrVersionConflict = errors.New("match was modified concurrently")
	// ErrExists is returned when creating a match whose id is taken.
	ErrExists = errors.New("match already exists")
)

// Update is a committed snapshot together with the events that produced it.
type Update struct {
	State  *scoring.State
	Events []scoring.Event
}

// Gateway is the durable home of match snapshots.
type Gateway interface {
	// Create stores a new match at its current version.
	Create(ctx context.Context, s *scoring.State) error
	// Put commits s if the stored version is s.Version-1, then broadcasts it.
	Put(ctx context.Context, s *scoring.State, events []scoring.Event) error
	Get(ctx context.Context, matchID string) (*scoring.State, error)
	// List returns the matches of a tournament ordered by schedule. An empty id lists all matches.
	List(ctx context.Context, tournamentID string) ([]*scoring.State, error)
	// Subscribe delivers every update committed for matchID until ctx is done or cancel is called.
	Subscribe(ctx context.Context, matchID string) (updates <-chan Update, cancel func())
}
