// Package fsm tracks the sync status of the local catalog with a finite
// state machine built on github.com/looplab/fsm.
package fsm

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fwojciec/catalogo"
	"github.com/looplab/fsm"
)

// Compile-time interface verification.
var _ catalogo.StatusTracker = (*StatusMachine)(nil)

// detected lists the statuses from which the store may be inspected again.
var detected = []string{
	string(catalogo.StatusChecking),
	string(catalogo.StatusEmpty),
	string(catalogo.StatusReady),
	string(catalogo.StatusError),
}

// transitions is the catalog lifecycle. Syncing can only be left through
// completed or failed.
var transitions = fsm.Events{
	{Name: string(catalogo.EventFoundEmpty), Src: detected, Dst: string(catalogo.StatusEmpty)},
	{Name: string(catalogo.EventFoundReady), Src: detected, Dst: string(catalogo.StatusReady)},
	{Name: string(catalogo.EventFoundBroken), Src: detected, Dst: string(catalogo.StatusError)},
	{Name: string(catalogo.EventStartSync), Src: []string{string(catalogo.StatusEmpty)}, Dst: string(catalogo.StatusSyncing)},
	{Name: string(catalogo.EventCompleted), Src: []string{string(catalogo.StatusSyncing)}, Dst: string(catalogo.StatusReady)},
	{Name: string(catalogo.EventFailed), Src: []string{string(catalogo.StatusSyncing)}, Dst: string(catalogo.StatusError)},
	{Name: string(catalogo.EventReset), Src: detected, Dst: string(catalogo.StatusEmpty)},
}

// StatusMachine implements catalogo.StatusTracker. It starts in
// StatusChecking.
type StatusMachine struct {
	mu  sync.Mutex
	fsm *fsm.FSM
}

// NewStatusMachine returns a machine in StatusChecking. Transitions are
// logged at debug level when logger is not nil.
func NewStatusMachine(logger *slog.Logger) *StatusMachine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StatusMachine{
		fsm: fsm.NewFSM(
			string(catalogo.StatusChecking),
			transitions,
			fsm.Callbacks{
				"enter_state": func(_ context.Context, e *fsm.Event) {
					logger.Debug("catalog status changed", "event", e.Event, "from", e.Src, "to", e.Dst)
				},
			},
		),
	}
}

// Status returns the current status.
func (m *StatusMachine) Status() catalogo.SyncStatus {
	return catalogo.SyncStatus(m.fsm.Current())
}

// Fire applies an event. Re-entering the current status is not an error.
func (m *StatusMachine) Fire(ctx context.Context, event catalogo.StatusEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.fsm.Event(ctx, string(event))
	var noTransition fsm.NoTransitionError
	if err == nil || errors.As(err, &noTransition) {
		return nil
	}

	var invalid fsm.InvalidEventError
	var unknown fsm.UnknownEventError
	switch {
	case errors.As(err, &invalid):
		return catalogo.Errorf(catalogo.ECONFLICT, "cannot %s while %s", event, m.fsm.Current())
	case errors.As(err, &unknown):
		return catalogo.Errorf(catalogo.EINVALID, "unknown status event %q", event)
	}
	return err
}
