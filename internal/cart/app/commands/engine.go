package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/dejobratic/tomoca/internal/cart/domain"
	"github.com/dejobratic/tomoca/internal/cart/ports"
)

// CommandHandler applies one cart command and returns the resulting state.
type CommandHandler interface {
	Handle(ctx context.Context, cmd domain.Command) (domain.State, error)
}

// Engine is the single owner of the cart state. Commands run one at a time: the
// transition and its persistence write finish before the next command starts.
type Engine struct {
	mu    sync.Mutex
	state domain.State
	repo  ports.CartRepository
}

// NewEngine creates an engine holding an empty, closed cart.
func NewEngine(repo ports.CartRepository) *Engine {
	return &Engine{repo: repo}
}

// Handle reduces cmd into the state and saves the items when cmd affects them. A failed
// save keeps the new in-memory state and is reported to the caller.
func (e *Engine) Handle(ctx context.Context, cmd domain.Command) (domain.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = domain.Reduce(e.state, cmd)
	snapshot := e.state.Clone()

	if !cmd.AffectsItems() {
		return snapshot, nil
	}

	if err := e.repo.Save(ctx, snapshot.Items); err != nil {
		return snapshot, fmt.Errorf("persist cart after %s: %w", cmd.Name(), err)
	}

	return snapshot, nil
}

// State returns a copy of the current cart.
func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}
