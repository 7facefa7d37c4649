// Package statemachine provides a monotonic transition guard shared by the
// payment and certificate lifecycles.
package statemachine

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is matched by every *TransitionError.
var ErrInvalidTransition = errors.New("invalid state transition")

// TransitionError describes a rejected transition.
type TransitionError struct {
	From     string
	To       string
	Terminal bool // From has no outgoing edges
}

func (e *TransitionError) Error() string {
	if e.Terminal {
		return fmt.Sprintf("invalid state transition: %s is terminal (attempted %s)", e.From, e.To)
	}
	return fmt.Sprintf("invalid state transition: %s -> %s", e.From, e.To)
}

// Is reports ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Machine is an immutable edge table. States with no outgoing edges are terminal.
type Machine[S ~string] struct {
	initial S
	edges   map[S]map[S]struct{}
}

// New builds a machine from an adjacency list. Every state that appears only as a
// target becomes terminal.
func New[S ~string](initial S, edges map[S][]S) *Machine[S] {
	m := &Machine[S]{
		initial: initial,
		edges:   make(map[S]map[S]struct{}, len(edges)),
	}
	for from, targets := range edges {
		set := make(map[S]struct{}, len(targets))
		for _, to := range targets {
			set[to] = struct{}{}
		}
		m.edges[from] = set
	}
	return m
}

// Initial returns the only valid initial state.
func (m *Machine[S]) Initial() S {
	return m.initial
}

// IsTerminal reports whether no transition leaves s.
func (m *Machine[S]) IsTerminal(s S) bool {
	return len(m.edges[s]) == 0
}

// CanTransition reports whether from -> to is an edge.
func (m *Machine[S]) CanTransition(from, to S) bool {
	_, ok := m.edges[from][to]
	return ok
}

// Transition validates from -> to. Self-loops, backward moves and any move out of a
// terminal state are rejected.
func (m *Machine[S]) Transition(from, to S) error {
	if m.CanTransition(from, to) {
		return nil
	}
	return &TransitionError{
		From:     string(from),
		To:       string(to),
		Terminal: m.IsTerminal(from),
	}
}

// Sources returns every state that can move to target.
func (m *Machine[S]) Sources(target S) []S {
	var out []S
	for from, targets := range m.edges {
		if _, ok := targets[target]; ok {
			out = append(out, from)
		}
	}
	return out
}
