package pipeline

import (
	"context"
	"fmt"
	"time"
)

// Apply commits a node's computed writes to the shared state. Keeping the
// writes out of NodeFunc lets the runner discard the results of a node's
// same-wave siblings once an earlier node has failed, so the parallel and
// sequential strategies converge on the same final state.
type Apply func(s *State)

// NodeFunc computes one step of the pipeline against a read-only view of the
// state and returns the writes to commit. An error halts the pipeline at
// this node; downstream nodes become pass-throughs. A nil Apply means the
// node writes nothing.
type NodeFunc func(ctx context.Context, s *State) (Apply, error)

// Node is one step of the pipeline DAG. Deps name the nodes that must
// complete first. A positive Timeout bounds the node's external calls.
type Node struct {
	Name    string
	Deps    []string
	Timeout time.Duration
	Run     NodeFunc
}

// NodeError wraps a node failure with the phase it occurred in.
type NodeError struct {
	Phase string
	Err   error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("phase %s: %v", e.Phase, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
