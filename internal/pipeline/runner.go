package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrNoProgress means no node was ready but the pipeline was not complete,
// which indicates a dependency cycle or a missing node.
var ErrNoProgress = errors.New("pipeline cannot make progress")

// Runner executes a node DAG over a shared state. Nodes whose dependencies
// are all complete run concurrently; once any node fails, remaining nodes
// pass through unchanged. The parallel and sequential strategies produce
// identical final state for identical input.
type Runner struct {
	nodes  []Node
	logger *slog.Logger
}

func NewRunner(nodes []Node, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{nodes: nodes, logger: logger}
}

// Run executes the DAG with parallel waves of ready nodes.
func (r *Runner) Run(ctx context.Context, s *State) *State {
	done := make(map[string]bool, len(r.nodes))
	start := time.Now()

	r.logger.Info("pipeline started",
		slog.String("session_id", s.SessionID),
		slog.Int("nodes", len(r.nodes)))

	for len(done) < len(r.nodes) {
		ready := r.readyNodes(done)
		if len(ready) == 0 {
			r.fail(s, "orchestrator", ErrNoProgress)
			break
		}

		type outcome struct {
			node  Node
			apply Apply
			err   error
		}
		outcomes := make([]outcome, len(ready))

		var wg sync.WaitGroup
		for i, node := range ready {
			wg.Add(1)
			go func(i int, node Node) {
				defer wg.Done()
				apply, err := r.runNode(ctx, node, s)
				outcomes[i] = outcome{node: node, apply: apply, err: err}
			}(i, node)
		}
		wg.Wait()

		// Commit results in declaration order. Once a failure is recorded,
		// the writes of its same-wave siblings are discarded, matching the
		// sequential runner where those siblings never execute.
		for _, o := range outcomes {
			done[o.node.Name] = true
			if s.Failed() {
				continue
			}
			if o.err != nil {
				r.fail(s, o.node.Name, o.err)
				continue
			}
			if o.apply != nil {
				o.apply(s)
			}
		}
	}

	r.finish(s, start)
	return s
}

// RunSequential executes the DAG one node at a time in topological order.
// Degradation path with the same semantics as Run.
func (r *Runner) RunSequential(ctx context.Context, s *State) *State {
	done := make(map[string]bool, len(r.nodes))
	start := time.Now()

	r.logger.Info("pipeline started",
		slog.String("session_id", s.SessionID),
		slog.Int("nodes", len(r.nodes)))

	for len(done) < len(r.nodes) {
		ready := r.readyNodes(done)
		if len(ready) == 0 {
			r.fail(s, "orchestrator", ErrNoProgress)
			break
		}
		for _, node := range ready {
			apply, err := r.runNode(ctx, node, s)
			done[node.Name] = true
			if s.Failed() {
				continue
			}
			if err != nil {
				r.fail(s, node.Name, err)
				continue
			}
			if apply != nil {
				apply(s)
			}
		}
	}

	r.finish(s, start)
	return s
}

// runNode executes one node under its timeout. A failed pipeline turns the
// node into a pass-through.
func (r *Runner) runNode(ctx context.Context, node Node, s *State) (Apply, error) {
	if s.Failed() {
		return nil, nil
	}

	if node.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, node.Timeout)
		defer cancel()
	}

	start := time.Now()
	apply, err := node.Run(ctx, s)
	r.logger.Debug("node finished",
		slog.String("session_id", s.SessionID),
		slog.String("node", node.Name),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("failed", err != nil))
	return apply, err
}

func (r *Runner) readyNodes(done map[string]bool) []Node {
	var ready []Node
	for _, node := range r.nodes {
		if done[node.Name] {
			continue
		}
		satisfied := true
		for _, dep := range node.Deps {
			if !done[dep] {
				satisfied = false
				break
			}
		}
		if satisfied {
			ready = append(ready, node)
		}
	}
	return ready
}

// fail records the first error only; later failures in the same wave lose.
func (r *Runner) fail(s *State, phase string, err error) {
	if s.Failed() {
		return
	}
	s.Error = err.Error()
	s.ErrorPhase = phase
	r.logger.Error("pipeline node failed",
		slog.String("session_id", s.SessionID),
		slog.String("phase", phase),
		slog.String("error", err.Error()))
}

func (r *Runner) finish(s *State, start time.Time) {
	if s.Failed() {
		r.logger.Error("pipeline failed",
			slog.String("session_id", s.SessionID),
			slog.String("phase", s.ErrorPhase),
			slog.Duration("duration", time.Since(start)))
		return
	}
	r.logger.Info("pipeline completed",
		slog.String("session_id", s.SessionID),
		slog.Duration("duration", time.Since(start)))
}
