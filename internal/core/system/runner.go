package system

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner executes registered systems once per tick, honoring each system's
// After list. Sequential mode runs a single topological order; Parallel
// mode runs dependency levels as batches of non-conflicting systems.
type Runner struct {
	mode    Mode
	workers int

	systems []System
	order   []System
	batches [][]System
	built   bool
}

func NewRunner(mode Mode, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		mode:    mode,
		workers: workers,
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Mode() Mode { return r.mode }

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.built = false
}

// Build validates the dependency graph and computes the execution plan.
// Ties between ready systems are broken by registration order.
func (r *Runner) Build() error {
	byName := make(map[string]int, len(r.systems))
	for i, s := range r.systems {
		if _, dup := byName[s.Name()]; dup {
			return fmt.Errorf("duplicate system %q", s.Name())
		}
		byName[s.Name()] = i
	}

	n := len(r.systems)
	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i, s := range r.systems {
		for _, dep := range s.After() {
			j, ok := byName[dep]
			if !ok {
				return fmt.Errorf("system %q depends on unknown system %q", s.Name(), dep)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	level := make([]int, n)
	done := make([]bool, n)
	order := make([]System, 0, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, s := range r.systems {
				if !done[i] {
					stuck = append(stuck, s.Name())
				}
			}
			return fmt.Errorf("dependency cycle among systems: %s", strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, r.systems[next])
		for _, d := range dependents[next] {
			indegree[d]--
			if level[next]+1 > level[d] {
				level[d] = level[next] + 1
			}
		}
	}

	r.order = order
	r.batches = planBatches(order, level, byName)
	r.built = true
	return nil
}

// planBatches groups systems of equal depth and splits each group into
// batches whose members do not conflict.
func planBatches(order []System, level []int, byName map[string]int) [][]System {
	maxLevel := 0
	for _, l := range level {
		if l > maxLevel {
			maxLevel = l
		}
	}
	var batches [][]System
	for l := 0; l <= maxLevel; l++ {
		var group [][]System
		for _, s := range order {
			if level[byName[s.Name()]] != l {
				continue
			}
			placed := false
			for i := range group {
				if !conflictsWithAny(s, group[i]) {
					group[i] = append(group[i], s)
					placed = true
					break
				}
			}
			if !placed {
				group = append(group, []System{s})
			}
		}
		batches = append(batches, group...)
	}
	return batches
}

func conflictsWithAny(s System, batch []System) bool {
	for _, o := range batch {
		if conflicts(s, o) {
			return true
		}
	}
	return false
}

func (r *Runner) ensureBuilt() {
	if r.built {
		return
	}
	if err := r.Build(); err != nil {
		panic("system runner: " + err.Error())
	}
}

// Order returns system names in sequential execution order.
func (r *Runner) Order() []string {
	r.ensureBuilt()
	names := make([]string, len(r.order))
	for i, s := range r.order {
		names[i] = s.Name()
	}
	return names
}

// Batches returns the parallel plan as names.
func (r *Runner) Batches() [][]string {
	r.ensureBuilt()
	out := make([][]string, len(r.batches))
	for i, b := range r.batches {
		for _, s := range b {
			out[i] = append(out[i], s.Name())
		}
	}
	return out
}

// Tick runs every system once.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureBuilt()
	if r.mode == Sequential {
		for _, s := range r.order {
			s.Update(dt)
		}
		return
	}
	for _, batch := range r.batches {
		if len(batch) == 1 {
			batch[0].Update(dt)
			continue
		}
		var g errgroup.Group
		g.SetLimit(r.workers)
		for _, s := range batch {
			g.Go(func() (err error) {
				defer func() {
					if v := recover(); v != nil {
						err = fmt.Errorf("system %s panicked: %v", s.Name(), v)
					}
				}()
				s.Update(dt)
				return nil
			})
		}
		// worker panics are re-raised on the calling goroutine
		if err := g.Wait(); err != nil {
			panic(err)
		}
	}
}
