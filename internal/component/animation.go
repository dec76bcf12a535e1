package component

import (
	"fmt"
	"sort"
)

// Sequence is one named animation: atlas column per frame and how long each
// frame is shown, in seconds.
type Sequence struct {
	Frames    []uint8
	Durations []float32
}

// AnimationTable is the read-only set of sequences for one atlas. Tables
// are built once at load time and shared by every entity using the atlas.
type AnimationTable struct {
	Atlas        string
	FacingStride uint8 // atlas rows per facing direction
	sequences    map[string]Sequence
}

// NewAnimationTable validates every sequence. Empty sequences, mismatched
// frame and duration counts and non-positive durations are rejected.
func NewAnimationTable(atlas string, facingStride uint8, sequences map[string]Sequence) (*AnimationTable, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("atlas %q: no sequences", atlas)
	}
	for name, seq := range sequences {
		if len(seq.Frames) == 0 {
			return nil, fmt.Errorf("atlas %q sequence %q: zero-length sequence", atlas, name)
		}
		if len(seq.Frames) != len(seq.Durations) {
			return nil, fmt.Errorf("atlas %q sequence %q: %d frames but %d durations",
				atlas, name, len(seq.Frames), len(seq.Durations))
		}
		for i, d := range seq.Durations {
			if d <= 0 {
				return nil, fmt.Errorf("atlas %q sequence %q: frame %d has duration %v", atlas, name, i, d)
			}
		}
	}
	return &AnimationTable{Atlas: atlas, FacingStride: facingStride, sequences: sequences}, nil
}

func (t *AnimationTable) Sequence(id string) (Sequence, bool) {
	s, ok := t.sequences[id]
	return s, ok
}

func (t *AnimationTable) Has(id string) bool {
	_, ok := t.sequences[id]
	return ok
}

// Names lists sequence ids in sorted order.
func (t *AnimationTable) Names() []string {
	names := make([]string, 0, len(t.sequences))
	for n := range t.sequences {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (t *AnimationTable) mustSequence(id string) Sequence {
	s, ok := t.sequences[id]
	if !ok {
		panic(fmt.Sprintf("animation: atlas %q has no sequence %q", t.Atlas, id))
	}
	return s
}

// Animation drives the frame of one entity's Tile.
//
// A locked sequence plays once: when it wraps, the controller switches back
// to Resume and clears the lock. ChangeSequence is refused while locked.
type Animation struct {
	Table   *AnimationTable
	Current string
	Frame   int
	Elapsed float32
	Speed   float32 // duration multiplier; 1 is authored speed
	Locked  bool
	Resume  string
	Facing  Direction
}

func NewAnimation(table *AnimationTable, initial string, facing Direction) (*Animation, error) {
	if !table.Has(initial) {
		return nil, fmt.Errorf("atlas %q has no sequence %q", table.Atlas, initial)
	}
	return &Animation{
		Table:   table,
		Current: initial,
		Speed:   1,
		Facing:  facing,
	}, nil
}

// Advance accumulates dt seconds and steps the frame when the current
// frame's time is up. Reports whether the frame changed.
func (a *Animation) Advance(dt float32) bool {
	seq := a.Table.mustSequence(a.Current)
	a.Elapsed += dt
	if a.Elapsed < seq.Durations[a.Frame]*a.Speed {
		return false
	}
	a.Elapsed = 0
	a.Frame++
	if a.Frame >= len(seq.Frames) {
		a.Frame = 0
		if a.Locked {
			a.Current = a.Resume
			a.Locked = false
		}
	}
	return true
}

// ChangeSequence switches to id. Returns false when id is already playing
// or a locked sequence has not finished. With lock set, the sequence plays
// once and then returns to the one active before the switch.
func (a *Animation) ChangeSequence(id string, lock bool) bool {
	if id == a.Current || a.Locked {
		return false
	}
	a.Table.mustSequence(id)
	if lock {
		a.Resume = a.Current
		a.Locked = true
	}
	a.Current = id
	a.Frame = 0
	a.Elapsed = 0
	return true
}

// ChangeFacing restarts the sequence when the facing changes.
func (a *Animation) ChangeFacing(f Direction) bool {
	if f == a.Facing {
		return false
	}
	a.Facing = f
	a.Frame = 0
	a.Elapsed = 0
	return true
}

// FrameIndex returns the atlas cell for the current frame and facing.
func (a *Animation) FrameIndex() [2]uint8 {
	seq := a.Table.mustSequence(a.Current)
	row := uint8(0)
	if a.Facing != None {
		row = uint8(a.Facing) * a.Table.FacingStride
	}
	return [2]uint8{seq.Frames[a.Frame], row}
}
