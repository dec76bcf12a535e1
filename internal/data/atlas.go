package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/isoarena/game/internal/component"
)

// SequenceEntry is one animation in YAML. Either Durations lists one value
// per frame or Duration applies to every frame.
type SequenceEntry struct {
	Frames    []uint8   `yaml:"frames"`
	Durations []float32 `yaml:"durations,omitempty"`
	Duration  float32   `yaml:"duration,omitempty"` // seconds
}

// AtlasEntry describes one texture atlas and its animations.
type AtlasEntry struct {
	Name         string                   `yaml:"name"`
	Image        string                   `yaml:"image"`
	UVWidth      float32                  `yaml:"uv_width"`
	UVHeight     float32                  `yaml:"uv_height"`
	FacingStride uint8                    `yaml:"facing_stride"`
	Sequences    map[string]SequenceEntry `yaml:"sequences,omitempty"`
}

type atlasListFile struct {
	Atlases []AtlasEntry `yaml:"atlases"`
}

// AtlasTable holds every atlas keyed by name, plus the validated animation
// table for those that animate. Read-only after load.
type AtlasTable struct {
	atlases    map[string]*AtlasEntry
	animations map[string]*component.AnimationTable
	order      []string
}

// LoadAtlasTable loads atlases.yaml. Malformed sequences fail the load.
func LoadAtlasTable(path string) (*AtlasTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read atlas list: %w", err)
	}
	var f atlasListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse atlas list: %w", err)
	}
	return NewAtlasTable(f.Atlases)
}

// NewAtlasTable validates entries and builds the table. File order is kept
// as the draw order.
func NewAtlasTable(entries []AtlasEntry) (*AtlasTable, error) {
	t := &AtlasTable{
		atlases:    make(map[string]*AtlasEntry, len(entries)),
		animations: make(map[string]*component.AnimationTable, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("atlas #%d: missing name", i)
		}
		if _, dup := t.atlases[e.Name]; dup {
			return nil, fmt.Errorf("atlas %q: duplicate entry", e.Name)
		}
		if e.UVWidth <= 0 || e.UVHeight <= 0 || e.UVWidth > 1 || e.UVHeight > 1 {
			return nil, fmt.Errorf("atlas %q: uv cell %vx%v out of range", e.Name, e.UVWidth, e.UVHeight)
		}
		if len(e.Sequences) > 0 {
			table, err := buildAnimationTable(e)
			if err != nil {
				return nil, err
			}
			t.animations[e.Name] = table
		}
		t.atlases[e.Name] = e
		t.order = append(t.order, e.Name)
	}
	return t, nil
}

func buildAnimationTable(e *AtlasEntry) (*component.AnimationTable, error) {
	stride := e.FacingStride
	if stride == 0 {
		stride = 1
	}
	seqs := make(map[string]component.Sequence, len(e.Sequences))
	for name, s := range e.Sequences {
		durations := s.Durations
		if len(durations) == 0 && s.Duration > 0 {
			durations = make([]float32, len(s.Frames))
			for i := range durations {
				durations[i] = s.Duration
			}
		}
		seqs[name] = component.Sequence{Frames: s.Frames, Durations: durations}
	}
	return component.NewAnimationTable(e.Name, stride, seqs)
}

// Get returns an atlas by name, or nil if not found.
func (t *AtlasTable) Get(name string) *AtlasEntry {
	return t.atlases[name]
}

// Animation returns the animation table for an atlas, or nil if it has none.
func (t *AtlasTable) Animation(name string) *component.AnimationTable {
	return t.animations[name]
}

// Names returns atlas names in file order.
func (t *AtlasTable) Names() []string {
	return append([]string(nil), t.order...)
}

// RequireSequences checks that atlas exists and animates every id.
func (t *AtlasTable) RequireSequences(atlas string, ids ...string) error {
	anim := t.animations[atlas]
	if anim == nil {
		if t.atlases[atlas] == nil {
			return fmt.Errorf("unknown atlas %q", atlas)
		}
		return fmt.Errorf("atlas %q has no animations", atlas)
	}
	for _, id := range ids {
		if !anim.Has(id) {
			return fmt.Errorf("atlas %q: missing sequence %q", atlas, id)
		}
	}
	return nil
}

// Count returns the number of atlases loaded.
func (t *AtlasTable) Count() int {
	return len(t.atlases)
}
