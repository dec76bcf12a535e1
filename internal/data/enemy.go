package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sequence ids every actor atlas must provide.
var ActorSequences = []string{"idle", "walk", "attack"}

// EnemyTemplate holds static data for an enemy type loaded from YAML.
type EnemyTemplate struct {
	Name     string      `yaml:"name"`
	Atlas    string      `yaml:"atlas"`
	Speed    float32     `yaml:"speed"` // world units per second; also retarget rate
	Width    float32     `yaml:"width"`
	Height   float32     `yaml:"height"`
	Collider *[4]float32 `yaml:"collider,omitempty"` // left, right, bottom, top
}

type enemyListFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
}

// EnemyTable holds enemy templates indexed by name.
type EnemyTable struct {
	templates map[string]*EnemyTemplate
	order     []string
}

// LoadEnemyTable loads enemies.yaml. Every template must reference an
// animated atlas in atlases.
func LoadEnemyTable(path string, atlases *AtlasTable) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy list: %w", err)
	}
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemy list: %w", err)
	}
	return NewEnemyTable(f.Enemies, atlases)
}

// NewEnemyTable validates templates against atlases and indexes them.
func NewEnemyTable(entries []EnemyTemplate, atlases *AtlasTable) (*EnemyTable, error) {
	t := &EnemyTable{templates: make(map[string]*EnemyTemplate, len(entries))}
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("enemy #%d: missing name", i)
		}
		if _, dup := t.templates[e.Name]; dup {
			return nil, fmt.Errorf("enemy %q: duplicate entry", e.Name)
		}
		if e.Speed <= 0 {
			return nil, fmt.Errorf("enemy %q: speed must be positive", e.Name)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return nil, fmt.Errorf("enemy %q: size must be positive", e.Name)
		}
		if err := atlases.RequireSequences(e.Atlas, ActorSequences...); err != nil {
			return nil, fmt.Errorf("enemy %q: %w", e.Name, err)
		}
		t.templates[e.Name] = e
		t.order = append(t.order, e.Name)
	}
	return t, nil
}

// Get returns a template by name, or nil if not found.
func (t *EnemyTable) Get(name string) *EnemyTemplate {
	return t.templates[name]
}

// Names returns template names in file order.
func (t *EnemyTable) Names() []string {
	return append([]string(nil), t.order...)
}

// Count returns the number of loaded templates.
func (t *EnemyTable) Count() int {
	return len(t.templates)
}
