package main

import (
	"strings"
	"testing"

	"github.com/isoarena/game/internal/data"
)

const sheetJSON = `{
  "frames": [
    {"filename": "idle 0", "frame": {"x": 0,  "y": 0, "w": 32, "h": 32}, "duration": 200},
    {"filename": "idle 1", "frame": {"x": 32, "y": 0, "w": 32, "h": 32}, "duration": 200},
    {"filename": "walk 0", "frame": {"x": 64, "y": 0, "w": 32, "h": 32}, "duration": 100},
    {"filename": "walk 1", "frame": {"x": 96, "y": 0, "w": 32, "h": 32}, "duration": 150}
  ],
  "meta": {
    "image": "hero.png",
    "size": {"w": 256, "h": 256},
    "frameTags": [
      {"name": "idle", "from": 0, "to": 1},
      {"name": "walk", "from": 2, "to": 3}
    ]
  }
}`

func TestConvert(t *testing.T) {
	entry, err := convert([]byte(sheetJSON), "hero", 1)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Image != "hero.png" || entry.UVWidth != 0.125 || entry.UVHeight != 0.125 {
		t.Errorf("entry = %+v", entry)
	}
	walk := entry.Sequences["walk"]
	if len(walk.Frames) != 2 || walk.Frames[0] != 2 || walk.Frames[1] != 3 {
		t.Errorf("walk frames = %v, want [2 3]", walk.Frames)
	}
	if walk.Durations[1] != 0.15 {
		t.Errorf("walk durations = %v", walk.Durations)
	}
	if _, err := data.NewAtlasTable([]data.AtlasEntry{entry}); err != nil {
		t.Errorf("converted entry rejected by loader: %v", err)
	}
}

func TestConvertRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"no frames": `{"frames": [], "meta": {"size": {"w": 10, "h": 10}}}`,
		"bad tag":   strings.Replace(sheetJSON, `"to": 3`, `"to": 9`, 1),
		"not json":  `{`,
	}
	for name, in := range tests {
		if _, err := convert([]byte(in), "x", 1); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
