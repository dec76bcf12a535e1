// animconv converts a sprite-sheet JSON export (frames plus frameTags) to
// an atlases.yaml entry.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/isoarena/game/internal/data"
)

type rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type sheetFrame struct {
	Filename string `json:"filename"`
	Frame    rect   `json:"frame"`
	Duration int    `json:"duration"` // milliseconds
}

type frameTag struct {
	Name string `json:"name"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

type sheet struct {
	Frames []sheetFrame `json:"frames"`
	Meta   struct {
		Image     string             `json:"image"`
		Size      struct{ W, H int } `json:"size"`
		FrameTags []frameTag         `json:"frameTags"`
	} `json:"meta"`
}

// convert builds the atlas entry. The cell size comes from the first
// frame; a frame's id is its column in the sheet.
func convert(raw []byte, name string, stride uint8) (data.AtlasEntry, error) {
	var s sheet
	if err := json.Unmarshal(raw, &s); err != nil {
		return data.AtlasEntry{}, fmt.Errorf("parse sheet: %w", err)
	}
	if len(s.Frames) == 0 {
		return data.AtlasEntry{}, fmt.Errorf("sheet has no frames")
	}
	if s.Meta.Size.W <= 0 || s.Meta.Size.H <= 0 {
		return data.AtlasEntry{}, fmt.Errorf("sheet size %dx%d invalid", s.Meta.Size.W, s.Meta.Size.H)
	}
	cell := s.Frames[0].Frame
	if cell.W <= 0 || cell.H <= 0 {
		return data.AtlasEntry{}, fmt.Errorf("frame %q has empty size", s.Frames[0].Filename)
	}

	entry := data.AtlasEntry{
		Name:         name,
		Image:        s.Meta.Image,
		UVWidth:      float32(cell.W) / float32(s.Meta.Size.W),
		UVHeight:     float32(cell.H) / float32(s.Meta.Size.H),
		FacingStride: stride,
		Sequences:    make(map[string]data.SequenceEntry, len(s.Meta.FrameTags)),
	}
	for _, tag := range s.Meta.FrameTags {
		if tag.From < 0 || tag.To >= len(s.Frames) || tag.From > tag.To {
			return data.AtlasEntry{}, fmt.Errorf("tag %q: range %d..%d outside %d frames", tag.Name, tag.From, tag.To, len(s.Frames))
		}
		var seq data.SequenceEntry
		for _, f := range s.Frames[tag.From : tag.To+1] {
			col := f.Frame.X / cell.W
			if col > 255 {
				return data.AtlasEntry{}, fmt.Errorf("tag %q: column %d does not fit a frame id", tag.Name, col)
			}
			seq.Frames = append(seq.Frames, uint8(col))
			seq.Durations = append(seq.Durations, float32(f.Duration)/1000)
		}
		entry.Sequences[tag.Name] = seq
	}
	return entry, nil
}

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: animconv <sheet.json> <atlas-name> <output.yaml> [facing-stride]")
		os.Exit(1)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	stride := uint8(1)
	if len(os.Args) > 4 {
		n, err := strconv.ParseUint(os.Args[4], 10, 8)
		if err != nil {
			fmt.Fprintln(os.Stderr, "facing-stride:", err)
			os.Exit(1)
		}
		stride = uint8(n)
	}

	entry, err := convert(raw, os.Args[2], stride)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Validate the way the game loader will.
	if _, err := data.NewAtlasTable([]data.AtlasEntry{entry}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := os.Create(os.Args[3])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	names := make([]string, 0, len(entry.Sequences))
	for n := range entry.Sequences {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "# Atlas %s, auto-generated from %s (sequences: %v)\n", entry.Name, os.Args[1], names)
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]data.AtlasEntry{"atlases": {entry}}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	enc.Close()

	fmt.Printf("Wrote atlas %s with %d sequences to %s\n", entry.Name, len(entry.Sequences), os.Args[3])
}
