package component

import (
	"strings"
	"testing"
)

func testTable(t *testing.T) *AnimationTable {
	t.Helper()
	table, err := NewAnimationTable("player", 1, map[string]Sequence{
		"idle":   {Frames: []uint8{0, 1}, Durations: []float32{0.5, 0.5}},
		"walk":   {Frames: []uint8{2, 3, 4, 5}, Durations: []float32{0.1, 0.1, 0.1, 0.1}},
		"attack": {Frames: []uint8{6, 7, 8}, Durations: []float32{0.2, 0.2, 0.2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestNewAnimationTableRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
		want string
	}{
		{"empty", Sequence{}, "zero-length"},
		{"mismatch", Sequence{Frames: []uint8{0, 1}, Durations: []float32{0.1}}, "2 frames but 1 durations"},
		{"zero duration", Sequence{Frames: []uint8{0}, Durations: []float32{0}}, "duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnimationTable("a", 1, map[string]Sequence{"s": tt.seq})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestAdvanceWrapsAfterFullSequence(t *testing.T) {
	anim, err := NewAnimation(testTable(t), "walk", Down)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 4; i++ {
		if !anim.Advance(0.1) {
			t.Fatalf("advance %d did not step the frame", i)
		}
		if i < 4 && anim.Frame != i {
			t.Fatalf("after %d advances frame = %d", i, anim.Frame)
		}
	}
	if anim.Frame != 0 {
		t.Errorf("frame = %d after full cycle, want 0", anim.Frame)
	}
	if anim.Current != "walk" {
		t.Errorf("sequence = %q, want walk", anim.Current)
	}
}

func TestAdvanceHoldsUntilDurationElapses(t *testing.T) {
	anim, _ := NewAnimation(testTable(t), "idle", Down)
	if anim.Advance(0.25) {
		t.Fatal("frame stepped before its duration")
	}
	if !anim.Advance(0.25) {
		t.Fatal("frame did not step once its duration elapsed")
	}
	if anim.Frame != 1 || anim.Elapsed != 0 {
		t.Errorf("frame=%d elapsed=%v, want 1 and 0", anim.Frame, anim.Elapsed)
	}
}

func TestLockedSequenceResumes(t *testing.T) {
	anim, _ := NewAnimation(testTable(t), "walk", Right)
	anim.Advance(0.1) // mid-walk

	if !anim.ChangeSequence("attack", true) {
		t.Fatal("ChangeSequence(attack, lock) refused")
	}
	if anim.Frame != 0 || anim.Resume != "walk" || !anim.Locked {
		t.Fatalf("after lock: %+v", anim)
	}

	// a direction change mid-lock must not cancel the one-shot
	if anim.ChangeSequence("idle", false) {
		t.Error("ChangeSequence accepted while locked")
	}

	for i := 0; i < 3; i++ {
		anim.Advance(0.2)
	}
	if anim.Current != "walk" || anim.Locked {
		t.Errorf("after attack wrap: current=%q locked=%v, want walk unlocked", anim.Current, anim.Locked)
	}
	if anim.Frame != 0 {
		t.Errorf("frame = %d, want 0", anim.Frame)
	}
}

func TestChangeSequenceSameIsNoop(t *testing.T) {
	anim, _ := NewAnimation(testTable(t), "walk", Down)
	anim.Advance(0.1)
	if anim.ChangeSequence("walk", false) {
		t.Error("same sequence reported a change")
	}
	if anim.Frame != 1 {
		t.Errorf("frame reset to %d by no-op change", anim.Frame)
	}
}

func TestChangeSequenceUnknownPanics(t *testing.T) {
	anim, _ := NewAnimation(testTable(t), "walk", Down)
	defer func() {
		if recover() == nil {
			t.Error("unknown sequence did not panic")
		}
	}()
	anim.ChangeSequence("dance", false)
}

func TestChangeFacingResetsFrame(t *testing.T) {
	anim, _ := NewAnimation(testTable(t), "walk", Down)
	anim.Advance(0.1)
	if anim.ChangeFacing(Down) {
		t.Error("unchanged facing reported a change")
	}
	if anim.Frame != 1 {
		t.Fatalf("frame = %d, want 1", anim.Frame)
	}
	if !anim.ChangeFacing(Left) || anim.Frame != 0 {
		t.Errorf("facing change: frame=%d, want reset to 0", anim.Frame)
	}
}

func TestFrameIndexUsesFacingRow(t *testing.T) {
	anim, _ := NewAnimation(testTable(t), "walk", Right)
	anim.Advance(0.1)
	got := anim.FrameIndex()
	if got != [2]uint8{3, uint8(Right)} {
		t.Errorf("FrameIndex = %v, want [3 %d]", got, Right)
	}
	anim.Facing = None
	if got := anim.FrameIndex(); got[1] != 0 {
		t.Errorf("None facing row = %d, want 0", got[1])
	}
}
