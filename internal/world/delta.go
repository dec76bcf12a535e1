package world

import "time"

// DeltaTime is the elapsed time of the current frame. Written once by the
// frame dispatcher before any system runs.
type DeltaTime struct {
	d time.Duration
}

func (dt *DeltaTime) Set(d time.Duration) { dt.d = d }

func (dt *DeltaTime) Duration() time.Duration { return dt.d }

// Seconds returns the frame time as float32 seconds, the unit every system
// integrates in.
func (dt *DeltaTime) Seconds() float32 { return float32(dt.d.Seconds()) }
