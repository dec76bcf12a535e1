package system

import (
	"fmt"
	"strings"
	"time"
)

// System is the interface every frame system implements. After names the
// systems that must finish before this one starts in the same frame.
type System interface {
	Name() string
	After() []string
	Update(dt time.Duration)
}

// Access declares the shared resources a system touches. Systems in the
// same dependency level only share a parallel batch when neither writes
// anything the other reads or writes.
type Access struct {
	Reads  []string
	Writes []string
}

// AccessDeclarer is implemented by systems that can share a batch.
// Systems without it run alone.
type AccessDeclarer interface {
	Access() Access
}

// Mode selects how a Runner executes its plan.
type Mode int

const (
	Sequential Mode = iota
	Parallel
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return Sequential, nil
	case "parallel":
		return Parallel, nil
	}
	return Sequential, fmt.Errorf("unknown dispatch mode %q", s)
}

func conflicts(a, b System) bool {
	da, okA := a.(AccessDeclarer)
	db, okB := b.(AccessDeclarer)
	if !okA || !okB {
		return true
	}
	aa, ab := da.Access(), db.Access()
	return overlaps(aa.Writes, ab.Writes) || overlaps(aa.Writes, ab.Reads) || overlaps(ab.Writes, aa.Reads)
}

func overlaps(x, y []string) bool {
	for _, a := range x {
		for _, b := range y {
			if a == b {
				return true
			}
		}
	}
	return false
}
