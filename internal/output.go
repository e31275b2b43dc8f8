package internal

import (
	"fmt"
	"iter"
	"path/filepath"
	"strconv"
	"time"
)

// OutputPath returns the canonical library-relative path for m at snap
// date t with duplicate counter n.
//
// The name encodes year-month-day-hour-minute with unpadded components;
// seconds only appear when nonzero, to keep names short. The directory is
// <year>/<month>, also unpadded.
func OutputPath(m Media, t time.Time, n int) string {
	sec := ""
	if t.Second() != 0 {
		sec = fmt.Sprintf("m%ds", t.Second())
	}
	name := fmt.Sprintf("%d-%d-%d-%dh%d%s_%s%d.%s",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), sec,
		m.TypeTag(), n, m.Ext())
	return filepath.Join(strconv.Itoa(t.Year()), strconv.Itoa(int(t.Month())), name)
}

// Assigner hands out collision-free output paths for one organize
// session. It is strictly sequential: every assignment depends on all the
// earlier ones, so an Assigner must not be shared across concurrent
// sessions.
type Assigner struct {
	used map[string]struct{}
}

func NewAssigner() *Assigner {
	return &Assigner{used: make(map[string]struct{})}
}

// Assign returns the output path for m, bumping the duplicate counter
// from 1 until the candidate is unused in this session. The chosen path
// is recorded before returning, so items with identical snap dates can
// never collide. The loop always terminates: the used set is finite and
// grows by exactly one per item.
func (a *Assigner) Assign(m Media, snap time.Time) string {
	for n := 1; ; n++ {
		candidate := OutputPath(m, snap, n)
		if _, taken := a.used[candidate]; !taken {
			a.used[candidate] = struct{}{}
			return candidate
		}
	}
}

// AssignPaths lazily maps resolved items to (source path, output path)
// pairs. The sequence is single-pass and owns its used-path set: consume
// it once per session and do not restart it.
func AssignPaths(items iter.Seq2[Media, time.Time]) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		a := NewAssigner()
		for m, snap := range items {
			if !yield(m.SourcePath, a.Assign(m, snap)) {
				return
			}
		}
	}
}
