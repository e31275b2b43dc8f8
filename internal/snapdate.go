package internal

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// Sentinel errors surfaced by Resolve. Individual source failures never
// escape the resolver; callers only ever see one of these, wrapped with
// the file path.
var (
	ErrNoSnapDate   = errors.New("could not determine snap date")
	ErrDateConflict = errors.New("metadata and filename dates do not match")
)

// Source is one independent, fallible way of deriving a snap date for a
// media file. Extract returns false when the source has no usable
// evidence; it must never hand back a partial or malformed timestamp.
// Malformed values are logged by the source and reported as no evidence.
type Source interface {
	Name() string
	Extract(m Media) (time.Time, bool)
}

// ConflictPolicy decides what happens when the metadata and filename
// sources disagree on the calendar date.
type ConflictPolicy string

const (
	// ConflictFail skips the file and surfaces the conflict.
	ConflictFail ConflictPolicy = "fail"
	// ConflictMetadata trusts the metadata date and warns.
	ConflictMetadata ConflictPolicy = "metadata"
)

// Resolver reconciles evidence from the metadata and filename sources
// into a single authoritative snap date per file. Sources are consulted
// at most once per file.
type Resolver struct {
	Image    Source // metadata source for images
	Video    Source // metadata source for videos
	Filename Source
	Fallback Source // consulted only when everything else fails; may be nil

	OnConflict ConflictPolicy
	Log        *Logger

	closers []func() error
}

// NewResolver wires up the sources selected by the config. Callers must
// Close the resolver when done; the exiftool source holds a child
// process.
func NewResolver(cfg *Config, log *Logger) (*Resolver, error) {
	r := &Resolver{
		Filename:   &FilenameSource{Patterns: DefaultPatterns, Log: log},
		OnConflict: ConflictPolicy(cfg.OnConflict),
		Log:        log,
	}
	if r.OnConflict == "" {
		r.OnConflict = ConflictFail
	}

	if cfg.UseExifTool {
		et, err := NewExifToolSource(log)
		if err != nil {
			return nil, err
		}
		r.Image = et
		r.Video = et
		r.closers = append(r.closers, et.Close)
	} else {
		r.Image = &ExifSource{Log: log}
		r.Video = &FFprobeSource{Binary: cfg.FFprobePath, Log: log}
	}

	if cfg.MtimeFallback {
		r.Fallback = MtimeSource{}
	}

	return r, nil
}

// Close releases resources held by the underlying sources.
func (r *Resolver) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// metadata runs the kind-appropriate metadata source. Unknown kinds count
// as no evidence, since the filename source may still succeed.
func (r *Resolver) metadata(m Media) (time.Time, bool) {
	switch m.Kind {
	case KindImage:
		return r.Image.Extract(m)
	case KindVideo:
		return r.Video.Extract(m)
	}
	return time.Time{}, false
}

// Outcome classifies how a file's snap date reconciled. The stats
// command reports distributions over these.
type Outcome string

const (
	OutcomeMetadataOnly Outcome = "metadata_only"
	OutcomeFilenameOnly Outcome = "filename_only"
	OutcomeAgreement    Outcome = "agreement"
	OutcomeLooseMatch   Outcome = "loose_match"
	OutcomeFallback     Outcome = "fallback"
	OutcomeConflict     Outcome = "conflict"
	OutcomeNoDate       Outcome = "no_date"
)

// Resolution is the full result of reconciling one file. When Err is
// non-nil, Snap is the zero time.
type Resolution struct {
	Snap    time.Time
	Outcome Outcome
	Err     error
}

// Resolve reconciles the snap date for m.
func (r *Resolver) Resolve(m Media) (time.Time, error) {
	res := r.ResolveDetailed(m)
	return res.Snap, res.Err
}

// ResolveDetailed reconciles the snap date for m:
//
//  1. Run the metadata source for the file's kind.
//  2. Run the filename source.
//  3. One hit: use it. Both hit and equal: use it. Both hit on the same
//     calendar day with different times: warn once and trust metadata.
//     Both hit on different days: ErrDateConflict, unless the conflict
//     policy says to trust metadata.
//  4. No hits: ErrNoSnapDate, or the mtime fallback when configured.
func (r *Resolver) ResolveDetailed(m Media) Resolution {
	meta, metaOK := r.metadata(m)
	if metaOK {
		r.Log.Debugf("%s: metadata snap date %s", m.SourcePath, meta.Format(time.DateTime))
	} else {
		r.Log.Debugf("%s: no metadata snap date", m.SourcePath)
	}

	name, nameOK := r.Filename.Extract(m)
	if nameOK {
		r.Log.Debugf("%s: filename snap date %s", m.SourcePath, name.Format(time.DateTime))
	} else {
		r.Log.Debugf("%s: no filename snap date", m.SourcePath)
	}

	switch {
	case metaOK && !nameOK:
		return Resolution{Snap: meta, Outcome: OutcomeMetadataOnly}
	case !metaOK && nameOK:
		return Resolution{Snap: name, Outcome: OutcomeFilenameOnly}
	case !metaOK && !nameOK:
		if r.Fallback != nil {
			if t, ok := r.Fallback.Extract(m); ok {
				r.Log.Warnf("%s: no metadata or filename date, falling back to %s", m.SourcePath, r.Fallback.Name())
				return Resolution{Snap: t, Outcome: OutcomeFallback}
			}
		}
		return Resolution{
			Outcome: OutcomeNoDate,
			Err:     fmt.Errorf("%s: %w", m.SourcePath, ErrNoSnapDate),
		}
	}

	if meta.Equal(name) {
		return Resolution{Snap: meta, Outcome: OutcomeAgreement}
	}
	if sameDay(meta, name) {
		r.Log.Warnf("%s: metadata and filename dates only loosely match, using metadata", m.SourcePath)
		return Resolution{Snap: meta, Outcome: OutcomeLooseMatch}
	}
	if r.OnConflict == ConflictMetadata {
		r.Log.Warnf("%s: metadata date %s and filename date %s disagree, using metadata",
			m.SourcePath, meta.Format(time.DateOnly), name.Format(time.DateOnly))
		return Resolution{Snap: meta, Outcome: OutcomeConflict}
	}
	return Resolution{
		Outcome: OutcomeConflict,
		Err: fmt.Errorf("%s (metadata %s, filename %s): %w",
			m.SourcePath, meta.Format(time.DateTime), name.Format(time.DateTime), ErrDateConflict),
	}
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ResolveAll lazily resolves snap dates for items, one file at a time.
// Files whose date cannot be determined are skipped and recorded on the
// session; a single failure never aborts the run.
func ResolveAll(items []Media, r *Resolver, sess *Session) iter.Seq2[Media, time.Time] {
	return func(yield func(Media, time.Time) bool) {
		for _, m := range items {
			snap, err := r.Resolve(m)
			if err != nil {
				r.Log.Warnf("skipping %v", err)
				if sess != nil {
					if errors.Is(err, ErrDateConflict) {
						sess.LogConflict(m.SourcePath, err)
					} else {
						sess.LogNoDate(m.SourcePath, err)
					}
				}
				continue
			}
			if !yield(m, snap) {
				return
			}
		}
	}
}
