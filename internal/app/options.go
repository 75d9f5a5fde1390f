package app

import (
	"time"

	"nwkit/internal/runner"
	"nwkit/pkg/profile"
)

// Options are the effective settings for one command, after merging profile
// defaults with explicit flags.
type Options struct {
	Tag      string
	SkipPull bool
	Timeout  time.Duration
}

// FlagValues carries flag values together with whether each was explicitly
// set on the command line. Set flags win over the profile.
type FlagValues struct {
	Tag         string
	TagSet      bool
	SkipPull    bool
	SkipPullSet bool
	Timeout     time.Duration
	TimeoutSet  bool
}

// ResolveOptions merges an optional profile with flag values. Precedence:
// explicit flag > profile > built-in default.
func ResolveOptions(prof *profile.Profile, flags FlagValues) Options {
	opts := Options{
		Tag: runner.DefaultTag,
	}

	if prof != nil {
		if prof.Spec.Image.Tag != "" {
			opts.Tag = prof.Spec.Image.Tag
		}
		opts.SkipPull = prof.Spec.Image.SkipPull
		opts.Timeout = prof.Spec.Run.Timeout
	}

	if flags.TagSet {
		opts.Tag = flags.Tag
	}
	if flags.SkipPullSet {
		opts.SkipPull = flags.SkipPull
	}
	if flags.TimeoutSet {
		opts.Timeout = flags.Timeout
	}

	return opts
}
