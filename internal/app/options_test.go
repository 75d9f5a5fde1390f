package app

import (
	"testing"
	"time"

	"nwkit/pkg/profile"
)

func TestResolveOptions(t *testing.T) {
	profWithValues := &profile.Profile{
		Spec: profile.Spec{
			Image: profile.ImageConfig{Tag: "2.1", SkipPull: true},
			Run:   profile.RunConfig{Timeout: 30 * time.Minute},
		},
	}

	tests := []struct {
		name  string
		prof  *profile.Profile
		flags FlagValues
		want  Options
	}{
		{
			name: "Built-in defaults without profile or flags",
			want: Options{Tag: "latest"},
		},
		{
			name: "Profile values apply",
			prof: profWithValues,
			want: Options{Tag: "2.1", SkipPull: true, Timeout: 30 * time.Minute},
		},
		{
			name: "Explicit flags beat the profile",
			prof: profWithValues,
			flags: FlagValues{
				Tag: "3.0", TagSet: true,
				SkipPull: false, SkipPullSet: true,
				Timeout: time.Hour, TimeoutSet: true,
			},
			want: Options{Tag: "3.0", SkipPull: false, Timeout: time.Hour},
		},
		{
			name: "Unset flags leave profile values alone",
			prof: profWithValues,
			flags: FlagValues{
				Tag: "latest", SkipPull: false, Timeout: 0,
			},
			want: Options{Tag: "2.1", SkipPull: true, Timeout: 30 * time.Minute},
		},
		{
			name: "Profile with empty tag keeps default",
			prof: &profile.Profile{},
			want: Options{Tag: "latest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveOptions(tt.prof, tt.flags); got != tt.want {
				t.Errorf("ResolveOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
