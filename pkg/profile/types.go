package profile

import "time"

// Profile is the root object of an optional nwkit.yaml file carrying defaults
// for the CLI. Flags always override profile values.
type Profile struct {
	APIVersion string   `yaml:"apiVersion" validate:"required"`
	Kind       string   `yaml:"kind" validate:"required,eq=Profile"`
	Metadata   Metadata `yaml:"metadata" validate:"required"`
	Spec       Spec     `yaml:"spec"`
}

// Metadata contains profile-level metadata.
type Metadata struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
}

// Spec holds the recognized options.
type Spec struct {
	Image ImageConfig `yaml:"image"`
	Run   RunConfig   `yaml:"run"`
}

// ImageConfig selects the converter image version and pull behavior.
type ImageConfig struct {
	// Tag selects a specific image version; empty means "latest".
	Tag string `yaml:"tag"`
	// SkipPull skips the image-pull step, used against locally built images.
	SkipPull bool `yaml:"skipPull"`
}

// RunConfig bounds a single container run.
type RunConfig struct {
	// Timeout limits one run; zero means no limit. The wrapped tool is
	// long-running and uncontrolled, so production profiles should set one.
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}
