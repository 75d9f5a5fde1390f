package runner

// DefaultTag is used when an ImageRef does not pin a specific image version.
const DefaultTag = "latest"

// ImageRef identifies the container image for one invocation. Name is
// required; an empty Tag means DefaultTag. Values are fixed once the
// invocation starts.
type ImageRef struct {
	Name string
	Tag  string
}

// String renders the reference in NAME:TAG form.
func (r ImageRef) String() string {
	tag := r.Tag
	if tag == "" {
		tag = DefaultTag
	}
	return r.Name + ":" + tag
}

// InvocationSpec describes a single container run. Binds (HOST:CONTAINER
// specs) and Command tokens are forwarded verbatim, in order, with binds
// placed before the image reference and command tokens after it.
//
// Neither field is validated or escaped here. Callers own the trust boundary
// and must not forward attacker-controlled strings.
type InvocationSpec struct {
	Binds      []string
	Command    []string
	WorkingDir string
	SkipPull   bool
}
