package errors

import "errors"

var (
	ErrInputNotFound   = errors.New("input file not found")
	ErrPullFailed      = errors.New("image pull failed")
	ErrRunFailed       = errors.New("container run failed")
	ErrArtifactMissing = errors.New("tool produced no output artifact")
	ErrStagingIO       = errors.New("staging I/O failed")
	ErrProfileInvalid  = errors.New("profile invalid")
	ErrRuntimeFailed   = errors.New("runtime operation failed")
)

// NWKitError carries a typed failure with enough context to present an
// actionable message. Type is one of the sentinel errors above.
type NWKitError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *NWKitError) Error() string {
	return e.OriginalErr.Error()
}

func (e *NWKitError) Unwrap() error {
	return e.OriginalErr
}

// Is lets errors.Is match a NWKitError against its sentinel type.
func (e *NWKitError) Is(target error) bool {
	return target == e.Type
}

func NewNWKitError(errorType error, context, cause, suggestion string, originalErr error) *NWKitError {
	return &NWKitError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewInputError(context, cause, suggestion string, originalErr error) *NWKitError {
	return NewNWKitError(ErrInputNotFound, context, cause, suggestion, originalErr)
}

func NewPullError(context, cause, suggestion string, originalErr error) *NWKitError {
	return NewNWKitError(ErrPullFailed, context, cause, suggestion, originalErr)
}

func NewRunError(context, cause, suggestion string, originalErr error) *NWKitError {
	return NewNWKitError(ErrRunFailed, context, cause, suggestion, originalErr)
}

func NewArtifactError(context, cause, suggestion string, originalErr error) *NWKitError {
	return NewNWKitError(ErrArtifactMissing, context, cause, suggestion, originalErr)
}

func NewStagingError(context, cause, suggestion string, originalErr error) *NWKitError {
	return NewNWKitError(ErrStagingIO, context, cause, suggestion, originalErr)
}

func NewProfileError(context, cause, suggestion string, originalErr error) *NWKitError {
	return NewNWKitError(ErrProfileInvalid, context, cause, suggestion, originalErr)
}

func NewRuntimeError(context, cause, suggestion string, originalErr error) *NWKitError {
	return NewNWKitError(ErrRuntimeFailed, context, cause, suggestion, originalErr)
}
