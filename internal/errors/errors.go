package errors

import "sync"

// getHandler lazily constructs the process-wide handler exactly once.
var getHandler = sync.OnceValues(NewErrorHandler)

func GetDefaultHandler() (*ErrorHandler, error) {
	return getHandler()
}

// HandleError reports err through the default handler. Errors constructing
// the handler itself are swallowed; there is nowhere better to send them.
func HandleError(err error) {
	if handler, handlerErr := getHandler(); handlerErr == nil {
		handler.Handle(err)
	}
}

// resetDefaultHandler resets the singleton for testing purposes
func resetDefaultHandler() {
	getHandler = sync.OnceValues(NewErrorHandler)
}
