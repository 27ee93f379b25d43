// Package ctx holds the key type for all values the application puts into a context.Context.
package ctx

import "context"

// CTXKey is the type used by all keys put in a context.
// As recommended by the package context, the application defines and uses its own data type for keys in the use of WithValue.
type CTXKey string

// CtxRequestID carries the id of the current web request, set by the request id middleware.
const CtxRequestID CTXKey = "comedians.request_id"

// RequestID returns the id of the current web request, if there is one.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxRequestID).(string)

	return id, ok && id != ""
}
