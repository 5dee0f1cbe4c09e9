// Package pkg provides public libraries that can be imported by other projects.
//
// This package serves as the public API surface of goUserRegistry and contains:
//   - errors: the user error taxonomy with HTTP status mapping
//
// Example usage:
//
//	import "github.com/chybatronik/goUserRegistry/pkg/errors"
//
//	if userErr, ok := errors.GetUserError(err); ok {
//		http.Error(w, userErr.Message, userErr.GetHTTPStatus())
//	}
package pkg
