// Package errors provides the structured error type shared by the listing
// pipeline, the GitHub client and the command line.
//
// Every failure that crosses a package boundary is an *AppError carrying a
// machine-readable ErrorCode. Callers branch on the code through the Is*
// helpers or KindOf rather than on message text:
//
//	if errors.IsAuth(err) {
//	    // ask for a new token
//	}
package errors
