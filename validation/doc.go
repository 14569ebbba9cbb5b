// Package validation validates configuration and invocation parameters with
// struct tags (go-playground/validator).
//
//	type Params struct {
//	    StartID int64 `json:"from" validate:"gte=0"`
//	    StopID  int64 `json:"to" validate:"omitempty,gte=0,gtfield=StartID"`
//	}
//	err := validation.Validate(params)
//
// Failures are returned as an *errors.AppError with code INVALID_INPUT whose
// message lists every failing field as "name: reason".
package validation
