package lifecycle

import "fmt"

// Result is the outcome of validating a status change. When
// RequiresConfirmation is set the transition must not be applied until the
// caller re-submits with force; Warnings are populated for every backward
// transition that triggered rules, including forced ones.
type Result struct {
	From                 Status
	Requested            Status
	Backward             bool
	RequiresConfirmation bool
	Warnings             []string
}

// Validate decides whether an order may move from current to requested.
// It is a pure function over the transition table and the order flags.
func Validate(current, requested Status, force bool, flags OrderFlags) (Result, error) {
	entry, ok := table[current]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStatus, current)
	}

	if contains(entry.Forward, requested) {
		return Result{From: current, Requested: requested}, nil
	}

	if contains(entry.Backward, requested) {
		res := Result{
			From:      current,
			Requested: requested,
			Backward:  true,
			Warnings:  rollbackWarnings(current, requested, flags),
		}
		if len(res.Warnings) > 0 && !force {
			res.RequiresConfirmation = true
		}
		return res, nil
	}

	return Result{}, IllegalTransitionError{From: current, To: requested}
}
