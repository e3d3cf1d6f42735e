// Package errors provides the structured error type shared by every layer of
// rpg-tabletop.
//
// Errors carry a Code (what kind of failure), an optional Reason (which domain
// condition), a user-facing Message, a wrapped Cause and free-form Meta.
//
// Creating errors:
//
//	err := errors.InvalidArgumentf("unknown class %q", class).WithReason(errors.ReasonInvalidClass)
//	err := errors.FailedPrecondition("ability on cooldown").WithReason(errors.ReasonOnCooldown)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrDuplicateName) {
//	    // show "name already taken"
//	}
//	if errors.GetCategory(err) == errors.CategoryResource {
//	    // offer a retry
//	}
//
// Wrap keeps the code and reason of the wrapped error so callers can add
// context without losing the classification:
//
//	if err := tx.Commit(); err != nil {
//	    return errors.Wrap(err, "failed to commit character")
//	}
//
// Categories follow how the UI layer presents failures:
//   - validation: InvalidArgument, Unauthenticated
//   - conflict: AlreadyExists
//   - state: FailedPrecondition, OutOfRange, NotFound
//   - resource: everything else (storage, connection, integrity)
//
// Nothing in this package, or any package using it, terminates the process.
package errors
