// Package fault signals internal-consistency violations.
//
// A fault means the caller broke a structural contract (mutating state that
// was never created, addressing an ambiguous destination, redefining a
// destination). These are programming errors, not user input errors, so they
// panic immediately instead of returning. The panic value is a [*Fault] so a
// boundary that owns a whole session can recover it into a plain error with
// [From] without swallowing unrelated panics.
package fault

import (
	"fmt"
	"runtime"
)

// Fault is the panic payload for a broken internal contract. It satisfies the
// error interface so recovered faults can be returned directly.
type Fault struct {
	msg string
}

func (f *Fault) Error() string {
	return "internal consistency fault: " + f.msg
}

func callerDetails() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("'%s#%d'", file, line)
}

// Truef panics with a descriptive [*Fault] if cond is not true.
func Truef(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(&Fault{msg: fmt.Sprintf(format, args...) + " at " + callerDetails()})
}

// From extracts a [*Fault] from a recovered panic value.
// The second return is false when the panic was not fault-originated, in
// which case the caller should re-panic.
func From(recovered any) (*Fault, bool) {
	f, ok := recovered.(*Fault)
	return f, ok
}
