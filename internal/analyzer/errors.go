package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrSkip is returned by ExecuteOperation when the subject is in a state
	// where the operation is not meaningful, such as a read on an empty
	// structure. The call is not timed and the sample is marked skipped.
	ErrSkip = errors.New("operation skipped")

	// ErrContractViolation signals a defect in a benchmark's hooks, most
	// commonly a GrowToSize that does not reach the requested size.
	ErrContractViolation = errors.New("benchmark contract violation")

	// ErrDuplicateName is returned when a composite already has a child with
	// the same name.
	ErrDuplicateName = errors.New("duplicate analyzer name")

	// ErrInvalidName is returned when a child's name contains Separator, which
	// would make its qualified name ambiguous.
	ErrInvalidName = errors.New("invalid analyzer name")

	// ErrAlreadyAdded is returned when a node already belongs to a composite.
	ErrAlreadyAdded = errors.New("analyzer already belongs to a composite")

	// ErrCycle is returned when a composite would become its own descendant.
	ErrCycle = errors.New("composite cycle")
)

// ContractError reports a GrowToSize call that left the subject at the wrong size.
type ContractError struct {
	Requested int
	Expected  int
	Actual    int
}

func (e *ContractError) Error() string {
	if e.Requested != e.Expected {
		return fmt.Sprintf("%v: growToSize(%d) clamped to %d left subject at size %d",
			ErrContractViolation, e.Requested, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%v: growToSize(%d) left subject at size %d",
		ErrContractViolation, e.Requested, e.Actual)
}

// Unwrap lets errors.Is match ErrContractViolation.
func (e *ContractError) Unwrap() error {
	return ErrContractViolation
}

// PanicError wraps a value recovered from a panicking analyzer.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("analyzer panicked: %v", e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
