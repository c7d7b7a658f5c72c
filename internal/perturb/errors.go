package perturb

import "fmt"

// UnknownTypeError reports a perturbation type outside the closed set handled
// by Apply. Unknown types are a hard failure, never a silent pass-through.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown perturbation type: %q", string(e.Type))
}

// UnknownDirectionError reports an unrecognized pronoun swap direction.
type UnknownDirectionError struct {
	Direction Direction
}

func (e *UnknownDirectionError) Error() string {
	return fmt.Sprintf("unknown pronoun swap direction: %q", string(e.Direction))
}
