package orchestrator

import "fmt"

// GenerationError reports an I/O failure while writing an output unit. The
// run is fatal; partial output is not valid.
type GenerationError struct {
	Target string
	Unit   string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("orchestrator: %s: write unit %q: %v", e.Target, e.Unit, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
