package libs

import "fmt"

// Process exit codes. Each fatal failure point exits with its own small
// integer so callers can tell which phase failed without parsing logs.
// ExitRebootRequired is not a failure: it tells the caller the control node
// still needs a reboot before the cluster is usable.
const (
	ExitOK             = 0
	ExitValidation     = 2 // hosts file or connectivity preflight failed
	ExitProvision      = 3 // per-host brick/package provisioning failed
	ExitPoolForm       = 4 // trusted pool formation failed
	ExitVolume         = 5 // volume create/start failed
	ExitMount          = 6 // volume mount failed
	ExitConvergence    = 7 // convergence poll timed out
	ExitCleanup        = 8 // cleanup run failed
	ExitRebootRequired = 10
)

// StepError is a fatal error from a named deployment step, carrying the
// process exit code for that step.
type StepError struct {
	Step string
	Code int
	Msg  string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Msg)
}

// NewStepError builds a StepError with a formatted message
func NewStepError(step string, code int, format string, args ...interface{}) *StepError {
	return &StepError{Step: step, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// ExitCodeFor maps an error to its process exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	if se, ok := err.(*StepError); ok {
		return se.Code
	}
	if _, ok := err.(*ValidationError); ok {
		return ExitValidation
	}
	return 1
}
