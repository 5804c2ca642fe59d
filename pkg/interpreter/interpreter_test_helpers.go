package interpreter

import (
	"bytes"
)

// RunCaptured executes source in a fresh interpreter and returns everything it
// printed, including output produced before a failure.
func RunCaptured(source string, mode ExecMode) (string, error) {
	var out bytes.Buffer
	interp := New()
	interp.SetOutput(&out)
	err := interp.Run(source, mode)
	return out.String(), err
}
