package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spiel0meister/fun/pkg/interpreter"
)

type cliOptions struct {
	mode    interpreter.ExecMode
	modeSet bool
	verbose bool
}

// parseGlobalFlags strips --exec-mode and --verbose from args. Arguments
// after "--" are passed through untouched.
func parseGlobalFlags(args []string) (cliOptions, []string, error) {
	opts := cliOptions{mode: interpreter.ExecTreewalker}
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--verbose" || arg == "-v":
			opts.verbose = true
		case arg == "--exec-mode":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--exec-mode expects a value")
			}
			if err := opts.setMode(args[i+1]); err != nil {
				return opts, nil, err
			}
			i++
		case strings.HasPrefix(arg, "--exec-mode="):
			if err := opts.setMode(strings.TrimPrefix(arg, "--exec-mode=")); err != nil {
				return opts, nil, err
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return opts, remaining, nil
}

func (o *cliOptions) setMode(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--exec-mode expects a value")
	}
	mode, err := interpreter.ParseExecMode(value)
	if err != nil {
		return fmt.Errorf("unknown --exec-mode value '%s' (expected treewalker or stream)", value)
	}
	o.mode = mode
	o.modeSet = true
	return nil
}

// execMode prefers the command line over the manifest's exec_mode.
func (o cliOptions) execMode(manifestMode interpreter.ExecMode) interpreter.ExecMode {
	if o.modeSet || manifestMode == "" {
		return o.mode
	}
	return manifestMode
}

func (o cliOptions) tracef(format string, args ...any) {
	if !o.verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "fun: "+format+"\n", args...)
}
