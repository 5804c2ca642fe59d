package main

import (
	"errors"
	"fmt"
	"os"
)

const cliToolVersion = "fun-cli 0.0.0-dev"

var errManifestNotFound = errors.New("package.yml not found")

type executionMode int

const (
	modeRun executionMode = iota
	modeCheck
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(remaining) == 0 {
		printUsage()
		return 1
	}

	switch remaining[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(remaining[1:], opts)
	case "check":
		return runCheck(remaining[1:], opts)
	case "tokens":
		return runTokens(remaining[1:], opts)
	case "fetch":
		return runFetch(remaining[1:], opts)
	default:
		return runEntry(remaining, opts)
	}
}
