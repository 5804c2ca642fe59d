package main

import (
	"fmt"
	"os"
)

func modeCommandLabel(mode executionMode) string {
	switch mode {
	case modeCheck:
		return "fun check"
	default:
		return "fun run"
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fun [--exec-mode=treewalker|stream] [--verbose] <file.fun>")
	fmt.Fprintln(os.Stderr, "  fun [--exec-mode=treewalker|stream] [--verbose] run [target]")
	fmt.Fprintln(os.Stderr, "  fun [--exec-mode=treewalker|stream] [--verbose] run <file.fun>")
	fmt.Fprintln(os.Stderr, "  fun check [target]")
	fmt.Fprintln(os.Stderr, "  fun check <file.fun>")
	fmt.Fprintln(os.Stderr, "  fun tokens <file.fun>")
	fmt.Fprintln(os.Stderr, "  fun fetch [--update]")
	fmt.Fprintln(os.Stderr, "  fun version")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment:")
	fmt.Fprintln(os.Stderr, "  FUN_HOME  cache directory for git targets (default $HOME/.fun)")
}
