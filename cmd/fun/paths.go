package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func resolveFunHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("FUN_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve FUN_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".fun"), nil
}
