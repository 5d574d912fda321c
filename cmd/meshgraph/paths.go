package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	errInputNotFound = errors.New("input file does not exist")
	errOutputExists  = errors.New("output file already exists, use --force to overwrite")
	errOutputDir     = errors.New("output directory does not exist")
)

// inputPath resolves path and checks that it names an existing file
func inputPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", abs, errInputNotFound)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory: %w", abs, errInputNotFound)
	}
	return abs, nil
}

// outputPath resolves path, which must not exist unless force is set. The
// parent directory has to exist.
func outputPath(path string, force bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	if info, err := os.Stat(filepath.Dir(abs)); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s: %w", filepath.Dir(abs), errOutputDir)
	}
	if _, err := os.Stat(abs); err == nil && !force {
		return "", fmt.Errorf("%s: %w", abs, errOutputExists)
	}
	return abs, nil
}
