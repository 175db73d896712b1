package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrToolUnavailable indicates the solc executable could not be found or run.
	ErrToolUnavailable = errors.New("compiler: solc is not available")

	// ErrManifestParse indicates malformed combined-JSON output.
	ErrManifestParse = errors.New("compiler: malformed manifest")
)

// ToolUnavailableError is returned by the preflight check when the compiler
// cannot be located or does not answer --version.
type ToolUnavailableError struct {
	Path string
	Err  error
}

func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("compiler: solc not available at %q: %v", e.Path, e.Err)
}

func (e *ToolUnavailableError) Unwrap() error {
	return e.Err
}

func (e *ToolUnavailableError) Is(target error) bool {
	return target == ErrToolUnavailable
}

// ManifestParseError reports where a combined-JSON document is malformed.
// Contract is empty when the document itself is broken.
type ManifestParseError struct {
	Contract string
	Err      error
}

func (e *ManifestParseError) Error() string {
	if e.Contract == "" {
		return fmt.Sprintf("compiler: malformed manifest: %v", e.Err)
	}
	return fmt.Sprintf("compiler: malformed manifest entry %q: %v", e.Contract, e.Err)
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

func (e *ManifestParseError) Is(target error) bool {
	return target == ErrManifestParse
}

// CompileError is returned when solc exits unsuccessfully for a file.
type CompileError struct {
	File   string
	Stderr string
	Err    error
}

func (e *CompileError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("compiler: solc failed on %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("compiler: solc failed on %s: %v\n%s", e.File, e.Err, msg)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
