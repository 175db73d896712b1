package compiler

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

var versionRegexp = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)

// Solc runs the solc executable.
type Solc struct {
	Path    string
	Version string
}

// NewSolc locates solc and checks that it answers --version. An empty path
// means "solc" on $PATH. Failures are reported as *ToolUnavailableError.
func NewSolc(ctx context.Context, path string) (*Solc, error) {
	if path == "" {
		path = "solc"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, &ToolUnavailableError{Path: path, Err: err}
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, resolved, "--version")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &ToolUnavailableError{Path: resolved, Err: err}
	}
	version := versionRegexp.FindString(stdout.String())
	if version == "" {
		return nil, &ToolUnavailableError{Path: resolved, Err: errors.New("unrecognized --version output")}
	}
	log.Debug("Found solc", "path", resolved, "version", version)
	return &Solc{Path: resolved, Version: version}, nil
}

// CompileFile runs solc --combined-json abi,bin on a single file.
func (s *Solc) CompileFile(ctx context.Context, file string) (*Manifest, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Path, "--combined-json", "abi,bin", file)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &CompileError{File: file, Stderr: stderr.String(), Err: err}
	}
	m, err := ParseCombinedJSON(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	if m.Version == "" {
		m.Version = s.Version
	}
	log.Debug("Compiled source", "file", file, "contracts", len(m.Contracts))
	return m, nil
}

// CompileFiles compiles every file with at most jobs solc processes at a
// time and merges the results in input order. The first failure cancels the
// remaining work.
func (s *Solc) CompileFiles(ctx context.Context, files []string, jobs int) (*Manifest, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]*Manifest, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			m, err := s.CompileFile(gctx, file)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Merge(results...), nil
}

// FindSources returns every .sol file below root, sorted by path.
func FindSources(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".sol") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
