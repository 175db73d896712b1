package bindgen

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/branched-services/go-solbind/compiler"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/log"
)

// Options configures a generation run.
type Options struct {
	// Package is the Go package name of the generated files.
	Package string
	// Exclude lists contract names that get no binding.
	Exclude mapset.Set[string]
}

// File is one generated Go source file.
type File struct {
	Name     string
	Contract string
	Source   []byte
}

// Generate synthesizes and renders bindings for every manifest contract.
// sources are the Solidity texts keyed by path, used to resolve inheritance.
// Nothing is returned unless every contract succeeds.
func Generate(manifest *compiler.Manifest, sources map[string]string, opts Options) ([]File, error) {
	if !token.IsIdentifier(opts.Package) || token.IsKeyword(opts.Package) {
		return nil, fmt.Errorf("bindgen: invalid package name %q", opts.Package)
	}
	contracts, err := Synthesize(manifest, ResolveInheritance(sources), opts.Exclude)
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(contracts))
	for _, c := range contracts {
		code, err := Render(opts.Package, c)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: fileName(c.Name), Contract: c.Name, Source: code})
	}
	return files, nil
}

// WriteFiles writes generated files into dir, creating it if needed.
func WriteFiles(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Source, 0o644); err != nil {
			return err
		}
		log.Info("Wrote binding", "contract", f.Contract, "file", path)
	}
	return nil
}

// fileName maps a contract name to its Go file name. Names that would turn
// the file into a test file get a suffix.
func fileName(contract string) string {
	stem := snakeCase(contract)
	if strings.HasSuffix(stem, "_test") {
		stem += "_binding"
	}
	return stem + ".go"
}
