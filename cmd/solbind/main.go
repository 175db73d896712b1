// solbind generates Go bindings for Solidity contracts.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/branched-services/go-solbind/bindgen"
	"github.com/branched-services/go-solbind/compiler"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	solFlag = &cli.StringFlag{
		Name:  "sol",
		Usage: "Directory searched recursively for Solidity sources",
	}
	combinedJSONFlag = &cli.StringFlag{
		Name:  "combined-json",
		Usage: "Pre-built solc --combined-json abi,bin output to generate from instead of invoking solc",
	}
	pkgFlag = &cli.StringFlag{
		Name:  "pkg",
		Usage: "Go package name of the generated files",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Output directory of the generated files",
	}
	solcFlag = &cli.StringFlag{
		Name:  "solc",
		Usage: "Solidity compiler to use",
		Value: "solc",
	}
	jobsFlag = &cli.IntFlag{
		Name:  "jobs",
		Usage: "Number of solc processes run in parallel",
		Value: 1,
	}
	excludeFlag = &cli.StringSliceFlag{
		Name:  "exclude",
		Usage: "Comma separated contract names to skip",
	}
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
)

var generatorFlags = []cli.Flag{
	solFlag,
	combinedJSONFlag,
	pkgFlag,
	outFlag,
	solcFlag,
	jobsFlag,
	excludeFlag,
	configFileFlag,
	verbosityFlag,
}

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Flags:       generatorFlags,
	Description: `Export configuration values in TOML format (to stdout by default).`,
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "solbind",
		Usage:    "Generate Go bindings from Solidity contracts",
		Flags:    generatorFlags,
		Action:   generate,
		Commands: []*cli.Command{dumpConfigCommand},
		Before: func(ctx *cli.Context) error {
			setupLogging(ctx.Int(verbosityFlag.Name), os.Stderr)
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs a terminal handler on the default logger, coloured
// when w is a terminal.
func setupLogging(verbosity int, w *os.File) {
	var (
		output   io.Writer = w
		useColor           = (isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if useColor {
		output = colorable.NewColorable(w)
	}
	glogger := log.NewGlogHandler(log.NewTerminalHandler(output, useColor))
	glogger.Verbosity(log.FromLegacyLevel(verbosity))
	log.SetDefault(log.NewLogger(glogger))
}

func generate(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err := cfg.Generator.validate(); err != nil {
		return err
	}
	gen := cfg.Generator

	files, err := findSources(gen.Sources)
	if err != nil {
		return err
	}
	sources, err := readSources(files)
	if err != nil {
		return err
	}
	var manifest *compiler.Manifest
	if gen.CombinedJSON != "" {
		manifest, err = compiler.ReadCombinedJSONFile(gen.CombinedJSON)
	} else {
		manifest, err = compile(ctx, gen, files)
	}
	if err != nil {
		return err
	}
	log.Info("Loaded manifest", "contracts", len(manifest.Contracts), "version", manifest.Version)

	bindings, err := bindgen.Generate(manifest, sources, bindgen.Options{
		Package: gen.Package,
		Exclude: mapset.NewSet(gen.Exclude...),
	})
	if err != nil {
		return err
	}
	return bindgen.WriteFiles(gen.Output, bindings)
}

func compile(ctx *cli.Context, gen generatorConfig, files []string) (*compiler.Manifest, error) {
	solc, err := compiler.NewSolc(ctx.Context, gen.Solc)
	if err != nil {
		return nil, err
	}
	log.Info("Compiling sources", "solc", solc.Path, "version", solc.Version, "files", len(files), "jobs", gen.Jobs)
	return solc.CompileFiles(ctx.Context, files, gen.Jobs)
}

func findSources(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	return compiler.FindSources(dir)
}

// readSources loads the given Solidity files, keyed by slash separated path.
func readSources(files []string) (map[string]string, error) {
	sources := make(map[string]string, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		sources[filepath.ToSlash(file)] = string(data)
	}
	return sources, nil
}
