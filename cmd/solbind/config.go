package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, id, link)
	},
}

type solbindConfig struct {
	Generator generatorConfig
}

type generatorConfig struct {
	Sources      string   `toml:",omitempty"`
	CombinedJSON string   `toml:",omitempty"`
	Package      string   `toml:",omitempty"`
	Output       string   `toml:",omitempty"`
	Solc         string
	Jobs         int
	Exclude      []string `toml:",omitempty"`
}

func defaultConfig() solbindConfig {
	return solbindConfig{
		Generator: generatorConfig{
			Solc: solcFlag.Value,
			Jobs: jobsFlag.Value,
		},
	}
}

func loadConfigFile(file string, cfg *solbindConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadConfig builds the configuration from defaults, the optional config
// file and finally the command line flags.
func loadConfig(ctx *cli.Context) (solbindConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, err
		}
	}
	applyFlags(ctx, &cfg.Generator)
	return cfg, nil
}

func applyFlags(ctx *cli.Context, cfg *generatorConfig) {
	if ctx.IsSet(solFlag.Name) {
		cfg.Sources = ctx.String(solFlag.Name)
	}
	if ctx.IsSet(combinedJSONFlag.Name) {
		cfg.CombinedJSON = ctx.String(combinedJSONFlag.Name)
	}
	if ctx.IsSet(pkgFlag.Name) {
		cfg.Package = ctx.String(pkgFlag.Name)
	}
	if ctx.IsSet(outFlag.Name) {
		cfg.Output = ctx.String(outFlag.Name)
	}
	if ctx.IsSet(solcFlag.Name) {
		cfg.Solc = ctx.String(solcFlag.Name)
	}
	if ctx.IsSet(jobsFlag.Name) {
		cfg.Jobs = ctx.Int(jobsFlag.Name)
	}
	if ctx.IsSet(excludeFlag.Name) {
		cfg.Exclude = ctx.StringSlice(excludeFlag.Name)
	}
}

func (cfg generatorConfig) validate() error {
	switch {
	case cfg.Sources == "" && cfg.CombinedJSON == "":
		return fmt.Errorf("one of --%s or --%s is required", solFlag.Name, combinedJSONFlag.Name)
	case cfg.Package == "":
		return fmt.Errorf("--%s is required", pkgFlag.Name)
	case cfg.Output == "":
		return fmt.Errorf("--%s is required", outFlag.Name)
	case cfg.Jobs < 1:
		return fmt.Errorf("--%s must be at least 1, got %d", jobsFlag.Name, cfg.Jobs)
	}
	return nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
