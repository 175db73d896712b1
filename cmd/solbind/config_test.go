package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "solbind.toml", `
[Generator]
Sources = "contracts"
Package = "bindings"
Output = "gen"
Jobs = 4
Exclude = ["Owned", "IERC20"]
`)
	cfg := defaultConfig()
	if err := loadConfigFile(file, &cfg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := generatorConfig{
		Sources: "contracts",
		Package: "bindings",
		Output:  "gen",
		Solc:    "solc",
		Jobs:    4,
		Exclude: []string{"Owned", "IERC20"},
	}
	if !reflect.DeepEqual(cfg.Generator, want) {
		t.Errorf("Expected %+v, got %+v", want, cfg.Generator)
	}
}

func TestLoadConfigFileUnknownField(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "solbind.toml", "[Generator]\nPackages = \"bindings\"\n")

	cfg := defaultConfig()
	err := loadConfigFile(file, &cfg)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Packages") {
		t.Errorf("Expected error naming the field, got %v", err)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "combined.json", combinedJSON)
	file := writeFile(t, dir, "solbind.toml", `
[Generator]
CombinedJSON = "does-not-exist.json"
Package = "fromfile"
Output = "unused"
`)
	out := filepath.Join(dir, "bindings")

	err := run("--config", file, "--combined-json", manifest, "--pkg", "fromflag", "--out", out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	src, err := os.ReadFile(filepath.Join(out, "owned.go"))
	if err != nil {
		t.Fatalf("Expected binding in flag output dir: %v", err)
	}
	if !strings.Contains(string(src), "package fromflag") {
		t.Errorf("Expected flag package to win:\n%s", src)
	}
}

func TestConfigFileOnly(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "combined.json", combinedJSON)
	out := filepath.Join(dir, "bindings")
	file := writeFile(t, dir, "solbind.toml", "[Generator]\n"+
		"CombinedJSON = "+quoteTOML(manifest)+"\n"+
		"Package = \"bindings\"\n"+
		"Output = "+quoteTOML(out)+"\n")

	if err := run("--config", file); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "sample_contract.go")); err != nil {
		t.Errorf("Expected sample_contract.go, got %v", err)
	}
}

func TestDumpConfig(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "dump.toml")

	if err := run("dumpconfig", "--pkg", "bindings", "--jobs", "3", dump); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	cfg := defaultConfig()
	if err := loadConfigFile(dump, &cfg); err != nil {
		t.Fatalf("Dumped config does not load: %v", err)
	}
	if cfg.Generator.Package != "bindings" || cfg.Generator.Jobs != 3 {
		t.Errorf("Expected package bindings and 3 jobs, got %+v", cfg.Generator)
	}
}

// quoteTOML quotes a path as a TOML literal string.
func quoteTOML(s string) string {
	return "'" + s + "'"
}
