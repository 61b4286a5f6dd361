// Package config loads the optional dmarsc.yaml project configuration.
//
// A batch, single-file compiler has little to configure, but the one
// thing worth making pluggable without touching the compiler's source is
// the external runtime's symbol names: a build might link against an
// instrumented or namespaced runtime that exposes e.g. "rt_getInt"
// instead of "getInt". This mirrors the funxy.yaml dependency-declaration
// file the teacher's internal/ext package parses, generalized to this
// compiler's much smaller configuration surface.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Runtime names the external C runtime symbols the emitted assembly calls
// into (spec.md §6's runtime ABI).
type Runtime struct {
	GetInt      string `yaml:"getIntSymbol"`
	GetBool     string `yaml:"getBoolSymbol"`
	PrintInt    string `yaml:"printIntSymbol"`
	PrintBool   string `yaml:"printBoolSymbol"`
	PrintString string `yaml:"printStringSymbol"`
	Magic       string `yaml:"magicSymbol"`
	Exit        string `yaml:"exitSymbol"`
}

// Config is the root of dmarsc.yaml.
type Config struct {
	Runtime     Runtime `yaml:"runtime"`
	EmitColumns bool    `yaml:"emitColumns"`
}

// Default returns the configuration used when no dmarsc.yaml is present:
// the runtime symbol names named verbatim in spec.md §6.
func Default() *Config {
	return &Config{
		Runtime: Runtime{
			GetInt:      "getInt",
			GetBool:     "getBool",
			PrintInt:    "printInt",
			PrintBool:   "printBool",
			PrintString: "printString",
			Magic:       "magic",
			Exit:        "exit",
		},
		EmitColumns: true,
	}
}

// Load reads and parses a dmarsc.yaml file at path, filling in any field
// left unset from Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	fillDefaults(cfg)
	return cfg, nil
}

func fillDefaults(cfg *Config) {
	d := Default()
	if cfg.Runtime.GetInt == "" {
		cfg.Runtime.GetInt = d.Runtime.GetInt
	}
	if cfg.Runtime.GetBool == "" {
		cfg.Runtime.GetBool = d.Runtime.GetBool
	}
	if cfg.Runtime.PrintInt == "" {
		cfg.Runtime.PrintInt = d.Runtime.PrintInt
	}
	if cfg.Runtime.PrintBool == "" {
		cfg.Runtime.PrintBool = d.Runtime.PrintBool
	}
	if cfg.Runtime.PrintString == "" {
		cfg.Runtime.PrintString = d.Runtime.PrintString
	}
	if cfg.Runtime.Magic == "" {
		cfg.Runtime.Magic = d.Runtime.Magic
	}
	if cfg.Runtime.Exit == "" {
		cfg.Runtime.Exit = d.Runtime.Exit
	}
}
