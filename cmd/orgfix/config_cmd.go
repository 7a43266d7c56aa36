package main

import (
	"fmt"

	"github.com/alnah/go-orgfix/internal/config"
	"github.com/alnah/go-orgfix/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML. The output is a
// valid config file, so `orgfix config --default > orgfix.yaml` starts one.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseConfigFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}

	cfg := config.DefaultConfig()
	source := "defaults"
	if !flags.defaults {
		var path string
		cfg, path, err = loadConfig(flags.config, env)
		if err != nil {
			return err
		}
		if path != "" {
			source = path
		}
	}

	// Spell out the enabled switches instead of omitting them
	tables, links := cfg.Tables.IsEnabled(), cfg.Links.IsEnabled()
	cfg.Tables.Enabled, cfg.Links.Enabled = &tables, &links

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	fmt.Fprintf(env.Stdout, "# source: %s\n", source)
	_, err = env.Stdout.Write(out)
	return err
}
