package main

import (
	"fmt"
	"os"

	"hfuzz/internal/config"
	"hfuzz/internal/crate"
	"hfuzz/internal/launcher"
	"hfuzz/internal/proc"
	"hfuzz/internal/toolchain"
	"hfuzz/internal/version"
)

// newPipeline snapshots the environment, locates the crate root and
// enters it, matching cargo's own behavior of operating on the project
// root regardless of the current directory.
func newPipeline() (*toolchain.Pipeline, error) {
	env := config.FromOS()
	root, err := crate.FindRoot(".")
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(root); err != nil {
		return nil, fmt.Errorf("failed to enter crate root %q: %w", root, err)
	}
	return &toolchain.Pipeline{
		Env:          env,
		Runner:       proc.OSRunner{},
		CrateRoot:    root,
		LocalVersion: version.Version,
	}, nil
}

func newLauncher() (*launcher.Launcher, error) {
	pipeline, err := newPipeline()
	if err != nil {
		return nil, err
	}
	return &launcher.Launcher{
		Env:      pipeline.Env,
		Pipeline: pipeline,
		Runner:   pipeline.Runner,
		Replacer: proc.OSReplacer{},
	}, nil
}
