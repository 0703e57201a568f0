// Package toolchain drives cargo with a resolved build configuration and
// guards engine version agreement before instrumented builds.
package toolchain

import (
	"fmt"
	"log/slog"
	"runtime"

	"hfuzz/internal/config"
	"hfuzz/internal/crate"
	"hfuzz/internal/proc"
	"hfuzz/internal/profile"
)

// Pipeline binds the profile resolver, the version guard and the cargo
// driver for one invocation. Probe fields default to the real probes and
// are swapped for stubs in tests.
type Pipeline struct {
	Env          config.Environment
	Runner       proc.Runner
	Log          *slog.Logger
	CrateRoot    string
	LocalVersion string

	// Probes. Nil fields fall back to the real implementations.
	LookupTriple  func() (string, error)
	GoldLinker    func() bool
	PinnedVersion func(root string) (string, bool, error)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

func (p *Pipeline) hostTriple() (string, error) {
	if p.LookupTriple != nil {
		return p.LookupTriple()
	}
	return HostTriple()
}

func (p *Pipeline) goldLinker() bool {
	if p.GoldLinker != nil {
		return p.GoldLinker()
	}
	return ProbeGoldLinker()
}

func (p *Pipeline) pinnedVersion(root string) (string, bool, error) {
	if p.PinnedVersion != nil {
		return p.PinnedVersion(root)
	}
	return crate.PinnedEngineVersion(root)
}

// Resolve produces the concrete configuration for a variant.
func (p *Pipeline) Resolve(t profile.BuildType) (*profile.Config, error) {
	triple, err := p.hostTriple()
	if err != nil {
		return nil, err
	}
	return profile.Resolve(t, profile.Inputs{
		Triple:     triple,
		TargetDir:  p.Env.TargetDirOrDefault(),
		UserFlags:  p.Env.RustFlags,
		GoldLinker: t == profile.Instrumented && p.goldLinker(),
		OS:         runtime.GOOS,
	}), nil
}

// Build resolves the variant, runs the version guard for engine-linked
// profiles, and invokes cargo. extraArgs are inserted between the target
// selection and the user build args, e.g. ["--bin", target].
// The resolved configuration is returned even on failure so callers can
// report paths derived from it.
func (p *Pipeline) Build(t profile.BuildType, extraArgs ...string) (*profile.Config, error) {
	cfg, err := p.Resolve(t)
	if err != nil {
		return nil, err
	}

	if cfg.NeedsEngine {
		pinned, found, err := p.pinnedVersion(p.CrateRoot)
		if err != nil {
			return cfg, err
		}
		if !found {
			p.logger().Debug("no pinned engine dependency found, skipping version check",
				"crate_root", p.CrateRoot)
		} else if err := CheckEngineVersion(p.LocalVersion, pinned); err != nil {
			return cfg, err
		}
	}

	args := []string{"build", "--target", cfg.Triple}
	args = append(args, extraArgs...)
	args = append(args, config.SplitArgs(p.Env.BuildArgs)...)
	if cfg.Release {
		args = append(args, "--release")
	}

	// Flags travel through the environment, not argv, so build scripts
	// compiled along the way are not themselves instrumented.
	env := map[string]string{
		"RUSTFLAGS":         cfg.RustFlags(),
		"CARGO_INCREMENTAL": cfg.Incremental,
		"CARGO_TARGET_DIR":  cfg.TargetDir,
		"CRATE_ROOT":        p.CrateRoot,
	}
	if cfg.NeedsEngine {
		// read by the library's build script: version re-check and the
		// placement path for the engine artifacts
		env["CARGO_HONGGFUZZ_BUILD_VERSION"] = p.LocalVersion
		env["CARGO_HONGGFUZZ_TARGET_DIR"] = cfg.TargetDir
	}

	p.logger().Info("building", "variant", t.String(), "triple", cfg.Triple, "release", cfg.Release)
	if err := p.Runner.Run(&proc.Command{
		Path: p.Env.CargoOrDefault(),
		Args: args,
		Env:  env,
		Dir:  p.CrateRoot,
	}); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Clean delegates to cargo clean against the isolated target directory,
// so regular build artifacts are never touched.
func (p *Pipeline) Clean(extraArgs ...string) error {
	args := append([]string{"clean"}, extraArgs...)
	return p.Runner.Run(&proc.Command{
		Path: p.Env.CargoOrDefault(),
		Args: args,
		Env: map[string]string{
			"CARGO_TARGET_DIR": p.Env.TargetDirOrDefault(),
		},
		Dir: p.CrateRoot,
	})
}

// BinaryPath is where cargo places the built target for a configuration.
func BinaryPath(cfg *profile.Config, target string) string {
	prof := "debug"
	if cfg.Release {
		prof = "release"
	}
	return fmt.Sprintf("%s/%s/%s/%s", cfg.TargetDir, cfg.Triple, prof, target)
}

// EnginePath is where the build-time helper places the engine binary.
func EnginePath(targetDir string) string {
	return fmt.Sprintf("%s/honggfuzz", targetDir)
}
