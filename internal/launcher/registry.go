package launcher

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

//go:embed openers.toml
var openersTOML []byte

// OpenerDefinition describes how an external opener is invoked.
type OpenerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args,omitempty"`
}

// PlatformConfig holds the per-GOOS opener preferences.
type PlatformConfig struct {
	DefaultOpener string   `toml:"default_opener"`
	PDFViewers    []string `toml:"pdf_viewers"`
}

type openersConfig struct {
	Platforms map[string]PlatformConfig   `toml:"platforms"`
	Openers   map[string]OpenerDefinition `toml:"openers"`
}

// Registry maps opener names to their invocation. Built-ins come from the
// embedded TOML; a user file under the config directory overrides per name.
type Registry struct {
	platforms map[string]PlatformConfig
	openers   map[string]OpenerDefinition
}

func NewRegistry() (*Registry, error) {
	var cfg openersConfig
	if err := toml.Unmarshal(openersTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing openers.toml: %w", err)
	}

	r := &Registry{
		platforms: cfg.Platforms,
		openers:   cfg.Openers,
	}
	r.loadUserConfig()

	return r, nil
}

func (r *Registry) loadUserConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	data, err := os.ReadFile(filepath.Join(home, ".config", "akiba", "openers.toml"))
	if err != nil {
		return
	}

	var user openersConfig
	if err := toml.Unmarshal(data, &user); err != nil {
		return
	}

	for name, def := range user.Openers {
		r.openers[name] = def
	}
	for goos, pc := range user.Platforms {
		r.platforms[goos] = pc
	}
}

// Platform returns the opener preferences for the current GOOS, falling
// back to the "fallback" entry.
func (r *Registry) Platform() PlatformConfig {
	if pc, ok := r.platforms[runtime.GOOS]; ok {
		return pc
	}
	if pc, ok := r.platforms["fallback"]; ok {
		return pc
	}
	return PlatformConfig{DefaultOpener: "xdg-open"}
}

// Command builds the invocation for an opener. Unknown names run bare with
// just the target argument.
func (r *Registry) Command(name, target string) (*exec.Cmd, error) {
	def, ok := r.openers[name]
	if !ok {
		return exec.Command(name, target), nil
	}

	if len(def.Platforms) > 0 {
		supported := false
		for _, p := range def.Platforms {
			if p == runtime.GOOS {
				supported = true
				break
			}
		}
		if !supported {
			return nil, fmt.Errorf("%s not supported on %s", name, runtime.GOOS)
		}
	}

	args := append(append([]string(nil), def.Args...), target)
	return exec.Command(name, args...), nil
}

// IsAvailable checks whether an opener is installed.
func (r *Registry) IsAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// FindAvailable returns the first installed opener from the list.
func (r *Registry) FindAvailable(names []string) string {
	for _, name := range names {
		if r.IsAvailable(name) {
			return name
		}
	}
	return ""
}
