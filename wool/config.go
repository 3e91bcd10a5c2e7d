package wool

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

// DefaultInterfaceLevels is how deep the backend interface import scan
// descends below the module root.
const DefaultInterfaceLevels = 2

// Config is read once per run and not modified afterwards.
type Config struct {
	OutputDir string `toml:"output_dir"`
	// Prefix is prepended to every generated Java package.
	Prefix string `toml:"prefix"`
	// BeansOnly suppresses generation of the backend interface.
	BeansOnly       bool   `toml:"beans_only"`
	InterfaceLevels int    `toml:"interface_levels"`
	Copyright       string `toml:"copyright"`

	// ExcludeModules are glob patterns of module names that are wrapped, so
	// references into them resolve, but left out of the result.
	ExcludeModules []string `toml:"exclude_modules"`
	// Strict turns every warning into a failure of the batch.
	Strict bool `toml:"strict"`

	TypePatterns []TypePattern `toml:"type"`

	Logger  *slog.Logger `toml:"-"`
	Policy  Policy       `toml:"-"`
	Factory *Factory     `toml:"-"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WithDefaults returns a copy of cfg with every unset field defaulted.
func (cfg *Config) WithDefaults() *Config {
	c := *cfg
	applyDefaults(&c)
	return &c
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = "out"
	}
	if cfg.InterfaceLevels == 0 {
		cfg.InterfaceLevels = DefaultInterfaceLevels
	}
	if len(cfg.TypePatterns) == 0 {
		cfg.TypePatterns = DefaultTypePatterns()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Policy == nil {
		if cfg.Strict {
			cfg.Policy = StrictPolicy{}
		} else {
			cfg.Policy = &WarnPolicy{Logger: cfg.Logger}
		}
	}
	if cfg.Factory == nil {
		cfg.Factory = DefaultFactory()
	}
}

func (cfg *Config) validate() error {
	if cfg.InterfaceLevels < 0 {
		return fmt.Errorf("interface_levels must not be negative, got %d", cfg.InterfaceLevels)
	}
	if strings.ContainsAny(cfg.Prefix, "/ ") {
		return fmt.Errorf("invalid package prefix %q", cfg.Prefix)
	}
	for _, p := range cfg.ExcludeModules {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	if _, err := compilePatterns(cfg.TypePatterns); err != nil {
		return err
	}
	for _, p := range cfg.TypePatterns {
		if p.Java == "" {
			return fmt.Errorf("type pattern %q has no java type", p.Pattern)
		}
	}
	return nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}
