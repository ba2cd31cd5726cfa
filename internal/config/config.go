package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SegmenterConfig holds the affix tables and guards used by the segmenter.
// Tables are consulted in the order given.
type SegmenterConfig struct {
	Prefixes       []string `yaml:"prefixes"`
	Suffixes       []string `yaml:"suffixes"`
	Roots          []string `yaml:"roots"`
	ChunkWidth     int      `yaml:"chunk_width"`
	MinRootLength  int      `yaml:"min_root_length"`
	FoldDiacritics bool     `yaml:"fold_diacritics"`
}

// FeaturesConfig holds the word sets and weights of the feature extractor.
type FeaturesConfig struct {
	SensoryWords   []string `yaml:"sensory_words"`
	AbstractWords  []string `yaml:"abstract_words"`
	UniqueWeight   float64  `yaml:"unique_weight"`
	SyllableWeight float64  `yaml:"syllable_weight"`
}

// DictionaryConfig extends the built-in dictionary.
type DictionaryConfig struct {
	Entries map[string]string `yaml:"entries,omitempty"`
}

// ReportConfig controls rendering of results.
type ReportConfig struct {
	Precision int `yaml:"precision"`
	KeyWidth  int `yaml:"key_width"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Segmenter  SegmenterConfig  `yaml:"segmenter"`
	Features   FeaturesConfig   `yaml:"features"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Report     ReportConfig     `yaml:"report"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault tries ./morphemb.yaml first, then ~/.config/morphemb/config.yaml.
// If neither exists, it writes defaults to ~/.config/morphemb/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "morphemb.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultUserConfigPath returns ~/.config/morphemb/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "morphemb", "config.yaml"), nil
}

// Validate reports settings the pipeline cannot run with.
func (c *AppConfig) Validate() error {
	if c.Segmenter.ChunkWidth < 1 {
		return fmt.Errorf("segmenter.chunk_width must be >= 1, got %d", c.Segmenter.ChunkWidth)
	}
	if c.Segmenter.MinRootLength < 1 {
		return fmt.Errorf("segmenter.min_root_length must be >= 1, got %d", c.Segmenter.MinRootLength)
	}
	for name, table := range map[string][]string{
		"prefixes": c.Segmenter.Prefixes,
		"suffixes": c.Segmenter.Suffixes,
		"roots":    c.Segmenter.Roots,
	} {
		for i, entry := range table {
			if entry == "" {
				return fmt.Errorf("segmenter.%s[%d] is empty", name, i)
			}
		}
	}
	if c.Features.UniqueWeight < 0 || c.Features.SyllableWeight < 0 {
		return errors.New("features weights must be non-negative")
	}
	if c.Report.Precision < 0 {
		return fmt.Errorf("report.precision must be >= 0, got %d", c.Report.Precision)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Segmenter: SegmenterConfig{
			Prefixes:      append([]string(nil), defaultPrefixes...),
			Suffixes:      append([]string(nil), defaultSuffixes...),
			Roots:         append([]string(nil), defaultRoots...),
			ChunkWidth:    4,
			MinRootLength: 1,
		},
		Features: FeaturesConfig{
			SensoryWords:   append([]string(nil), defaultSensoryWords...),
			AbstractWords:  append([]string(nil), defaultAbstractWords...),
			UniqueWeight:   1.0,
			SyllableWeight: 1.0,
		},
		Report: ReportConfig{Precision: 3, KeyWidth: 22},
		Log:    LogConfig{Level: "info"},
	}
	return cfg
}

// applyConfigDefaults fills zero values left by a partial YAML document.
// An explicitly empty table cannot be told apart from a missing one, so
// both fall back to the built-in table.
func applyConfigDefaults(cfg *AppConfig) {
	if len(cfg.Segmenter.Prefixes) == 0 {
		cfg.Segmenter.Prefixes = append([]string(nil), defaultPrefixes...)
	}
	if len(cfg.Segmenter.Suffixes) == 0 {
		cfg.Segmenter.Suffixes = append([]string(nil), defaultSuffixes...)
	}
	if len(cfg.Segmenter.Roots) == 0 {
		cfg.Segmenter.Roots = append([]string(nil), defaultRoots...)
	}
	if cfg.Segmenter.ChunkWidth == 0 {
		cfg.Segmenter.ChunkWidth = 4
	}
	if cfg.Segmenter.MinRootLength == 0 {
		cfg.Segmenter.MinRootLength = 1
	}
	if len(cfg.Features.SensoryWords) == 0 {
		cfg.Features.SensoryWords = append([]string(nil), defaultSensoryWords...)
	}
	if len(cfg.Features.AbstractWords) == 0 {
		cfg.Features.AbstractWords = append([]string(nil), defaultAbstractWords...)
	}
	if cfg.Features.UniqueWeight == 0 && cfg.Features.SyllableWeight == 0 {
		cfg.Features.UniqueWeight = 1.0
		cfg.Features.SyllableWeight = 1.0
	}
	if cfg.Report.Precision == 0 {
		cfg.Report.Precision = 3
	}
	if cfg.Report.KeyWidth == 0 {
		cfg.Report.KeyWidth = 22
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

var defaultPrefixes = []string{
	"hyper", "trans", "inter", "sesqui", "anti", "ab", "de", "dis", "ultra", "pseudo", "super",
}

var defaultSuffixes = []string{
	"arianism", "ification", "mogrification", "ulation", "arian", "ation", "mentation",
	"iasis", "iosis", "osis", "ulate", "icism", "ism", "ious", "ian", "ness", "ment",
}

var defaultRoots = []string{
	"antidisestablish", "establish", "transmogr", "cattywampus", "sesquiped", "biblio", "bibli",
	"hyper", "mogr", "meta", "morph", "klept", "fenestr", "squat", "wampus", "pedal", "ped",
	"kerfuffle", "fic", "ruffle", "fuffle",
}

var defaultSensoryWords = []string{
	"light", "bright", "glow", "sound", "tone", "taste", "touch", "smell", "colour", "color", "hear", "see",
}

var defaultAbstractWords = []string{
	"state", "quality", "ability", "capacity", "process", "condition", "power", "toughness",
	"recovery", "change", "time", "action",
}
