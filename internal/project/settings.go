package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"pycheck/internal/diag"
	"pycheck/internal/types"
)

// Settings control what a check run reports.
type Settings struct {
	TargetVersion  Version  `toml:"target-version"`
	Enable         []string `toml:"enable"`
	Disable        []string `toml:"disable"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
}

// Manifest is a loaded pycheck.toml.
type Manifest struct {
	Path     string
	Root     string
	Settings Settings
}

type manifestFile struct {
	Check Settings `toml:"check"`
}

// DefaultSettings is what a run without pycheck.toml uses.
func DefaultSettings() Settings {
	return Settings{TargetVersion: DefaultTargetVersion}
}

// Overrides are CLI flags; zero values leave the file's setting alone.
type Overrides struct {
	TargetVersion  string
	Enable         []string
	Disable        []string
	MaxDiagnostics *int
}

// Apply layers o over s. Category lists append so the CLI can enable on
// top of the file; disable still wins over enable.
func (s Settings) Apply(o Overrides) (Settings, error) {
	out := s
	if strings.TrimSpace(o.TargetVersion) != "" {
		v, err := ParseVersion(o.TargetVersion)
		if err != nil {
			return Settings{}, err
		}
		out.TargetVersion = v
	}
	out.Enable = append(slices.Clone(s.Enable), o.Enable...)
	out.Disable = append(slices.Clone(s.Disable), o.Disable...)
	if o.MaxDiagnostics != nil {
		out.MaxDiagnostics = *o.MaxDiagnostics
	}
	return out, out.Validate()
}

// Validate checks category names and limits.
func (s Settings) Validate() error {
	var errs []error
	for _, name := range slices.Concat(s.Enable, s.Disable) {
		if _, err := diag.ParseCategory(name); err != nil {
			errs = append(errs, err)
		}
	}
	if s.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("max-diagnostics must be >= 0, got %d", s.MaxDiagnostics))
	}
	if s.TargetVersion.Major == 0 {
		errs = append(errs, errors.New("target-version is required"))
	}
	return errors.Join(errs...)
}

// Policy builds the category policy; enable applies first, disable wins.
func (s Settings) Policy() (diag.Policy, error) {
	return diag.NewPolicy(s.Enable, s.Disable)
}

// Rules selects operator semantics for the target version: before 3, `/`
// between ints stays an int. An unset version is the default.
func (s Settings) Rules() types.Rules {
	major := s.TargetVersion.Major
	return types.Rules{LegacyDivision: major != 0 && major < 3}
}

// LoadManifest finds and parses pycheck.toml above startDir. ok is false
// when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	settings, err := LoadSettings(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Settings: settings}, true, nil
}

// LoadSettings parses path. Missing keys keep their defaults; unknown keys
// are errors so typos do not silently disable a setting.
func LoadSettings(path string) (Settings, error) {
	file := manifestFile{Check: DefaultSettings()}
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Settings{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := file.Check.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return file.Check, nil
}

// Encode renders s as a pycheck.toml document.
func (s Settings) Encode() ([]byte, error) {
	if s.Enable == nil {
		s.Enable = []string{}
	}
	if s.Disable == nil {
		s.Disable = []string{}
	}
	var buf bytes.Buffer
	buf.WriteString("# pycheck settings; categories: " + categoryList() + "\n")
	if err := toml.NewEncoder(&buf).Encode(manifestFile{Check: s}); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

func categoryList() string {
	names := make([]string, 0, 4)
	for _, c := range diag.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// Init writes the default pycheck.toml into dir and returns its path. An
// existing file is an error.
func Init(dir string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("already initialized: %s exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	data, err := DefaultSettings().Encode()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
