package buildcfg

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

// profileSchema constrains a build profile file. The definition is
// closed, so an unknown field is rejected instead of silently ignored;
// every field is optional and falls back to the resolver defaults.
const profileSchema = `
#Profile: {
	arch?:          string & =~"^rv(32|64)"
	extensions?:    [...string & !=""]
	abi?:           string & =~"^(ilp32|lp64)"
	toolchain?:     string
	sources?:       [...string & !=""]
	linker_script?: string
	out_dir?:       string
}
`

// Profile is a build profile loaded from a YAML file. It carries the
// same override surface as the command-line flags.
type Profile struct {
	Arch         string   `yaml:"arch"`
	Extensions   []string `yaml:"extensions"`
	ABI          string   `yaml:"abi"`
	Toolchain    string   `yaml:"toolchain"`
	Sources      []string `yaml:"sources"`
	LinkerScript string   `yaml:"linker_script"`
	OutDir       string   `yaml:"out_dir"`
}

// ProfileError reports a profile that failed schema validation.
type ProfileError struct {
	Path    string
	Message string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid build profile %s: %s", e.Path, e.Message)
}

// LoadProfile reads a YAML build profile and validates it against the
// CUE schema before decoding.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return ParseProfile(path, data)
}

// ParseProfile validates and decodes profile bytes. The path is used
// only for diagnostics.
func ParseProfile(path string, data []byte) (*Profile, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(profileSchema).LookupPath(cue.ParsePath("#Profile"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling profile schema: %w", err)
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return nil, &ProfileError{Path: path, Message: err.Error()}
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return nil, &ProfileError{Path: path, Message: err.Error()}
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return nil, &ProfileError{Path: path, Message: err.Error()}
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &ProfileError{Path: path, Message: err.Error()}
	}
	return &p, nil
}

// Overrides converts the profile into resolver overrides. Flag-level
// overrides are applied on top by the caller.
func (p *Profile) Overrides() Overrides {
	return Overrides{
		BaseArch:        p.Arch,
		Extensions:      p.Extensions,
		ABI:             p.ABI,
		ToolchainPrefix: p.Toolchain,
		Sources:         p.Sources,
		LinkerScript:    p.LinkerScript,
		OutDir:          p.OutDir,
	}
}
