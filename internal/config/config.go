// Package config holds the performance-flag table from §4.6 and loads it
// from YAML, letting an embedder tune the evaluator without touching code.
// Flags change performance only; every combination must produce identical
// program semantics (§4.6, §8 property 2).
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Flags is the table of on/off switches named in §4.6.
type Flags struct {
	ScopePool        bool `yaml:"scope_pool"`
	ArgBuilder       bool `yaml:"arg_builder"`
	LocalSlotPIC     bool `yaml:"local_slot_pic"`
	FieldPIC         bool `yaml:"field_pic"`
	MethodPIC        bool `yaml:"method_pic"`
	PolyCacheSize    int  `yaml:"poly_cache_size"` // 2 (default) or 4
	PrimitiveFastops bool `yaml:"primitive_fastops"`
	RegexCache       bool `yaml:"regex_cache"`
	RangeFastIter    bool `yaml:"range_fast_iter"`
}

// Default returns every flag enabled with the documented default PIC size
// of 2 (§4.6).
func Default() Flags {
	return Flags{
		ScopePool:        true,
		ArgBuilder:       true,
		LocalSlotPIC:     true,
		FieldPIC:         true,
		MethodPIC:        true,
		PolyCacheSize:    2,
		PrimitiveFastops: true,
		RegexCache:       true,
		RangeFastIter:    true,
	}
}

// Load reads a YAML document (embedding-API §6, SPEC_FULL §4.6
// WithConfigFile) layering its fields over Default() so a partial document
// only needs to name the flags it wants to change.
func Load(path string) (Flags, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, err
	}
	return f, nil
}
