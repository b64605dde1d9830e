// Package config loads the hierarchical template property files and the demo
// scenario documents the scened binary consumes.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/scenelink/scenelink/pkg/vec"
)

// PropertyMap is a read-only view over a hierarchical configuration document.
// Key paths are dot-separated and case-insensitive ("Render.MaterialType").
type PropertyMap struct {
	v *viper.Viper
}

// Property is one direct child key under a prefix, with its scalar value
// rendered as a string.
type Property struct {
	Name  string
	Value string
}

// Load reads a property document from a YAML file.
func Load(path string) (*PropertyMap, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read properties %s: %w", path, err)
	}
	return &PropertyMap{v: v}, nil
}

// FromMap builds a PropertyMap from an in-memory document.
func FromMap(values map[string]any) *PropertyMap {
	v := viper.New()
	_ = v.MergeConfigMap(values)
	return &PropertyMap{v: v}
}

// Has reports whether a key path is present.
func (p *PropertyMap) Has(key string) bool {
	return p.v.IsSet(key)
}

// String returns the string value at key.
func (p *PropertyMap) String(key string) (string, bool) {
	if !p.v.IsSet(key) {
		return "", false
	}
	return p.v.GetString(key), true
}

// Bool returns the boolean value at key ("true"/"1" style values included).
func (p *PropertyMap) Bool(key string) (bool, bool) {
	if !p.v.IsSet(key) {
		return false, false
	}
	return p.v.GetBool(key), true
}

// Float returns the float value at key.
func (p *PropertyMap) Float(key string) (float64, bool) {
	if !p.v.IsSet(key) {
		return 0, false
	}
	return p.v.GetFloat64(key), true
}

// Uint returns the unsigned integer value at key.
func (p *PropertyMap) Uint(key string) (uint32, bool) {
	if !p.v.IsSet(key) {
		return 0, false
	}
	return p.v.GetUint32(key), true
}

// Vector3 parses the value at key as three floats, either a "x y z" string
// or a YAML list.
func (p *PropertyMap) Vector3(key string) (vec.Vector3, bool) {
	f, ok := p.floats(key, 3)
	if !ok {
		return vec.Vector3{}, false
	}
	return vec.Vector3{X: f[0], Y: f[1], Z: f[2]}, true
}

// Vector2 parses the value at key as two floats.
func (p *PropertyMap) Vector2(key string) (vec.Vector2, bool) {
	f, ok := p.floats(key, 2)
	if !ok {
		return vec.Vector2{}, false
	}
	return vec.Vector2{X: f[0], Y: f[1]}, true
}

// Children returns the direct scalar children of prefix sorted by name.
// Nested sections are skipped.
func (p *PropertyMap) Children(prefix string) []Property {
	lowered := strings.ToLower(prefix) + "."
	seen := make(map[string]struct{})
	var out []Property
	for _, key := range p.v.AllKeys() {
		if !strings.HasPrefix(key, lowered) {
			continue
		}
		rest := key[len(lowered):]
		if strings.Contains(rest, ".") {
			continue
		}
		if _, dup := seen[rest]; dup {
			continue
		}
		seen[rest] = struct{}{}
		out = append(out, Property{Name: rest, Value: p.v.GetString(key)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *PropertyMap) floats(key string, want int) ([]float64, bool) {
	if !p.v.IsSet(key) {
		return nil, false
	}
	raw := p.v.Get(key)
	var parts []string
	switch t := raw.(type) {
	case string:
		parts = strings.Fields(strings.ReplaceAll(t, ",", " "))
	default:
		parts = strings.Fields(strings.ReplaceAll(p.v.GetString(key), ",", " "))
		if len(parts) == 0 {
			for _, f := range p.v.GetStringSlice(key) {
				parts = append(parts, f)
			}
		}
	}
	if len(parts) != want {
		return nil, false
	}
	out := make([]float64, want)
	for i, s := range parts {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
