// Package profiles resolves named assumption sets to planners. Profiles come
// from built-in presets and an optional YAML file; planners are built on
// first use and cached.
package profiles

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"retirement-planner/internal/planner"
)

// ErrUnknownProfile is returned by Resolve for names not in the registry.
var ErrUnknownProfile = errors.New("unknown profile")

const DefaultName = "default"

type Registry struct {
	defaultName string
	profiles    map[string]planner.Assumptions
	cache       sync.Map // name -> *planner.Planner
}

// Builtin derives the preset profiles from base. "default" is base itself.
func Builtin(base planner.Assumptions) map[string]planner.Assumptions {
	conservative := base
	conservative.LifeExpectancy = 95
	conservative.DiscountRate = 0.025
	conservative.AccumulationRate = 0.03
	conservative.EscalationRate = 0.05

	balanced := base
	balanced.DiscountRate = 0.035
	balanced.AccumulationRate = 0.05
	balanced.EscalationRate = 0.10

	aggressive := base
	aggressive.DiscountRate = 0.04
	aggressive.AccumulationRate = 0.07
	aggressive.EscalationRate = 0.10

	return map[string]planner.Assumptions{
		DefaultName:    base,
		"conservative": conservative,
		"balanced":     balanced,
		"aggressive":   aggressive,
	}
}

// New builds a registry of the built-in profiles.
func New(base planner.Assumptions, defaultName string) (*Registry, error) {
	return build(Builtin(base), defaultName)
}

type profileFile struct {
	Profiles map[string]yaml.Node `yaml:"profiles"`
}

// Load builds a registry from the built-in profiles plus the profiles in the
// YAML file at path. File entries override presets of the same name; fields
// they omit are taken from base. Rates may be written as "5%".
func Load(path string, base planner.Assumptions, defaultName string) (*Registry, error) {
	profiles := Builtin(base)
	if path == "" {
		return build(profiles, defaultName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	var pf profileFile
	if err := yaml.Unmarshal([]byte(preprocessPercentages(string(data))), &pf); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}

	for name, node := range pf.Profiles {
		a := base
		if err := node.Decode(&a); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[name] = a
	}
	return build(profiles, defaultName)
}

func build(profiles map[string]planner.Assumptions, defaultName string) (*Registry, error) {
	if defaultName == "" {
		defaultName = DefaultName
	}
	if _, ok := profiles[defaultName]; !ok {
		return nil, fmt.Errorf("default profile %q: %w", defaultName, ErrUnknownProfile)
	}
	for name, a := range profiles {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return &Registry{defaultName: defaultName, profiles: profiles}, nil
}

func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Resolve returns the canonical profile name and its planner. An empty name
// selects the default profile.
func (r *Registry) Resolve(name string) (string, *planner.Planner, error) {
	if name == "" {
		name = r.defaultName
	}
	if p, ok := r.cache.Load(name); ok {
		return name, p.(*planner.Planner), nil
	}

	a, ok := r.profiles[name]
	if !ok {
		return name, nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	p, err := planner.New(a)
	if err != nil {
		return name, nil, err
	}
	actual, _ := r.cache.LoadOrStore(name, p)
	return name, actual.(*planner.Planner), nil
}

func (r *Registry) Get(name string) (planner.Assumptions, bool) {
	a, ok := r.profiles[name]
	return a, ok
}

// Names lists profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var percentPattern = regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)

// preprocessPercentages rewrites "key: 5%" as "key: 0.05".
func preprocessPercentages(content string) string {
	return percentPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := percentPattern.FindStringSubmatch(match)
		num, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return match
		}
		return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
	})
}
