package compliance

import (
	"slices"

	"github.com/matzehuels/svgbudget/pkg/errors"
)

// Profile names.
const (
	ProfileCompetition = "competition"
	ProfileBasic       = "basic"
)

// Level is an ordered bundle of stages applied together before the next
// size check.
type Level struct {
	Name   string
	Stages []Stage
}

// Profile is the escalation ladder run after sanitization. Maximum, when
// set, is the last-resort level applied once every regular level has failed.
type Profile struct {
	Name    string
	Levels  []Level
	Maximum *Level
}

// ProfileConfig adjusts the built-in profiles.
type ProfileConfig struct {
	// DisableGrouping removes the GroupSimilar stage for callers that need
	// paint order preserved.
	DisableGrouping bool
}

// Competition returns the four-level ladder with a maximum-aggression
// fallback:
//
//	L1  prune unused defs, path precision 2
//	L2  path precision 1, remove default attributes
//	L3  minify, group similar elements
//	L4  path precision 0, remove title/desc and empty groups
//	max truncate whole-number values, minify
func Competition(cfg ProfileConfig) Profile {
	l3 := []Stage{Minify()}
	if !cfg.DisableGrouping {
		l3 = append(l3, GroupSimilar())
	}
	return Profile{
		Name: ProfileCompetition,
		Levels: []Level{
			{Name: "L1", Stages: []Stage{PruneDefs(), ReducePrecision(2)}},
			{Name: "L2", Stages: []Stage{ReducePrecision(1), RemoveDefaultAttrs()}},
			{Name: "L3", Stages: l3},
			{Name: "L4", Stages: []Stage{ReducePrecision(0), RemoveNonessential()}},
		},
		Maximum: &Level{Name: "max", Stages: []Stage{TruncateNumbers(), Minify()}},
	}
}

// Basic returns the two-step ladder: prune and precision 1, then minify and
// precision 0.
func Basic(ProfileConfig) Profile {
	return Profile{
		Name: ProfileBasic,
		Levels: []Level{
			{Name: "prune", Stages: []Stage{PruneDefs(), ReducePrecision(1)}},
			{Name: "minify", Stages: []Stage{Minify(), ReducePrecision(0)}},
		},
	}
}

var profiles = map[string]func(ProfileConfig) Profile{
	ProfileCompetition: Competition,
	ProfileBasic:       Basic,
}

// ProfileByName returns the named built-in profile.
func ProfileByName(name string, cfg ProfileConfig) (Profile, error) {
	build, ok := profiles[name]
	if !ok {
		return Profile{}, errors.New(errors.ErrCodeInvalidProfile, "unknown profile %q (available: %v)", name, ProfileNames())
	}
	return build(cfg), nil
}

// ProfileNames lists the built-in profiles in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
