package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type ScreeningProfilesYAML struct {
	Profiles []ScreeningProfileYAML `yaml:"profiles"`
}

type ScreeningProfileYAML struct {
	Name       string    `yaml:"name"`
	Strategy   string    `yaml:"strategy"`
	Parameters yaml.Node `yaml:"parameters"`
}

func (o *ScreeningProfilesYAML) GetProfile(name string) (*ScreeningProfileYAML, error) {
	name1 := strings.ToLower(strings.TrimSpace(name))
	for i := range o.Profiles {
		name2 := strings.ToLower(o.Profiles[i].Name)
		if name1 == name2 {
			return &o.Profiles[i], nil
		}
	}

	return nil, fmt.Errorf("ScreeningProfilesYAML: %w: %s", ErrProfileNotFound, name)
}

// Apply overlays the keys set in the profile onto base.
func (p *ScreeningProfileYAML) Apply(base ScreeningParameters) (ScreeningParameters, error) {
	if p.Parameters.Kind == 0 {
		return base, nil
	}

	if err := p.Parameters.Decode(&base); err != nil {
		return base, fmt.Errorf("ScreeningProfileYAML: failed to decode parameters for %s: %w", p.Name, err)
	}

	return base, nil
}

func ParseScreeningProfiles(data []byte) (*ScreeningProfilesYAML, error) {
	var profiles ScreeningProfilesYAML
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("ParseScreeningProfiles: failed to unmarshal yaml: %w", err)
	}

	return &profiles, nil
}
