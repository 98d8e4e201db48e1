package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version"`
	Instances []instanceSchema `toml:"instances"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	for i := range s.Instances {
		if s.Instances[i].Kind == "" {
			s.Instances[i].Kind = "bot"
		}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported instances schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type instanceSchema struct {
	ID              string `toml:"id"`
	Token           string `toml:"token"`
	Kind            string `toml:"kind"`
	TimeoutDisabled bool   `toml:"timeout_disabled,omitempty"`
	NoIntents       bool   `toml:"no_intents,omitempty"`
	Tag             string `toml:"tag,omitempty"`
	AvatarURL       string `toml:"avatar_url,omitempty"`
	CreatedAt       string `toml:"created_at,omitempty"`
}
