package config

import (
	_ "embed"
)

//go:embed defaults/levelforge.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hardcoded settings used when no file can be read.
func DefaultSettings() Settings {
	return Settings{
		Generation: GenerationSettings{
			DefaultSize:     11,
			MinSize:         7,
			MaxSize:         41,
			MaxAttempts:     50,
			GateAttempts:    40,
			LoopProbability: 0.1,
		},
		Header: HeaderSettings{
			Skybox:    "Day",
			LevelName: "Generated Level",
			Author:    "levelforge",
		},
		Storage: StorageSettings{
			DBPath: "~/.levelforge/levels.db",
		},
		Upload: UploadSettings{
			APIBase:        "https://api.github.com",
			Folder:         "submissions",
			Branch:         "main",
			CommitMessage:  "Add generated level",
			TimeoutSeconds: 15,
		},
		Server: ServerSettings{
			SSHAddr:            ":23235",
			HostKeyPath:        ".ssh/levelforge_ed25519",
			IdleTimeoutMinutes: 30,
			APIAddr:            ":8087",
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
