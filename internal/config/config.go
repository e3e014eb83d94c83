// Package config provides YAML-based settings loading for levelforge and the
// environment overrides used by the uploader.
package config

import "github.com/vovakirdan/levelforge/internal/levelgen"

// Settings is the full settings file.
type Settings struct {
	Generation GenerationSettings `yaml:"generation"`
	Header     HeaderSettings     `yaml:"header"`
	Storage    StorageSettings    `yaml:"storage"`
	Upload     UploadSettings     `yaml:"upload"`
	Server     ServerSettings     `yaml:"server"`
}

// GenerationSettings tunes the level generator.
type GenerationSettings struct {
	DefaultSize     int     `yaml:"default_size"`
	MinSize         int     `yaml:"min_size"`
	MaxSize         int     `yaml:"max_size"`
	MaxAttempts     int     `yaml:"max_attempts"`  // Whole-level retries
	GateAttempts    int     `yaml:"gate_attempts"` // Door and plate draws per gate
	LoopProbability float64 `yaml:"loop_probability"`
}

// HeaderSettings are the document header defaults.
type HeaderSettings struct {
	Skybox    string `yaml:"skybox"`
	LevelName string `yaml:"level_name"`
	Author    string `yaml:"author"`
}

// StorageSettings locates the level archive.
type StorageSettings struct {
	DBPath string `yaml:"db_path"`
}

// UploadSettings describes where submitted levels are committed.
type UploadSettings struct {
	APIBase        string `yaml:"api_base"`
	Owner          string `yaml:"owner"`
	Repo           string `yaml:"repo"`
	Folder         string `yaml:"folder"`
	Branch         string `yaml:"branch"`
	CommitMessage  string `yaml:"commit_message"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ServerSettings configures the SSH and HTTP surfaces.
type ServerSettings struct {
	SSHAddr            string `yaml:"ssh_addr"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	APIAddr            string `yaml:"api_addr"`
}

// Params converts the generation settings into generator parameters.
func (g GenerationSettings) Params() levelgen.Params {
	return levelgen.Params{
		MinSize:         g.MinSize,
		MaxSize:         g.MaxSize,
		MaxAttempts:     g.MaxAttempts,
		GateAttempts:    g.GateAttempts,
		LoopProbability: g.LoopProbability,
	}
}

// Header converts the header defaults into a generator header.
func (h HeaderSettings) Header() levelgen.Header {
	return levelgen.Header{
		LevelName: h.LevelName,
		Author:    h.Author,
		Skybox:    h.Skybox,
	}
}
