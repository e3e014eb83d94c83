package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// UploadEnv holds upload credentials and overrides read from the environment.
type UploadEnv struct {
	Token           string `env:"LEVELFORGE_GITHUB_TOKEN"`
	ObfuscatedToken string `env:"LEVELFORGE_GITHUB_TOKEN_OBFUSCATED"`
	Owner           string `env:"LEVELFORGE_GITHUB_OWNER"`
	Repo            string `env:"LEVELFORGE_GITHUB_REPO"`
	Branch          string `env:"LEVELFORGE_GITHUB_BRANCH"`
	APIBase         string `env:"LEVELFORGE_GITHUB_API"`
}

// LoadEnv reads optional dotenv files (".env" when none are named) and then
// parses the upload variables. Missing dotenv files are not an error;
// variables already set in the process win over file values.
func LoadEnv(dotenvFiles ...string) (UploadEnv, error) {
	_ = godotenv.Load(dotenvFiles...)

	var e UploadEnv
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}

// Apply overlays non-empty environment values on the upload settings.
func (e UploadEnv) Apply(s *UploadSettings) {
	if e.Owner != "" {
		s.Owner = e.Owner
	}
	if e.Repo != "" {
		s.Repo = e.Repo
	}
	if e.Branch != "" {
		s.Branch = e.Branch
	}
	if e.APIBase != "" {
		s.APIBase = e.APIBase
	}
}
