// Package config resolves process-level settings from the environment.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
)

// Env holds runtime settings sourced from CASCADE_* environment variables.
type Env struct {
	// Workspace is the directory holding the .cascade store. Defaults to
	// the current working directory.
	Workspace string `envconfig:"WORKSPACE"`
	// Actor identifies the acting user for writes. Falls back to $USER.
	Actor string `envconfig:"ACTOR"`
}

// Load reads the environment and applies fallbacks.
func Load() (*Env, error) {
	var e Env
	if err := envconfig.Process("cascade", &e); err != nil {
		return nil, err
	}

	if e.Workspace == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		e.Workspace = cwd
	}
	if e.Actor == "" {
		e.Actor = os.Getenv("USER")
	}
	if e.Actor == "" {
		e.Actor = "unknown"
	}
	return &e, nil
}
