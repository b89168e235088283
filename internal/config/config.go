// Package config resolves the parameter bundle for a provisioning run.
//
// Parameters are layered: built-in defaults, then the optional TOML config
// file, then an optional .env file in the working directory, then process
// environment variables, then CLI flags (applied by the cmd layer). The
// layering replaces compile-time credential baking from earlier revisions
// of this tool.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Remote constants shared by the send and backup flows.
const (
	// RemoteUser is the account used on the gateway.
	RemoteUser = "root"
	// DefaultConfigPath is the config file consulted when --config is not given.
	DefaultConfigPath = "~/.iotprov.toml"
	// EnvFileName is the optional per-folder defaults file.
	EnvFileName = ".env"
)

// Environment variable names recognized by the env layers.
const (
	EnvIP          = "IOTPROV_IP"
	EnvUsername    = "IOTPROV_USERNAME"
	EnvPassword    = "IOTPROV_PASSWORD"
	EnvIOTPassword = "IOTPROV_IOT_PASSWORD"
	EnvIOTHost     = "IOTPROV_IOT_HOST"
	EnvFolder      = "IOTPROV_FOLDER"
	EnvTokenFolder = "IOTPROV_TOKEN_FOLDER"
)

// Params is the fully resolved parameter bundle consumed by the core flows.
type Params struct {
	Folder      string
	IP          string
	Username    string
	Password    string
	IOTPassword string
	IOTHost     string
	TokenFolder string

	Send          bool
	BackupInflux  bool
	BackupGrafana bool
}

// Defaults returns the built-in parameter values.
func Defaults() Params {
	return Params{
		Folder:      ".",
		TokenFolder: ".",
	}
}

// Resolve layers defaults, the config file, the working directory .env and
// the process environment into a Params value. configPath may contain a
// leading ~; a missing config file or .env is not an error.
func Resolve(configPath, workDir string, getenv func(string) string) (Params, error) {
	params := Defaults()

	expanded, err := ExpandPath(configPath)
	if err != nil {
		return params, err
	}
	if err := applyFile(&params, expanded); err != nil {
		return params, err
	}
	if err := applyEnvFile(&params, filepath.Join(workDir, EnvFileName)); err != nil {
		return params, err
	}
	applyEnv(&params, getenv)
	return params, nil
}

// ExpandPath expands a leading ~ in path via the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", wrapExpandErr(path, err)
	}
	return expanded, nil
}

// applyEnv overlays IOTPROV_* process environment variables.
func applyEnv(p *Params, getenv func(string) string) {
	overlay(p, func(key string) (string, bool) {
		v := getenv(key)
		return v, v != ""
	})
}

// applyEnvFile overlays IOTPROV_* keys from a .env file, if one exists.
func applyEnvFile(p *Params, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return wrapReadErr(path, err)
	}
	env, err := parseEnvContent(string(data), path)
	if err != nil {
		return err
	}
	overlay(p, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok && v != ""
	})
	return nil
}

// overlay copies non-empty values from lookup into the matching fields.
func overlay(p *Params, lookup func(string) (string, bool)) {
	fields := []struct {
		key string
		dst *string
	}{
		{EnvIP, &p.IP},
		{EnvUsername, &p.Username},
		{EnvPassword, &p.Password},
		{EnvIOTPassword, &p.IOTPassword},
		{EnvIOTHost, &p.IOTHost},
		{EnvFolder, &p.Folder},
		{EnvTokenFolder, &p.TokenFolder},
	}
	for _, f := range fields {
		if v, ok := lookup(f.key); ok {
			*f.dst = v
		}
	}
}
