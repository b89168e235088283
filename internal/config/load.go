package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/iotprov/internal/envfile"
	"github.com/conn-castle/iotprov/internal/messages"
)

// fileConfig mirrors the on-disk TOML layout of ~/.iotprov.toml.
type fileConfig struct {
	OPC struct {
		IP       string `toml:"ip"`
		Username string `toml:"username"`
		Password string `toml:"password"`
	} `toml:"opc"`
	Gateway struct {
		Host     string `toml:"host"`
		Password string `toml:"password"`
	} `toml:"gateway"`
	Paths struct {
		Folder      string `toml:"folder"`
		TokenFolder string `toml:"token_folder"`
	} `toml:"paths"`
}

// applyFile overlays values from the TOML config file, if one exists.
func applyFile(p *Params, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return wrapReadErr(path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf(messages.ConfigParseFileFmt, path, err)
	}

	setIfPresent(&p.IP, fc.OPC.IP)
	setIfPresent(&p.Username, fc.OPC.Username)
	setIfPresent(&p.Password, fc.OPC.Password)
	setIfPresent(&p.IOTHost, fc.Gateway.Host)
	setIfPresent(&p.IOTPassword, fc.Gateway.Password)
	setIfPresent(&p.Folder, fc.Paths.Folder)
	setIfPresent(&p.TokenFolder, fc.Paths.TokenFolder)
	return nil
}

// parseEnvContent parses .env content, attributing errors to path.
func parseEnvContent(content, path string) (map[string]string, error) {
	env, err := envfile.Parse(content)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigParseFileFmt, path, err)
	}
	return env, nil
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func wrapReadErr(path string, err error) error {
	return fmt.Errorf(messages.ConfigReadFileFmt, path, err)
}

func wrapExpandErr(path string, err error) error {
	return fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
}
