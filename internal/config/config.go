package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	FirstMark string  `yaml:"first-mark" env:"FIRST_MARK" env-default:"X"`
	Players   Players `yaml:"players"`
	Console   Console `yaml:"console"`
}

type Players struct {
	Cross  string `yaml:"cross" env:"PLAYER_CROSS" env-default:"Player X"`
	Nought string `yaml:"nought" env:"PLAYER_NOUGHT" env-default:"Player O"`
}

type Console struct {
	// Plain disables colors and screen clearing.
	Plain bool `yaml:"plain" env:"CONSOLE_PLAIN" env-default:"false"`
}

// Load - reads the config file, falling back to the environment when the file is missing.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}
