package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lunfardo314/easybf/runner"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration. Loaded from YAML, flags override it
type Config struct {
	Variant       runner.Variant `yaml:"variant"`
	AllowUnclosed bool           `yaml:"allow_unclosed"`
	Trace         bool           `yaml:"trace"`
	Debug         bool           `yaml:"debug"`
	Progress      time.Duration  `yaml:"progress"`
}

func DefaultConfig() Config {
	return Config{
		Variant: runner.Folding,
	}
}

// LoadConfig reads YAML config on top of defaults. Unknown keys are rejected
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	ret := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if ret.Progress < 0 {
		return Config{}, fmt.Errorf("config: negative progress interval %s", ret.Progress)
	}
	return ret, nil
}
