package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type LedgerConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Author   string `toml:"author"`
}

type RegistryConfig struct {
	Path string `toml:"path"`
}

// PipelineConfig carries per-node timeouts in seconds. Every external
// capability call runs under one of these.
type PipelineConfig struct {
	ExtractionTimeout int `toml:"extraction_timeout_seconds"`
	GenerationTimeout int `toml:"generation_timeout_seconds"`
	MintTimeout       int `toml:"mint_timeout_seconds"`
}

type ExtractionPrompts struct {
	Document string `toml:"document"`
}

type AnalysisPrompts struct {
	System  string `toml:"system"`
	Synergy string `toml:"synergy"`
}

type HypothesisPrompts struct {
	System   string `toml:"system"`
	Baseline string `toml:"baseline"`
}

type Config struct {
	LLM        LLMConfig         `toml:"llm"`
	Ledger     LedgerConfig      `toml:"ledger"`
	Registry   RegistryConfig    `toml:"registry"`
	Pipeline   PipelineConfig    `toml:"pipeline"`
	Extraction ExtractionPrompts `toml:"extraction"`
	Analysis   AnalysisPrompts   `toml:"analysis"`
	Hypothesis HypothesisPrompts `toml:"hypothesis"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
