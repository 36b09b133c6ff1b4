package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for the YAML overlay. Only fields present
// in the file override the environment values.
type fileConfig struct {
	Port  *int  `yaml:"port"`
	Debug *bool `yaml:"debug"`

	DatabaseURL *string `yaml:"database_url"`
	SQLitePath  *string `yaml:"sqlite_path"`
	RabbitMQURL *string `yaml:"rabbitmq_url"`

	LLM struct {
		Provider *string `yaml:"provider"`
		APIKey   *string `yaml:"api_key"`
		Model    *string `yaml:"model"`
		URL      *string `yaml:"url"` // for ollama
	} `yaml:"llm"`

	Exec struct {
		URL     *string `yaml:"url"`
		APIKey  *string `yaml:"api_key"`
		APIHost *string `yaml:"api_host"`
	} `yaml:"exec"`
}

// applyFile overlays values from a YAML file onto cfg
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setInt(&cfg.Port, fc.Port)
	setBool(&cfg.Debug, fc.Debug)
	setString(&cfg.DatabaseURL, fc.DatabaseURL)
	setString(&cfg.SQLitePath, fc.SQLitePath)
	setString(&cfg.RabbitMQURL, fc.RabbitMQURL)
	setString(&cfg.LLMProvider, fc.LLM.Provider)
	setString(&cfg.LLMAPIKey, fc.LLM.APIKey)
	setString(&cfg.LLMModel, fc.LLM.Model)
	setString(&cfg.OllamaURL, fc.LLM.URL)
	setString(&cfg.ExecURL, fc.Exec.URL)
	setString(&cfg.ExecAPIKey, fc.Exec.APIKey)
	setString(&cfg.ExecAPIHost, fc.Exec.APIHost)

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
