package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Redis  RedisConfig  `yaml:"redis"`
	Kafka  KafkaConfig  `yaml:"kafka"`
	Seed   SeedConfig   `yaml:"seed"`
	Chat   ChatConfig   `yaml:"chat"`
	Worker WorkerConfig `yaml:"worker"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	GroupID            string   `yaml:"group_id"`
}

// SeedConfig mirrors the store's seed parameters; empty fields fall back to
// the store defaults.
type SeedConfig struct {
	Count      int      `yaml:"count"`
	Names      []string `yaml:"names"`
	Airports   []string `yaml:"airports"`
	DaySpacing int      `yaml:"day_spacing"`
	RandSeed   int64    `yaml:"rand_seed"`
}

type ChatConfig struct {
	HistoryTTLMinutes int `yaml:"history_ttl_minutes"`
	HistoryWindow     int `yaml:"history_window"`
}

type WorkerConfig struct {
	CompletionSweepMinutes int `yaml:"completion_sweep_minutes"`
}

// LLMConfig carries assistant credentials, taken from the environment rather
// than the config file.
type LLMConfig struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	MaxTokens   int64         `envconfig:"MAX_TOKENS" split_words:"true" default:"2000"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func LoadLLM() (*LLMConfig, error) {
	var cfg LLMConfig
	if err := envconfig.Process("LLM", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load llm config: %w", err)
	}
	return &cfg, nil
}
