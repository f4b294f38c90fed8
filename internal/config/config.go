package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Ingest   IngestConfig `yaml:"ingest"`
	Server   ServerConfig `yaml:"server"`
	News     NewsConfig   `yaml:"news"`
	LogLevel string       `yaml:"log_level"`
}

type IngestConfig struct {
	// OutputDir is the root the normalized artifacts are written under.
	OutputDir        string        `yaml:"output_dir"`
	RansomwareURL    string        `yaml:"ransomware_url"`
	MISPClusterURL   string        `yaml:"misp_cluster_url"`
	AggregatorExport string        `yaml:"aggregator_export"`
	// ActorSource picks which actor source an "all" ingest run uses. The two
	// actor sources write the same artifacts, so they are never run together.
	ActorSource string `yaml:"actor_source"`
	Timeout          time.Duration `yaml:"timeout"`
	Retry            RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// DataDir is where the server reads ingested artifacts from; normally
	// the same directory ingest writes to.
	DataDir         string        `yaml:"data_dir"`
	LiveFeedURL     string        `yaml:"live_feed_url"`
	BuildTimeURL    string        `yaml:"build_time_url"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Timeout         time.Duration `yaml:"timeout"`
}

type NewsConfig struct {
	// EmergingKeywords drive the "emerging" channel heuristic. Membership is
	// a product decision, so the list lives in configuration rather than in
	// the filter code.
	EmergingKeywords []string `yaml:"emerging_keywords"`
}

// DefaultEmergingKeywords is the default title heuristic for the "emerging"
// news channel.
var DefaultEmergingKeywords = []string{"urgent", "zero-day", "0-day", "exploit", "exploited", "critical"}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Ingest.OutputDir == "" {
		c.Ingest.OutputDir = "public"
	}
	if c.Ingest.RansomwareURL == "" {
		c.Ingest.RansomwareURL = "https://www.ransomware.live/rss.xml"
	}
	if c.Ingest.MISPClusterURL == "" {
		c.Ingest.MISPClusterURL = "https://raw.githubusercontent.com/MISP/misp-galaxy/main/clusters/threat-actor.json"
	}
	if c.Ingest.AggregatorExport == "" {
		c.Ingest.AggregatorExport = "public/actors.public.json"
	}
	if c.Ingest.ActorSource == "" {
		c.Ingest.ActorSource = "misp"
	}
	if c.Ingest.Timeout == 0 {
		c.Ingest.Timeout = 30 * time.Second
	}
	if c.Ingest.Retry.MaxAttempts == 0 {
		c.Ingest.Retry.MaxAttempts = 3
	}
	if c.Ingest.Retry.InitialBackoff == 0 {
		c.Ingest.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Ingest.Retry.MaxBackoff == 0 {
		c.Ingest.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = c.Ingest.OutputDir
	}
	if c.Server.RefreshInterval == 0 {
		c.Server.RefreshInterval = 5 * time.Minute
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if len(c.News.EmergingKeywords) == 0 {
		c.News.EmergingKeywords = DefaultEmergingKeywords
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
