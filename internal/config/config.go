package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
		StaticDir   string   `yaml:"static_dir"`
	} `yaml:"server"`
	Quiz struct {
		QuestionsFile   string `yaml:"questions_file"`
		AnswerDelimiter string `yaml:"answer_delimiter"`
		SessionWindow   string `yaml:"session_window"`
		ProgressTTL     string `yaml:"progress_ttl"`
	} `yaml:"quiz"`
	Data struct {
		Dir             string `yaml:"dir"`
		ValidIDsFile    string `yaml:"valid_ids_file"`
		UsedIDsFile     string `yaml:"used_ids_file"`
		SessionsFile    string `yaml:"sessions_file"`
		ResultsCSVFile  string `yaml:"results_csv_file"`
		ResultsJSONFile string `yaml:"results_json_file"`
		ProgressFile    string `yaml:"progress_file"`
	} `yaml:"data"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Load reads YAML config from path. A missing file yields the defaults so the
// service can run with nothing but a questions file next to it.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// QuestionsPath resolves the question source location.
func (c Config) QuestionsPath() string {
	if c.Quiz.QuestionsFile != "" {
		return c.Quiz.QuestionsFile
	}
	return "questions.txt"
}

// DataPath resolves a state file inside the data directory, applying the
// default file name when the config leaves it empty.
func (c Config) DataPath(configured, defaultName string) string {
	name := configured
	if name == "" {
		name = defaultName
	}
	dir := c.Data.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}
