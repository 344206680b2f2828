package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type PortalConfig struct {
	BaseURL        string `yaml:"base_url"`
	UserAgent      string `yaml:"user_agent"`
	AcceptLanguage string `yaml:"accept_language"`
}

type LogicConfig struct {
	DelayMS    int `yaml:"delay_ms"`
	TimeoutSec int `yaml:"timeout_sec"`
	MaxRetries int `yaml:"max_retries"`
	StartYear  int `yaml:"start_year"`
}

// LocaleConfig carries the marker strings and patterns the extractors match
// against. The portal's markup has no stable schema across decades, so these
// are tuned against observed pages and kept as data rather than code.
type LocaleConfig struct {
	PublishedMarker  map[string]string `yaml:"published_marker"`
	SourceMarker     map[string]string `yaml:"source_marker"`
	EntryForceMarker map[string]string `yaml:"entry_force_marker"`
	GermanNotice     map[string]string `yaml:"german_notice"`
	ChapterPattern   string            `yaml:"chapter_pattern"`
	TitleClass       string            `yaml:"title_class"`
	TextClass        string            `yaml:"text_class"`
	BodyID           string            `yaml:"body_id"`
}

type StorageConfig struct {
	OutDir   string `yaml:"out_dir"`
	MongoURI string `yaml:"mongo_uri"`
	Database string `yaml:"database"`
}

type Config struct {
	Portal  PortalConfig  `yaml:"portal"`
	Logic   LogicConfig   `yaml:"logic"`
	Locale  LocaleConfig  `yaml:"locale"`
	Storage StorageConfig `yaml:"storage"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config usable without any file on disk.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.Portal.BaseURL == "" {
		c.Portal.BaseURL = "https://www.ejustice.just.fgov.be"
	}
	if c.Portal.UserAgent == "" {
		c.Portal.UserAgent = "justel_spider/1.0 (legislation ingestion; contact: ops@localhost)"
	}
	if c.Portal.AcceptLanguage == "" {
		c.Portal.AcceptLanguage = "fr-BE,fr;q=0.9,nl-BE;q=0.8"
	}
	if c.Logic.DelayMS == 0 {
		c.Logic.DelayMS = 500
	}
	if c.Logic.TimeoutSec == 0 {
		c.Logic.TimeoutSec = 30
	}
	if c.Logic.MaxRetries == 0 {
		c.Logic.MaxRetries = 3
	}
	if c.Logic.StartYear == 0 {
		c.Logic.StartYear = 1945
	}
	if c.Locale.PublishedMarker == nil {
		c.Locale.PublishedMarker = map[string]string{
			"fr": "publié le",
			"nl": "bekendgemaakt op",
		}
	}
	if c.Locale.SourceMarker == nil {
		c.Locale.SourceMarker = map[string]string{
			"fr": "Source :",
			"nl": "Bron :",
		}
	}
	if c.Locale.EntryForceMarker == nil {
		c.Locale.EntryForceMarker = map[string]string{
			"fr": "Entrée en vigueur :",
			"nl": "Inwerkingtreding :",
		}
	}
	if c.Locale.GermanNotice == nil {
		c.Locale.GermanNotice = map[string]string{
			"fr": "traduction allemande",
			"nl": "Duitse vertaling",
		}
	}
	if c.Locale.ChapterPattern == "" {
		c.Locale.ChapterPattern = `(?:CHAPITRE|HOOFDSTUK)\s+([IVXLC0-9]+(?:er)?)\s*\.?\s*[-–—]\s*(\S[^\n<]*)`
	}
	if c.Locale.TitleClass == "" {
		c.Locale.TitleClass = "title-text"
	}
	if c.Locale.TextClass == "" {
		c.Locale.TextClass = "plain-text"
	}
	if c.Locale.BodyID == "" {
		c.Locale.BodyID = "law-text"
	}
	if c.Storage.OutDir == "" {
		c.Storage.OutDir = "data"
	}
	if c.Storage.Database == "" {
		c.Storage.Database = "justel"
	}
}
