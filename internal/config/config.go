package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the harness settings.
type Config struct {
	Env         string        `yaml:"env" env:"OCRSPACE_ENV" env-default:"dev"`
	APIKey      string        `yaml:"api_key" env:"OCRSPACE_APIKEY" env-default:"helloworld"`
	Endpoint    string        `yaml:"endpoint" env:"OCRSPACE_ENDPOINT"`
	Timeout     time.Duration `yaml:"timeout" env:"OCRSPACE_TIMEOUT" env-default:"60s"`
	Concurrency int           `yaml:"concurrency" env:"OCRSPACE_CONCURRENCY" env-default:"4"`
	ServerAddr  string        `yaml:"server" env:"OCRSPACE_SERVER"`
	RedisAddr   string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisDB     int           `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	Params      Params        `yaml:"params"`

	// Set from the command line.
	Inputs   []string `yaml:"-"`
	Reencode bool     `yaml:"-"`
	Serve    bool     `yaml:"-"`
}

// Params are the recognition parameters. Boolean values are "true", "false"
// or "unset"; an empty value keeps the default.
type Params struct {
	Language                   string `yaml:"language" env:"OCRSPACE_LANGUAGE" env-default:"auto"`
	Filetype                   string `yaml:"filetype" env:"OCRSPACE_FILETYPE"`
	OCREngine                  string `yaml:"ocr_engine" env:"OCRSPACE_ENGINE" env-default:"2"`
	OverlayRequired            string `yaml:"overlay_required" env:"OCRSPACE_OVERLAY_REQUIRED" env-default:"false"`
	DetectOrientation          string `yaml:"detect_orientation" env:"OCRSPACE_DETECT_ORIENTATION"`
	CreateSearchablePdf        string `yaml:"create_searchable_pdf" env:"OCRSPACE_CREATE_SEARCHABLE_PDF"`
	SearchablePdfHideTextLayer string `yaml:"searchable_pdf_hide_text_layer" env:"OCRSPACE_SEARCHABLE_PDF_HIDE_TEXT_LAYER"`
	Scale                      string `yaml:"scale" env:"OCRSPACE_SCALE" env-default:"true"`
	Table                      string `yaml:"table" env:"OCRSPACE_TABLE" env-default:"true"`
}

// Load reads the configuration from os.Args, the config file and the environment.
func Load() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse reads flags from args, then the config file if one is given, then
// the environment. Positional arguments are the inputs to recognize.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("ocrspace", flag.ContinueOnError)
	path := fs.String("config", "", "path to config file")
	reencode := fs.Bool("reencode", false, "decode local images and send them as base64 PNG")
	serve := fs.Bool("serve", false, "serve stored results after processing the inputs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := read(fetchConfigPath(*path))
	if err != nil {
		return nil, err
	}
	cfg.Inputs = fs.Args()
	cfg.Reencode = *reencode
	cfg.Serve = *serve

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read env: %w", err)
		}
		return &cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Inputs) == 0 && !c.Serve {
		return errors.New("at least one file, URL or -serve is required")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Serve && c.ServerAddr == "" {
		return errors.New("-serve requires server address (OCRSPACE_SERVER)")
	}
	return nil
}

// fetchConfigPath picks the config path.
// Priority: flag > env > none.
func fetchConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}
