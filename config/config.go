package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type Config struct {
	Development     bool
	Port            int
	BaseURL         string
	SourceDirectory string
	DataDirectory   string
	TokensSecret    string

	Site          Site
	CMS           CMS
	Forms         map[string]Form
	OCR           *OCR
	Notifications Notifications
}

type Site struct {
	Title         string
	Description   string
	DefaultLocale string
	Locales       []string
}

type CMS struct {
	Endpoint     string
	Token        string
	PreviewToken string
	CacheTTL     time.Duration
}

type Form struct {
	Required    []string
	WebhookURL  string
	RedirectURL string
}

type OCR struct {
	Model       string
	APIKey      string
	MaxFileSize int64
}

type Notifications struct {
	Telegram *Telegram
}

type Telegram struct {
	Token  string
	ChatID int64
}

// Parse reads the configuration from the default files and paths.
func Parse() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetDefault("port", 8080)
	v.SetDefault("site.defaultLocale", "en")
	v.SetDefault("cms.cacheTTL", time.Minute)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	conf := &Config{}
	err = v.Unmarshal(conf)
	if err != nil {
		return nil, err
	}

	err = conf.validate()
	if err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) validate() error {
	var err error

	c.SourceDirectory, err = filepath.Abs(c.SourceDirectory)
	if err != nil {
		return err
	}

	c.DataDirectory, err = filepath.Abs(c.DataDirectory)
	if err != nil {
		return err
	}

	if c.Port < 0 {
		return errors.New("config: Port should be a positive number or 0")
	}

	baseUrl, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	baseUrl.Path = ""

	if baseUrl.String() != c.BaseURL {
		return fmt.Errorf("config: BaseURL should be %s", baseUrl.String())
	}

	if c.TokensSecret == "" {
		return errors.New("config: TokensSecret is missing")
	}

	if c.Site.DefaultLocale == "" {
		return errors.New("config: Site.DefaultLocale is missing")
	}

	if lo.Contains(c.Site.Locales, c.Site.DefaultLocale) {
		return errors.New("config: Site.Locales must not include the default locale")
	}

	if c.CMS.Endpoint != "" {
		if _, err := url.Parse(c.CMS.Endpoint); err != nil {
			return fmt.Errorf("config: CMS.Endpoint is invalid: %w", err)
		}
	}

	for name, form := range c.Forms {
		if form.WebhookURL != "" {
			if _, err := url.Parse(form.WebhookURL); err != nil {
				return fmt.Errorf("config: form %s has invalid WebhookURL: %w", name, err)
			}
		}
	}

	return nil
}
