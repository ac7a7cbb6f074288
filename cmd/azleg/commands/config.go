package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"azlegapi/lib/configutil"
	"azlegapi/lib/platforms/azleg"
	"azlegapi/lib/wsdlcache"
)

type Config struct {
	Username         string           `json:"username" validate:"required"`
	Password         string           `json:"password" validate:"required"`
	WSDL             string           `json:"wsdl" validate:"omitempty,url"`
	PasswordDigest   bool             `json:"password_digest"`
	Timeout          string           `json:"timeout"`
	RateLimit        float64          `json:"rate_limit" validate:"gte=0"`
	Burst            int              `json:"burst" validate:"gte=0"`
	UserAgent        string           `json:"user_agent"`
	CloudflareBypass bool             `json:"cloudflare_bypass"`
	Cache            wsdlcache.Config `json:"cache"`
	DumpDir          string           `json:"dump_dir"`
}

const (
	envUsername = "AZLEG_USERNAME"
	envPassword = "AZLEG_PASSWORD"
)

// loadConfig reads the config file and its .local override, then applies
// credentials from the environment. A missing file is fine as long as the
// environment provides the credentials.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if username, ok := os.LookupEnv(envUsername); ok {
		cfg.Username = username
	}
	if password, ok := os.LookupEnv(envPassword); ok {
		cfg.Password = password
	}

	err = configutil.Validate(cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) options() (azleg.Options, error) {
	var timeout time.Duration
	if cfg.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return azleg.Options{}, fmt.Errorf("parse timeout: %w", err)
		}
	}
	return azleg.Options{
		WSDL:             cfg.WSDL,
		Username:         cfg.Username,
		Password:         cfg.Password,
		PasswordDigest:   cfg.PasswordDigest,
		Timeout:          timeout,
		RateLimit:        cfg.RateLimit,
		Burst:            cfg.Burst,
		UserAgent:        cfg.UserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
		DumpDir:          cfg.DumpDir,
	}, nil
}
