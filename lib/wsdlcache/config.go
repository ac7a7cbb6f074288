package wsdlcache

import (
	devenv "azlegapi/dev/env"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const DefaultTTL = 24 * time.Hour

// Config selects where service descriptions are cached. File is a local
// sqlite database, Url a remote libsql database.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url" validate:"omitempty,url"`
	AuthToken string `json:"auth_token"`
	// TTL is a duration string, defaults to DefaultTTL.
	TTL string `json:"ttl"`
}

func (config Config) Enabled() bool {
	return config.File != "" || config.Url != ""
}

func (config Config) ttl() (time.Duration, error) {
	if config.TTL == "" {
		return DefaultTTL, nil
	}
	ttl, err := time.ParseDuration(config.TTL)
	if err != nil {
		return 0, fmt.Errorf("parse ttl: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("ttl must be positive, got %s", config.TTL)
	}
	return ttl, nil
}

func (config Config) OpenDB() (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, fmt.Errorf("neither a file nor a url was specified")
		}
		dbpath, err := devenv.ResolvePath(config.File)
		if err != nil {
			return nil, err
		}
		inMemory := dbpath == ":memory:"
		if !inMemory {
			_, statErr := os.Stat(dbpath)
			if os.IsNotExist(statErr) {
				f, err := os.Create(dbpath)
				if err != nil {
					return nil, err
				}
				f.Close()
			}
		}

		db, err := sql.Open("sqlite", dbpath)
		if err != nil {
			return nil, err
		}
		// sqlite only tolerates a single writer, and every connection to
		// :memory: is a different database
		db.SetMaxOpenConns(1)
		if inMemory {
			return db, nil
		}
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	return sql.Open("libsql", config.Url+"?"+values.Encode())
}
