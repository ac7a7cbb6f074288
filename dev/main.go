package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	devenv "azlegapi/dev/env"
	"azlegapi/lib/wsdlcache"
)

const liveTestTemplate = `{
  // credentials issued by the Arizona Legislature, used by TestLive
  username: "",
  password: "",
  session_id: 121,
  bill: "HB2001",
}
`

func writeLiveTestTemplate() error {
	path, err := devenv.GetStateFilePath("azleg.json5")
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		slog.Info("live test config already exists", "path", path)
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	err = os.WriteFile(path, []byte(liveTestTemplate), 0600)
	if err != nil {
		return err
	}
	slog.Info("wrote live test config, fill in your credentials", "path", path)
	return nil
}

func createWSDLCache(ctx context.Context) error {
	cache, err := wsdlcache.Open(ctx, wsdlcache.Config{File: "<dev_state>/wsdl.db"})
	if err != nil {
		return fmt.Errorf("create wsdl cache: %w", err)
	}
	purged, err := cache.Purge(ctx)
	if err != nil {
		cache.Close()
		return err
	}
	slog.Info("wsdl cache ready", "purged", purged)
	return cache.Close()
}

func create(ctx context.Context, recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	state := filepath.Join("dev", ".state")
	if recreate {
		err = os.RemoveAll(state)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll(state, 0777)
	if err != nil {
		return err
	}

	err = writeLiveTestTemplate()
	if err != nil {
		return err
	}
	return createWSDLCache(ctx)
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(context.Background(), *recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created sucessfully!")
}
