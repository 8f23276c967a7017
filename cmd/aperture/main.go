package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/aperture/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/aperture/config.toml)")
	envPath := flag.String("env", ".env", "dotenv file loaded before the config (optional)")
	apiURL := flag.String("api", "", "studio API base URL (overrides config and environment)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		EnvPath:    *envPath,
		APIURL:     *apiURL,
		PrefsPath:  *prefsPath,
		Stderr:     os.Stderr,
		Version:    version,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "aperture: %v\n", err)
		return 1
	}
	return 0
}
