package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/five82/aperture/internal/config"
	"github.com/five82/aperture/internal/credentials"
	"github.com/five82/aperture/internal/logging"
	"github.com/five82/aperture/internal/logtail"
	"github.com/five82/aperture/internal/notify"
	"github.com/five82/aperture/internal/prefs"
	"github.com/five82/aperture/internal/resource"
	"github.com/five82/aperture/internal/state"
	"github.com/five82/aperture/internal/studio"
	"github.com/five82/aperture/internal/submit"
	"github.com/five82/aperture/internal/ui"
)

const (
	toastTTL = 5 * time.Second
	// crashLogLines is how much of the log file is echoed when the UI fails.
	crashLogLines = 20
)

// Options configure the aperture application.
type Options struct {
	ConfigPath string
	EnvPath    string
	APIURL     string    // overrides config and environment when set
	PrefsPath  string    // empty uses default ~/.config/aperture/prefs.toml
	Stderr     io.Writer // receives the log tail after a UI failure; nil discards it
	Version    string    // reported in the User-Agent header
}

// Run boots the aperture TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnvFile(opts.EnvPath); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if url := strings.TrimSpace(opts.APIURL); url != "" {
		cfg.APIURL = url
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := studio.NewClient(cfg.APIURL,
		studio.WithCredentials(credentials.File(cfg.TokenFile)),
		studio.WithTimeout(cfg.RequestTimeout),
		studio.WithLogger(logger),
		studio.WithUserAgent(userAgent(opts.Version)),
	)
	if err != nil {
		return fmt.Errorf("init studio client: %w", err)
	}
	logger.Info("starting", "api", cfg.APIURL, "version", opts.Version)

	queue := notify.NewQueue(toastTTL)
	store := &state.Store{}
	loaders := NewLoaders(client, store, resource.DefaultFallbacks(), newReporter(logger, queue))

	err = ui.Run(ui.Options{
		Context:   ctx,
		Source:    loaders,
		Store:     store,
		Notify:    queue,
		Enquiries: func() *submit.Pipeline[submit.Enquiry] {
			return submit.NewPipeline(submit.EnquirySender(client, time.Now), submit.EnquiryBusyMessage, logger)
		},
		Reviews:   submit.NewPipeline(submit.ReviewSender(client), submit.ReviewBusyMessage, logger),
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("ui stopped", "error", err)
		dumpLogTail(opts.Stderr, cfg.Log.File, logger)
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("stopped")
	return nil
}

func userAgent(version string) string {
	if version = strings.TrimSpace(version); version == "" {
		return ""
	}
	return "aperture/" + version
}

// dumpLogTail copies the last lines of the log file to w so a crash is
// visible after the alternate screen is gone.
func dumpLogTail(w io.Writer, path string, logger *slog.Logger) {
	if w == nil {
		return
	}
	lines, err := logtail.Read(path, crashLogLines)
	if err != nil {
		logger.Warn("read log tail", "error", err)
		return
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "last %d log lines from %s:\n", len(lines), path)
	for _, line := range lines {
		fmt.Fprintln(w, logtail.Plain(line))
	}
}
