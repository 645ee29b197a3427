package serverrun

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/max-niederman/beryl/internal/config"
	"github.com/max-niederman/beryl/internal/runtime"
	httpserver "github.com/max-niederman/beryl/internal/server/http"
	mintsvc "github.com/max-niederman/beryl/internal/services/mint"
	pebblestore "github.com/max-niederman/beryl/internal/storage/pebble"
	logpkg "github.com/max-niederman/beryl/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

type Options struct {
	DataDir       string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Run starts the mint service and HTTP server and blocks until ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context: layer a
	// local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	storeDir := filepath.Join(opts.DataDir, "store")
	rt, err := runtime.Open(runtime.Options{
		DataDir:       storeDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	// Build process-wide logger using env/ApplyConfig; defaults come from
	// the loaded config.
	logCfg := &logpkg.Config{
		Level:  getenvDefault("BERYL_LOG_LEVEL", opts.Config.Log.Level),
		Format: getenvDefault("BERYL_LOG_FORMAT", opts.Config.Log.Format),
	}
	procLogger, err := logpkg.ApplyConfig(logCfg)
	if err != nil {
		// Fallback to a sane default
		lvl := logpkg.InfoLevel
		if l, e := logpkg.ParseLevel(logCfg.Level); e == nil {
			lvl = l
		}
		procLogger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
	}

	// Redirect stdlib logs (e.g., Pebble) to our logger
	logpkg.RedirectStdLog(procLogger)

	epoch, err := opts.Config.EpochTime()
	if err != nil {
		return err
	}
	procLogger.Info("Starting Beryl server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Int("generator_id", opts.Config.GeneratorID),
		logpkg.Str("epoch", epoch.UTC().Format(time.RFC3339)),
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Str("level", logCfg.Level),
		logpkg.Str("format", logCfg.Format),
	)

	svc, err := mintsvc.NewWithLogger(rt, procLogger.With(logpkg.Component("mint")))
	if err != nil {
		return err
	}
	hsrv := httpserver.NewWithService(rt, svc, procLogger.With(logpkg.Component("http")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("http server", logpkg.Err(err))
		}
	}()

	<-sctx.Done()
	// Shut the server down before the service and runtime so in-flight mints
	// finish against live state, then the final state save lands in the store.
	hsrv.Close()
	wg.Wait()
	if err := svc.Close(); err != nil {
		procLogger.Error("close mint service", logpkg.Err(err))
	}
	return nil
}
