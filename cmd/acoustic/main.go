package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/banshee-data/acoustic.space/internal/api"
	"github.com/banshee-data/acoustic.space/internal/config"
	"github.com/banshee-data/acoustic.space/internal/dataset"
	"github.com/banshee-data/acoustic.space/internal/db"
	"github.com/banshee-data/acoustic.space/internal/render"
	"github.com/banshee-data/acoustic.space/internal/version"
)

var (
	listen      = flag.String("listen", config.DefaultListen, "Listen address")
	baseDir     = flag.String("base-dir", "", "Directory holding the dataset and asset folders (default: directory of the executable)")
	configFile  = flag.String("config", "", "Path to a dashboard JSON config file")
	assetsHost  = flag.String("assets-host", config.DefaultAssetsHost, "URL prefix for the echarts JS assets")
	debug       = flag.Bool("debug", false, "Mount the /debug/ pages with a SQL console over the dataset")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg *config.DashboardConfig, set map[string]bool) {
	if set["listen"] {
		cfg.Listen = listen
	}
	if set["base-dir"] {
		cfg.BaseDir = baseDir
	}
	if set["assets-host"] {
		cfg.AssetsHost = assetsHost
	}
	if set["debug"] {
		cfg.Debug = debug
	}
}

// resolveBaseDir returns dir, or the directory of the running executable
// when dir is empty.
func resolveBaseDir(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

// initialControls converts the configured initial state into controls.
func initialControls(cfg *config.DashboardConfig) (render.Controls, error) {
	field, err := render.ParseColorBy(cfg.GetColorBy())
	if err != nil {
		return render.Controls{}, err
	}
	c := render.Controls{
		ColorBy:   field,
		PointSize: cfg.GetPointSize(),
		Opacity:   cfg.GetOpacity(),
		Highlight: render.HighlightAll,
	}
	return c, c.Validate()
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.EmptyDashboardConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadDashboardConfig(*configFile); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, set)

	base, err := resolveBaseDir(cfg.GetBaseDir())
	if err != nil {
		log.Fatalf("failed to resolve base directory: %v", err)
	}
	paths := cfg.ResolvePaths(base)

	table, err := dataset.Load(paths.DataFile)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	defaults, err := initialControls(cfg)
	if err != nil {
		log.Fatalf("invalid initial controls: %v", err)
	}

	mux := api.NewServer(table, api.Config{
		Defaults:   defaults,
		AssetsHost: cfg.GetAssetsHost(),
		AudioDir:   paths.AudioDir,
		ImageDir:   paths.ImageDir,
	}).ServeMux()

	if cfg.GetDebug() {
		mirror, err := db.NewMirror(table)
		if err != nil {
			log.Fatalf("failed to build sql mirror: %v", err)
		}
		defer mirror.Close()
		if err := mirror.AttachAdminRoutes(mux); err != nil {
			log.Fatalf("failed to attach debug routes: %v", err)
		}
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		server := &http.Server{
			Addr:    cfg.GetListen(),
			Handler: api.LoggingMiddleware(mux),
		}

		go func() {
			log.Printf("serving %d vocalizations on %s", table.Len(), server.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			if err := server.Close(); err != nil {
				log.Printf("HTTP server force close error: %v", err)
			}
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
