// Command api runs the wallet service's HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prashant0321/wallet-service/internal/config"
	"github.com/prashant0321/wallet-service/internal/container"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "./configs", "path to config directory")
	configName := flag.String("config-name", "config", "config file name (without extension)")
	envOnly := flag.Bool("env-only", false, "load config only from environment variables")
	showVersion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("wallet-service %s (built %s, commit %s)\n", version, buildTime, gitCommit)
		os.Exit(0)
	}

	var cfg *config.Config
	var err error
	if *envOnly {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(*configPath, *configName)
	}
	if err != nil {
		log.Printf("warning: failed to load config: %v; using development defaults", err)
		cfg = config.Development()
	}

	cfg.App.Version = version
	cfg.App.BuildTime = buildTime
	cfg.App.GitCommit = gitCommit

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.New(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := c.Run(); err != nil {
		log.Printf("server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := c.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
