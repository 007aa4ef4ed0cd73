package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kpiawards/internal/server"
	"kpiawards/internal/util"
)

var (
	servePort int
	serveDev  bool
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server.

--port only applies when config.toml does not set [server] port.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&servePort, "port", 0, "Server port")
	cmd.Flags().BoolVar(&serveDev, "dev", false, "Development mode (redirects unknown paths to the frontend dev server)")
	cmd.Flags().BoolVar(&serveOpen, "open", false, "Open the browser once the server is listening")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()

	if servePort > 0 && !env.info.PortSpecified {
		env.cfg.Server.Port = servePort
	}
	if serveDev {
		env.cfg.Server.DevMode = true
	}

	backend, err := env.openBackend(cmd.Context())
	if err != nil {
		return err
	}

	srv := server.NewServer(env.cfg, env.dataDir, backend, env.log)
	url := fmt.Sprintf("http://localhost:%d", env.cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		env.log.Info("server starting",
			zap.Int("port", env.cfg.Server.Port),
			zap.String("backend", backend.Name),
			zap.String("data_dir", env.dataDir),
		)
		errCh <- srv.Run()
	}()

	if serveOpen {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			env.log.Warn("could not open browser", zap.String("url", url), zap.Error(err))
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		_ = backend.Close(context.Background())
		return err
	case <-quit:
	}

	env.log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
