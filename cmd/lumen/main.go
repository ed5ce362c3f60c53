package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumenchat/lumen/pkg/logger"
	"github.com/lumenchat/lumen/server"
)

const rootLongDesc string = `Serve a browser chat for a local Ollama-compatible backend.

lumen streams generations to the page, shows the model's <think> segment
in a collapsible block, and keeps a running token/energy tally for the
session.

Examples:
  lumen
  lumen --model deepseek-r1 --backend http://localhost:11434
  lumen --config lumen.toml --listen :9090`

const rootShortDesc string = "Browser chat for a local LLM"

type serveCommander struct {
	listenAddr string
	backendURL string
	model      string
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "lumen",
		Short: rootShortDesc,
		Long:  rootLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on (default :8080)")
	cmd.Flags().StringVarP(&cmder.backendURL, "backend", "b", "", "Inference backend URL (default http://localhost:11434)")
	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "Default model for generation requests")
	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to TOML config file")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run() error {
	cfg, err := c.buildConfig()
	if err != nil {
		return err
	}

	log := logger.New(c.debug)
	defer log.Sync()

	log.Info("lumen chat server starting",
		zap.String("listen", cfg.ListenAddr),
		zap.String("backend", cfg.BackendURL),
		zap.String("model", cfg.Model),
		zap.Bool("debug", c.debug),
	)

	srv, err := server.New(cfg, log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer srv.Close()

	if c.configPath != "" {
		if err := srv.WatchConfig(c.configPath); err != nil {
			log.Warn("config watching disabled", zap.Error(err))
		}
	}

	return srv.Run()
}

// buildConfig layers flags over the config file over the defaults.
func (c *serveCommander) buildConfig() (server.Config, error) {
	cfg := server.DefaultConfig()

	if c.configPath != "" {
		loaded, err := server.LoadConfig(c.configPath)
		if err != nil {
			return server.Config{}, err
		}
		cfg = loaded
	}

	if c.listenAddr != "" {
		cfg.ListenAddr = c.listenAddr
	}
	if c.backendURL != "" {
		cfg.BackendURL = c.backendURL
	}
	if c.model != "" {
		cfg.Model = c.model
	}

	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
