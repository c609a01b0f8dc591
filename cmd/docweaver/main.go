package main

import (
	"os"

	"docweaver/internal/config"
	"docweaver/internal/server"
	"docweaver/internal/version"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

func main() {
	// Logs go to stderr; stdout belongs to the MCP stdio transport.
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Optional .env for the extraction API key.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig("docweaver.json")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.Infof("DocWeaver v%s starting...", version.Version)
	logrus.Infof("Configuration loaded: max_pages=%d, default_depth=%d, timeout=%dms",
		cfg.MaxPages, cfg.DefaultDepth, cfg.RequestTimeoutMs)

	s, cleanup := server.New(cfg)
	defer cleanup()

	// Serve over stdin/stdout until the peer closes the connection.
	if err := mcpserver.ServeStdio(s); err != nil {
		logrus.Fatalf("Server error: %v", err)
	}

	logrus.Info("DocWeaver shutting down. Goodbye!")
}
