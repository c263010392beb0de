// Hoofy Todo: session todo list MCP server
//
// Gives any MCP-capable AI coding tool a todo list it manages for itself
// during a session, plus a reminder the host can inject before each turn.
//
// Usage:
//
//	hoofy-todo serve [--config path]   # Start MCP server (stdio transport)
//	hoofy-todo version                 # Print the version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HendryAvila/hoofy-todo/internal/config"
	"github.com/HendryAvila/hoofy-todo/internal/logging"
	todoserver "github.com/HendryAvila/hoofy-todo/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("hoofy-todo v%s\n", todoserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s, cleanup, err := todoserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdio := server.NewStdioServer(s)
	err = stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("server stopped")
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Hoofy Todo v%s: session todo list MCP server

Usage:
  hoofy-todo serve [--config path]   Start the MCP server (stdio transport)
  hoofy-todo version                 Print the version

Configuration:
  ~/.hoofy-todo/config.toml, then --config, then environment:
    HOOFY_TODO_LOG_LEVEL    debug, info, warn, error
    HOOFY_TODO_LOG_FORMAT   json or console
    HOOFY_TODO_JOURNAL      true to record tool events in SQLite
    HOOFY_TODO_DATA_DIR     journal directory (default ~/.hoofy-todo)

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "hoofy-todo": {
        "command": "hoofy-todo",
        "args": ["serve"]
      }
    }
  }
`, todoserver.Version)
}
