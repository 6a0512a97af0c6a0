// Command firelog posts events to a stream from the command line.
//
// It is a thin adapter over the library: load a config file, post one event,
// flush, exit. Useful for smoke-testing a stream or emitting one-off
// operational events from scripts.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firelog/firelog/pkg/firelog"
	"github.com/firelog/firelog/pkg/firelog/backend"
	"github.com/firelog/firelog/pkg/firelog/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "firelog",
		Short:         "Ship structured events to a stream",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(postCmd())
	return cmd
}

func postCmd() *cobra.Command {
	var (
		configPath   string
		payloadJSON  string
		partitionKey string
		contextPairs []string
		sqlitePath   string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "post <event-name>",
		Short: "Post one event and wait for delivery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromFile(configPath)
			if err != nil {
				return err
			}

			var payload map[string]any
			if payloadJSON != "" {
				if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
					return fmt.Errorf("parse --payload: %w", err)
				}
			}

			extra, err := parsePairs(contextPairs)
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			opts := []firelog.Option{firelog.WithLogger(logger)}
			if sqlitePath != "" {
				sink, err := backend.NewSQLite(sqlitePath)
				if err != nil {
					return err
				}
				defer sink.Close()
				opts = append(opts, firelog.WithBackend(sink))
			}

			client, err := firelog.New(append(opts, firelog.WithConfig(cfg))...)
			if err != nil {
				return err
			}

			postOpts := []firelog.PostOption{}
			if partitionKey != "" {
				postOpts = append(postOpts, firelog.WithPartitionKey(partitionKey))
			}
			if len(extra) > 0 {
				postOpts = append(postOpts, firelog.WithContext(extra))
			}

			if err := client.PostEvent(args[0], payload, postOpts...); err != nil {
				return err
			}

			// Flush before exit; delivery failures are logged, not returned.
			client.Worker().Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "firelog.yaml", "config file (yaml or json)")
	cmd.Flags().StringVarP(&payloadJSON, "payload", "p", "", "event body as a JSON object")
	cmd.Flags().StringVarP(&partitionKey, "partition-key", "k", "", "partition key (default: random)")
	cmd.Flags().StringArrayVar(&contextPairs, "context", nil, "context attribute as key=value (repeatable)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "write to a local SQLite file instead of the stream")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log deliveries")

	return cmd
}

// parsePairs turns key=value flags into a context map.
func parsePairs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --context %q, want key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
