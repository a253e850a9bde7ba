package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/bryan-buckman/mvphub/internal/app"
	"github.com/bryan-buckman/mvphub/internal/config"
	"github.com/bryan-buckman/mvphub/internal/database"
	"github.com/bryan-buckman/mvphub/internal/hub"
	"github.com/bryan-buckman/mvphub/internal/logging"
	"github.com/bryan-buckman/mvphub/internal/metrics"
	"github.com/bryan-buckman/mvphub/internal/opml"
	"github.com/bryan-buckman/mvphub/internal/server"
	"github.com/bryan-buckman/mvphub/internal/storage"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "mvphub",
		Short:        "Personal dashboard for Microsoft MVPs",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $"+config.ConfigPathEnv+")")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(exportOPMLCmd())
	rootCmd.AddCommand(importOPMLCmd())
	rootCmd.AddCommand(feedsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runtime bundles what every command needs.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	store  database.Store
	hub    *hub.Hub
}

func (rt *runtime) Close() error { return rt.store.Close() }

func openRuntime(rec metrics.Recorder) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	if cfg.Storage.Driver == database.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.DSN), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	store, err := database.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	logger.Debug("storage opened", "type", store.DatabaseType())

	h := hub.Load(storage.New(store, logger, rec), hub.Options{Logger: logger})
	return &runtime{cfg: cfg, logger: logger, store: store, hub: h}, nil
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			rec := metrics.NewCollector(reg)

			rt, err := openRuntime(rec)
			if err != nil {
				return err
			}
			defer rt.Close()
			if addr != "" {
				rt.cfg.Server.Addr = addr
			}

			srv, err := server.New(rt.hub, server.Options{
				Logger:   rt.logger,
				Metrics:  rec,
				Gatherer: reg,
				Controller: app.Options{
					SearchDelay: rt.cfg.Search.Delay,
					NoticeTTL:   rt.cfg.Notices.TTL,
				},
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, rt.cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (overrides config)")
	return cmd
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every collection as a JSON export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(metrics.Nop{})
			if err != nil {
				return err
			}
			defer rt.Close()

			data, err := json.MarshalIndent(rt.hub.Export(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			path := hub.ExportFilename(time.Now())
			if len(args) == 1 {
				path = args[0]
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported %s to %s\n", humanize.Bytes(uint64(len(data))), path)
			return nil
		},
	}
}

func exportOPMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-opml",
		Short: "Print the feed subscriptions as OPML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(metrics.Nop{})
			if err != nil {
				return err
			}
			defer rt.Close()

			data, err := opml.Export("MVP Hub Feeds", rt.hub.Feeds(), time.Now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
}

func importOPMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-opml <file>",
		Short: "Subscribe to the feeds listed in an OPML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			feeds, err := opml.Parse(f)
			if err != nil {
				return err
			}

			rt, err := openRuntime(metrics.Nop{})
			if err != nil {
				return err
			}
			defer rt.Close()

			added := rt.hub.ImportFeeds(feeds)
			fmt.Printf("Imported %d of %d feeds\n", added, len(feeds))
			return nil
		},
	}
}

func feedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feeds",
		Short: "List feed subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(metrics.Nop{})
			if err != nil {
				return err
			}
			defer rt.Close()

			feeds := rt.hub.Feeds()
			if len(feeds) == 0 {
				fmt.Println("No feeds yet. Use 'mvphub import-opml' to add some.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tSTATUS\tURL")
			for _, f := range feeds {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Category, f.Status, f.URL)
			}
			return w.Flush()
		},
	}
}
