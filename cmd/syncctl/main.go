package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xelth-com/goodstrack/internal/app"
	"github.com/xelth-com/goodstrack/internal/config"
	"github.com/xelth-com/goodstrack/internal/logger"
	"github.com/xelth-com/goodstrack/internal/sync"
	"go.uber.org/zap"
)

var (
	application *app.App
	interval    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "syncctl",
	Short: "Reconcile the local parcel store with the remote backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		zl, err := logger.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		application, err = app.New(cmd.Context(), cfg, zl)
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application != nil {
			application.Close()
			_ = application.Logger.Sync()
		}
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload every local user and parcel",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := application.Sync.PushAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("push: %w", err)
		}
		return printJSON(result)
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local collections with the remote contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := application.Sync.PullAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("pull: %w", err)
		}
		return printJSON(result)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Push periodically until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Remote.Configured() {
			return fmt.Errorf("remote backend is not configured")
		}
		if interval > 0 {
			application.Sync.SetInterval(interval)
		}
		application.Sync.Start()
		application.Logger.Info("👀 Watching", zap.Duration("interval", application.Sync.Status().Interval))

		<-cmd.Context().Done()
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local record counts and remote availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return printJSON(struct {
			sync.Status
			LocalUsers   int `json:"localUsers"`
			LocalParcels int `json:"localParcels"`
		}{
			Status:       application.Sync.Status(),
			LocalUsers:   len(application.Local.Users(ctx)),
			LocalParcels: len(application.Local.Parcels(ctx)),
		})
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	watchCmd.Flags().DurationVar(&interval, "interval", 0, "Push period (default from SYNC_AUTO_INTERVAL)")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
