package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type cliOptions struct {
	settingsPath  string
	commandPort   int
	telemetryPort int
	logLevel      string
	configDir     string
	feedback      string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "jafdtc",
		Short:         "Avionics configuration upload for DCS",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, svc, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			closer, err := initLogging(filepath.Join(appDataDir(), "logs"), settings.LogLevel, false)
			if err != nil {
				return err
			}
			defer closer.Close()
			return runGUI(settings, svc)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.settingsPath, "settings", "", "settings file (default is the user config dir)")
	pf.IntVar(&opts.commandPort, "command-port", 0, "TCP port of the cockpit command listener")
	pf.IntVar(&opts.telemetryPort, "telemetry-port", 0, "UDP port telemetry is exported to")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&opts.configDir, "config-dir", "", "directory holding <airframe>/*.json configurations")
	pf.StringVar(&opts.feedback, "feedback", "", "upload feedback: none, audio, lights or both")

	root.AddCommand(
		newSendCmd(opts),
		newEncodeCmd(opts),
		newListenCmd(opts),
		newHistoryCmd(),
		newUpdateCmd(),
	)
	return root
}

// settings loads the settings file and applies any flags set on cmd.
func (o *cliOptions) settings(cmd *cobra.Command) (Settings, *SettingsService, error) {
	var svc *SettingsService
	if o.settingsPath != "" {
		svc = newSettingsServiceAt(o.settingsPath)
	} else {
		svc = NewSettingsService()
	}
	s := svc.GetSettings()

	flags := cmd.Flags()
	if flags.Changed("command-port") {
		s.CommandPort = o.commandPort
	}
	if flags.Changed("telemetry-port") {
		s.TelemetryPort = o.telemetryPort
	}
	if flags.Changed("log-level") {
		s.LogLevel = o.logLevel
	}
	if flags.Changed("config-dir") {
		s.ConfigDir = o.configDir
	}
	if flags.Changed("feedback") {
		s.UploadFeedback = FeedbackMode(o.feedback)
	}
	if err := s.validate(); err != nil {
		return s, nil, err
	}
	return s, svc, nil
}

// cliLogging sends log records to stderr as well as the log file.
func cliLogging(s Settings) (io.Closer, error) {
	return initLogging(filepath.Join(appDataDir(), "logs"), s.LogLevel, true)
}

func readConfiguration(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseConfiguration(data)
}

func newCommandChannel(s Settings) *CommandChannel {
	return NewCommandChannel("127.0.0.1", s.CommandPort, time.Duration(s.SendTimeoutMs)*time.Millisecond)
}

func newSendCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <config.json>",
		Short: "Upload one configuration to the running simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			closer, err := cliLogging(settings)
			if err != nil {
				return err
			}
			defer closer.Close()

			cfg, err := readConfiguration(args[0])
			if err != nil {
				return err
			}
			session, err := NewSession(settings)
			if err != nil {
				return err
			}
			db, err := initDB()
			if err != nil {
				return err
			}
			defer db.Close()

			uploader := NewUploader(session, newCommandChannel(settings), NewUploadHistoryService(db))
			if !uploader.BuildAndSend(cfg) {
				return fmt.Errorf("upload of %q failed", cfg.Header().Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %q\n", cfg.Header().Name)
			return nil
		},
	}
}

func newEncodeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <config.json>",
		Short: "Print the encoded command line for a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			cfg, err := readConfiguration(args[0])
			if err != nil {
				return err
			}
			session, err := NewSession(settings)
			if err != nil {
				return err
			}
			catalog, err := session.Catalog(cfg.Header().Airframe)
			if err != nil {
				return err
			}
			seq := BuildSequence(cfg, catalog, settings.UploadFeedback)
			fmt.Fprintln(cmd.OutOrStdout(), Encode(seq))
			return nil
		},
	}
}

// newListenCmd runs the telemetry trigger without a window: cockpit
// controls still step through configurations and start uploads, and every
// effect is printed.
func newListenCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Watch telemetry and upload on the cockpit upload control",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			closer, err := cliLogging(settings)
			if err != nil {
				return err
			}
			defer closer.Close()

			session, err := NewSession(settings)
			if err != nil {
				return err
			}
			db, err := initDB()
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			uploader := NewUploader(session, newCommandChannel(settings), NewUploadHistoryService(db))
			dispatcher := newQueueDispatcher(64)
			service := NewUploadService(session, uploader, dispatcher)
			service.setEmitter(func(name string, data any) {
				fmt.Fprintf(out, "%s %v\n", name, data)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			receiver := NewTelemetryReceiver("127.0.0.1", settings.TelemetryPort)
			return runHeadless(ctx, settings, service, receiver, dispatcher)
		},
	}
}

// runHeadless drives service from source until ctx is cancelled. Trigger
// and upload effects run on dispatcher in place of the desktop main thread;
// service must have been built with the same dispatcher.
func runHeadless(ctx context.Context, settings Settings, service *UploadService, source TelemetrySource, dispatcher *queueDispatcher) error {
	trigger := NewUploadTrigger(service, dispatcher, settings.PinOnStartup)
	monitor := NewExportMonitor(source, func(exporting bool) {
		dispatcher.Dispatch(func() { service.SetExporting(exporting) })
	})

	if err := source.Start(trigger.HandleSample); err != nil {
		return err
	}
	defer source.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(ctx) })
	g.Go(func() error { return monitor.Run(ctx) })
	return g.Wait()
}

func newHistoryCmd() *cobra.Command {
	var limit int
	var csvPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent uploads or export them as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := initDB()
			if err != nil {
				return err
			}
			defer db.Close()
			history := NewUploadHistoryService(db)

			if csvPath != "" {
				return history.ExportCSV(csvPath)
			}
			recs, err := history.Recent(limit)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of uploads to show")
	cmd.Flags().StringVar(&csvPath, "csv", "", "export the whole history to this file")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for a newer release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := NewUpdateService()
			info, err := svc.CheckForUpdate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !info.UpdateAvailable {
				fmt.Fprintf(out, "jafdtc %s is up to date\n", info.CurrentVersion)
				return nil
			}
			fmt.Fprintf(out, "jafdtc %s is available (running %s)\n", info.LatestVersion, info.CurrentVersion)
			if !apply {
				return nil
			}
			if err := svc.ApplyUpdate(); err != nil {
				return err
			}
			fmt.Fprintln(out, "update applied, restart jafdtc")
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "download and install the update")
	return cmd
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrAlreadyRunning) {
		slog.Info("handed off to running instance")
		return 0
	}
	fmt.Fprintln(os.Stderr, "jafdtc:", err)
	return 1
}
