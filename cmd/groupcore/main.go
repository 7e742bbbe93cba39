// Command groupcore imports group bundles into a repository and prints the
// structure derived from them as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"groupcore/internal/config"
	"groupcore/internal/core"
	"groupcore/internal/logging"
	"groupcore/pkg/domain"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command line and always releases the store, also when
// the command fails.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if terr := a.teardown(); err == nil {
		err = terr
	}
	return err
}

// app is the state shared by subcommands once the root command has run its
// setup hook.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	trace      bool

	cfg        *config.Config
	logger     *zap.Logger
	store      domain.Store
	closeStore func() error
	svc        *core.Service

	expvarMetrics *core.ExpvarMetricsRecorder
	promRegistry  *prometheus.Registry
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "groupcore",
		Short:         "Derive finite group structure from stored group records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd.Context())
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.trace, "trace", false, "write operation spans to stderr as JSON lines")

	cmd.AddCommand(
		a.importCmd(),
		a.showCmd(),
		a.latticeCmd(),
		a.seriesCmd(),
		a.elementCmd(),
		a.exportCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			RunE: func(*cobra.Command, []string) error {
				return a.print(map[string]string{"version": Version})
			},
		},
	)
	return cmd
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger

	store, closeStore, err := core.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	a.store, a.closeStore = store, closeStore

	opts := []core.ServiceOption{
		core.WithLogger(logger),
		core.WithCacheSize(cfg.Cache.Size),
	}
	switch cfg.Metrics.Exporter {
	case config.MetricsExpvar:
		a.expvarMetrics = core.NewExpvarMetricsRecorder("")
		opts = append(opts, core.WithMetricsRecorder(a.expvarMetrics))
	case config.MetricsPrometheus:
		a.promRegistry = prometheus.NewRegistry()
		rec, err := core.NewPrometheusRecorder(a.promRegistry)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, core.WithMetricsRecorder(rec))
	}
	if a.trace {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(a.stderr)))
	}
	a.svc, err = core.NewService(store, opts...)
	if err != nil {
		return err
	}
	logger.Debug("groupcore ready",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("metrics", cfg.Metrics.Exporter))
	return nil
}

func (a *app) teardown() error {
	if a.logger == nil {
		return nil
	}
	if a.expvarMetrics != nil {
		a.logger.Info("metrics", zap.Any("snapshot", a.expvarMetrics.Snapshot()))
	}
	if a.promRegistry != nil {
		families, err := a.promRegistry.Gather()
		if err != nil {
			a.logger.Warn("gather metrics", zap.Error(err))
		}
		for _, mf := range families {
			a.logger.Info("metrics", zap.String("family", mf.GetName()), zap.Int("series", len(mf.GetMetric())))
		}
	}
	var err error
	if a.closeStore != nil {
		err = a.closeStore()
	}
	_ = a.logger.Sync()
	return err
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
