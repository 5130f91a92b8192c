// Command fiberplan runs the exposure-planning loop against a target
// catalog: for each exposure it searches dithered pointings for the
// assignment with the most observed targets, strips observed time,
// and repeats until the catalog is exhausted or a coverage threshold
// is met.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fiberplan/fiberplan/internal/assign"
	"github.com/fiberplan/fiberplan/internal/auth"
	"github.com/fiberplan/fiberplan/internal/catalog"
	"github.com/fiberplan/fiberplan/internal/config"
	"github.com/fiberplan/fiberplan/internal/opsmetrics"
	"github.com/fiberplan/fiberplan/internal/opsserver"
	"github.com/fiberplan/fiberplan/internal/planner"
	"github.com/fiberplan/fiberplan/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fiberplan",
		Short: "Plans a sequence of fiber-to-target exposures from a target catalog",
	}

	var cfgFile string
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cobra.OnInitialize(func() { initConfig(cfgFile) })

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the exposure-planning loop",
		RunE:  runPlan,
	}
	bindPlanFlags(planCmd)
	root.AddCommand(planCmd)

	return root
}

func bindPlanFlags(cmd *cobra.Command) {
	cmd.Flags().String("assigner", "", "assignment strategy: naive, draining, or new (required)")
	cmd.Flags().String("input", "", "catalog input path (required)")
	cmd.Flags().String("output", "", "report output path (empty: no file)")
	cmd.Flags().Float64("fract", 0, "coverage fraction threshold (required)")
	cmd.Flags().Float64("ra", 0, "nominal pointing center RA, degrees")
	cmd.Flags().Float64("dec", 0, "nominal pointing center DEC, degrees")
	cmd.Flags().Float64("posang", 0, "nominal position angle, degrees")
	cmd.Flags().Float64("dposang", 4, "position-angle dither half-width, degrees")
	cmd.Flags().Int("nposang", 5, "position-angle grid count")
	cmd.Flags().Float64("dptg", 4.0/320.0, "pointing dither half-width, degrees")
	cmd.Flags().Int("nptg", 5, "pointing grid count per axis")
	cmd.Flags().String("ops-addr", "", "address to serve /healthz, /readyz, /metrics on (empty: disabled)")
	cmd.Flags().String("auth-token", "", "bearer token required on the ops surface when set")
	cmd.Flags().Int("workers", 0, "worker goroutines for the dither search (0: GOMAXPROCS)")

	_ = viper.BindPFlags(cmd.Flags())
	_ = viper.BindPFlag("ops_addr", cmd.Flags().Lookup("ops-addr"))
	_ = viper.BindPFlag("auth_token", cmd.Flags().Lookup("auth-token"))
}

func initConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fiberplan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("FIBERPLAN")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.Assigner == "" {
		return errors.New("fiberplan: assigner is required")
	}
	if cfg.Input == "" {
		return errors.New("fiberplan: input is required")
	}
	if cfg.Fract == 0 {
		return errors.New("fiberplan: fract is required")
	}

	kind, err := assign.Parse(cfg.Assigner)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("fiberplan: opening catalog: %w", err)
	}
	defer f.Close()

	targets, err := catalog.Parse(f, logger)
	if err != nil {
		return fmt.Errorf("fiberplan: parsing catalog: %w", err)
	}
	logger.Info("catalog loaded", "targets", len(targets))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OpsAddr != "" {
		authCfg := auth.Config{Enabled: cfg.AuthToken != "", Token: cfg.AuthToken}
		srv := opsserver.NewServer(cfg.OpsAddr, logger, authCfg)
		go func() {
			logger.Info("starting ops server", "addr", cfg.OpsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops server error", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.HTTPServer().Shutdown(shutdownCtx)
		}()
	}

	raDeg, decDeg := cfg.RA, cfg.Dec
	if !cfg.HasCenter {
		c := planner.DefaultCenter(targets)
		raDeg, decDeg = report.CenterRADec(c)
		logger.Info("derived default pointing center", "ra", raDeg, "dec", decDeg)
	}

	var reportOut io.Writer
	if cfg.Output != "" {
		reportFile, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("fiberplan: creating report: %w", err)
		}
		defer reportFile.Close()
		reportOut = reportFile
	}

	pcfg := planner.Config{
		Assigner:   kind,
		RADeg:      raDeg,
		DecDeg:     decDeg,
		PosAngDeg:  cfg.PosAng,
		DPosAngDeg: cfg.DPosAng,
		NPosAng:    cfg.NPosAng,
		DPtgDeg:    cfg.DPtg,
		NPtg:       cfg.NPtg,
		Fract:      cfg.Fract,
		Workers:    cfg.Workers,
	}

	onExposure := func(exp planner.Exposure) {
		opsmetrics.RecordExposure(exp.Result.Len(), exp.FiberFraction, exp.CoverageFraction)
	}

	exposures, err := planner.Run(ctx, targets, pcfg, reportOut, os.Stdout, onExposure, logger)
	if err != nil {
		return fmt.Errorf("fiberplan: planning: %w", err)
	}

	logger.Info("planning complete", "exposures", len(exposures))
	return nil
}
