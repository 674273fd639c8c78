package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/coilworks/coilnest/internal/config"
	"github.com/coilworks/coilnest/internal/helicoil"
	"github.com/coilworks/coilnest/internal/nest"
	"github.com/coilworks/coilnest/internal/report"
	"github.com/coilworks/coilnest/internal/sweep"
	"github.com/coilworks/coilnest/internal/tui"
)

var (
	configFile string
	verbose    bool

	outDir string
	prefix string

	sweepFrom float64
	sweepTo   float64
	sweepStep float64
	parallel  bool
	xlsxPath  string
	plot      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coilnest",
		Short: "two-coil compression spring nest design",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "design file (yaml), defaults to the reference nest")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	designCmd := &cobra.Command{
		Use:   "design",
		Short: "solve the nest and write the coil records",
		RunE:  runDesign,
	}
	designCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	designCmd.Flags().StringVar(&prefix, "prefix", "nest", "output file prefix")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the solid stress reserve",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 10.0, "first reserve value (MPa)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 110.0, "last reserve value (MPa)")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 10.0, "reserve step (MPa)")
	sweepCmd.Flags().BoolVar(&parallel, "parallel", false, "solve iterations concurrently")
	sweepCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write results to a workbook")
	sweepCmd.Flags().BoolVar(&plot, "plot", false, "plot nest OD against the reserve")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "sweep with a live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&sweepFrom, "from", 10.0, "first reserve value (MPa)")
	liveCmd.Flags().Float64Var(&sweepTo, "to", 110.0, "last reserve value (MPa)")
	liveCmd.Flags().Float64Var(&sweepStep, "step", 10.0, "reserve step (MPa)")

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list available spring materials",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range helicoil.MaterialNames() {
				fmt.Println(name)
			}
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the reference design file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("design file written to %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(designCmd, sweepCmd, liveCmd, materialsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadNestConfig() (nest.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nest.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg.ToNest()
}

func runDesign(cmd *cobra.Command, args []string) error {
	nc, err := loadNestConfig()
	if err != nil {
		return err
	}

	n, err := nest.New(nc)
	if err != nil {
		return err
	}

	start := time.Now()
	sol, err := n.Solve()
	if err != nil {
		var se *nest.SolveError
		if errors.As(err, &se) && se.Diagnostic != nil {
			slog.Error("solver did not converge",
				"iterations", se.Diagnostic.Iterations,
				"evaluations", se.Diagnostic.Evaluations,
				"residual_norm", se.Diagnostic.Norm)
		}
		return err
	}
	slog.Debug("solved",
		"iterations", sol.Diagnostic.Iterations,
		"evaluations", sol.Diagnostic.Evaluations,
		"elapsed", time.Since(start))

	fmt.Println(report.NestReport(sol))

	for _, rec := range []helicoil.CoilData{sol.Outer, sol.Inner} {
		data, err := rec.MarshalCSV()
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s-%s.txt", prefix, slug(rec.Label))
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		fmt.Printf("coil record written to %s\n", path)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	nc, err := loadNestConfig()
	if err != nil {
		return err
	}

	reserves := sweep.Values(sweepFrom, sweepTo, sweepStep)
	if len(reserves) == 0 {
		return fmt.Errorf("empty sweep range %g..%g step %g", sweepFrom, sweepTo, sweepStep)
	}

	start := time.Now()
	var points []sweep.Point
	if parallel {
		points = sweep.RunParallel(nc, reserves)
	} else {
		points = sweep.Run(nc, reserves)
	}
	slog.Debug("sweep finished", "iterations", len(points), "elapsed", time.Since(start))

	fmt.Println(report.SweepTable(points))

	if plot {
		fmt.Println()
		fmt.Println(report.ODPlot(points, 70, 12))
	}
	if xlsxPath != "" {
		if err := report.WriteWorkbook(xlsxPath, points); err != nil {
			return err
		}
		fmt.Printf("workbook written to %s\n", xlsxPath)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	nc, err := loadNestConfig()
	if err != nil {
		return err
	}

	reserves := sweep.Values(sweepFrom, sweepTo, sweepStep)
	if len(reserves) == 0 {
		return fmt.Errorf("empty sweep range %g..%g step %g", sweepFrom, sweepTo, sweepStep)
	}

	m := tui.NewModel(nc, reserves)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tui.Model); ok {
		fmt.Println(report.SweepTable(fm.Points()))
	}
	return nil
}

func slug(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "-")
}
