package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfalab/flowdyn/internal/config"
	"github.com/mfalab/flowdyn/internal/export"
	"github.com/mfalab/flowdyn/internal/mfa"
	"github.com/mfalab/flowdyn/internal/tui"
	"github.com/mfalab/flowdyn/internal/viz"
)

var (
	dataDir   string
	verbose   bool
	plot      bool
	browse    bool
	doExport  bool
	jsonPath  string
	tolerance float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowdyn",
		Short: "dynamic material flow analysis",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flowdyn", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose logging")

	runCmd := &cobra.Command{
		Use:   "run [definition.yaml]",
		Short: "run a model definition",
		Args:  cobra.ExactArgs(1),
		RunE:  runDefinition,
	}

	demoCmd := &cobra.Command{
		Use:   "demo [preset]",
		Short: "run a built-in demo model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDemo,
	}

	for _, cmd := range []*cobra.Command{runCmd, demoCmd} {
		cmd.Flags().BoolVar(&plot, "plot", false, "plot stocks after the run")
		cmd.Flags().BoolVar(&browse, "browse", false, "open the interactive browser after the run")
		cmd.Flags().BoolVar(&doExport, "export", false, "export the run to the data directory")
		cmd.Flags().StringVar(&jsonPath, "json", "", "write a json snapshot to this path")
		cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "mass balance tolerance")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets and registered types",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a starter definition file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeStarter,
	}

	rootCmd.AddCommand(runCmd, demoCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func runDefinition(cmd *cobra.Command, args []string) error {
	def, err := config.Load(args[0])
	if err != nil {
		return err
	}
	return execute(def)
}

func runDemo(cmd *cobra.Command, args []string) error {
	name := "steel"
	if len(args) > 0 {
		name = args[0]
	}
	def := config.GetPreset(name)
	if def == nil {
		return fmt.Errorf("unknown preset %q (have: %v)", name, config.ListPresets())
	}
	return execute(def)
}

func execute(def *config.Definition) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	sys, err := config.Build(def, logger)
	if err != nil {
		return err
	}
	if err := sys.Drive(); err != nil {
		return err
	}

	violations, err := sys.CheckMassBalance(tolerance)
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderBalanceReport(violations))

	if plot {
		if err := plotStocks(sys, def.TimeLetter); err != nil {
			return err
		}
	}
	if jsonPath != "" {
		if err := export.SaveJSON(jsonPath, sys); err != nil {
			return err
		}
		fmt.Println("snapshot written to", jsonPath)
	}
	if doExport {
		store := export.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(sys)
		if err != nil {
			return err
		}
		fmt.Println("exported run", runID)
	}
	if browse {
		return tui.Run(sys, def.TimeLetter)
	}
	return nil
}

func plotStocks(sys *mfa.System, timeLetter string) error {
	if timeLetter == "" {
		timeLetter = "t"
	}
	names := make([]string, 0, len(sys.Stocks()))
	for name := range sys.Stocks() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		panel, err := viz.StockPanel(sys.Stocks()[name], timeLetter, 0, 0)
		if err != nil {
			return err
		}
		fmt.Println(panel)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	registry := config.NewRegistry()

	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		def := config.GetPreset(name)
		fmt.Printf("  %-10s %d processes, %d flows, %d stocks\n",
			name, len(def.Processes), len(def.Flows), len(def.Stocks))
	}

	stockTypes := registry.StockTypes()
	sort.Strings(stockTypes)
	fmt.Println("stock types:")
	for _, name := range stockTypes {
		fmt.Println("  " + name)
	}

	lifetimeTypes := registry.LifetimeTypes()
	sort.Strings(lifetimeTypes)
	fmt.Println("lifetime types:")
	for _, name := range lifetimeTypes {
		fmt.Println("  " + name)
	}
	return nil
}

func writeStarter(cmd *cobra.Command, args []string) error {
	if err := config.Save(args[0], config.GetPreset("steel")); err != nil {
		return err
	}
	fmt.Println("definition written to", args[0])
	return nil
}
