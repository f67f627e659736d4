package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adiorany3/ransumruminansia/internal/advisor"
	"github.com/adiorany3/ransumruminansia/internal/config"
	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/minerals"
	"github.com/adiorany3/ransumruminansia/internal/optimizer"
	"github.com/adiorany3/ransumruminansia/internal/ration"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
	"github.com/adiorany3/ransumruminansia/pkg/constants"
	"github.com/adiorany3/ransumruminansia/pkg/output"
	"github.com/adiorany3/ransumruminansia/pkg/validation"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	modeFlag := flag.String("mode", "", "mode override: manual, optimize, minerals")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine mode and output format (CLI overrides take precedence)
	mode := conf.Mode
	if *modeFlag != "" {
		mode = *modeFlag
	}
	if mode == "" {
		mode = constants.ModeOptimize
	}
	if err := validation.ValidateMode(mode); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Resolve the animal's requirement bounds.
	spec, err := conf.RequirementSpec()
	if err != nil {
		logger.Fatal("failed to parse animal configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	bounds, err := requirements.Resolve(spec)
	if err != nil {
		logger.Fatal("failed to resolve nutrient requirements",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	schema := feed.DefaultSchema()
	table, err := conf.FeedTable(schema)
	if err != nil {
		logger.Fatal("failed to build feed table",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch mode {
	case constants.ModeManual:
		runManual(logger, conf, spec, bounds, table, outputFormat)
	case constants.ModeOptimize:
		runOptimize(logger, conf, spec, bounds, table, outputFormat)
	case constants.ModeMinerals:
		runMinerals(logger, conf, spec, bounds, table, schema, outputFormat)
	}
}

// runManual evaluates the user-authored mixture from the config.
func runManual(logger *zap.Logger, conf *config.Configuration, spec requirements.Spec,
	bounds *requirements.Bounds, table *feed.Table, outputFormat string) {
	mix := conf.ManualMixture(table)
	eval, err := ration.Evaluate(mix, table, bounds)
	if err != nil {
		logger.Fatal("failed to evaluate mixture",
			zap.String("op", "main.runManual"),
			zap.Error(err),
		)
	}
	render(outputFormat, mix, eval, table, bounds)
	if outputFormat == constants.OutputFormatPretty {
		output.HerdTotals(spec.HeadCount, eval)
		output.PrettyAdvice(advisor.Advise(advisor.Context{
			Spec: spec, Bounds: bounds, Mixture: mix, Evaluation: eval, Table: table,
		}))
	}
}

// runOptimize solves the least-cost ration.
func runOptimize(logger *zap.Logger, conf *config.Configuration, spec requirements.Spec,
	bounds *requirements.Bounds, table *feed.Table, outputFormat string) {
	req := optimizer.Request{
		Table:   table,
		Bounds:  bounds,
		Options: conf.SolverOptions(),
	}
	switch {
	case conf.Ration.TotalMassKg > 0:
		target := conf.Ration.TotalMassKg
		req.TotalMassKg = &target
	case conf.Ration.TotalMassKg == 0:
		target := bounds.DryMatterIntakeKg
		req.TotalMassKg = &target
	}

	mix, eval, err := optimizer.OptimizeRation(logger, req)
	if err != nil {
		logger.Fatal("failed to optimize ration",
			zap.String("op", "main.runOptimize"),
			zap.Error(err),
		)
	}
	render(outputFormat, mix, eval, table, bounds)
	if outputFormat == constants.OutputFormatPretty {
		output.HerdTotals(spec.HeadCount, eval)
		output.PrettyAdvice(advisor.Advise(advisor.Context{
			Spec: spec, Bounds: bounds, Mixture: mix, Evaluation: eval, Table: table,
		}))
	}
}

// runMinerals diagnoses the base ration's mineral gaps and plans the
// least-cost supplement mix.
func runMinerals(logger *zap.Logger, conf *config.Configuration, spec requirements.Spec,
	bounds *requirements.Bounds, table *feed.Table, schema *feed.Schema, outputFormat string) {
	mix := conf.ManualMixture(table)
	eval, err := ration.Evaluate(mix, table, bounds)
	if err != nil {
		logger.Fatal("failed to evaluate base ration",
			zap.String("op", "main.runMinerals"),
			zap.Error(err),
		)
	}

	def := minerals.AnalyzeGap(eval, bounds)
	if outputFormat == constants.OutputFormatPretty {
		output.PrettyDeficiency(def)
	}
	if len(def.Deficient()) == 0 {
		logger.Info("no mineral deficits in base ration",
			zap.String("op", "main.runMinerals"),
		)
		return
	}

	supplements, err := conf.MineralTable(schema)
	if err != nil {
		logger.Fatal("failed to build mineral supplement table",
			zap.String("op", "main.runMinerals"),
			zap.Error(err),
		)
	}
	plan, err := minerals.OptimizeSupplement(logger, def, supplements, conf.SolverOptions())
	if err != nil {
		logger.Fatal("failed to plan mineral supplements",
			zap.String("op", "main.runMinerals"),
			zap.Error(err),
		)
	}
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyPlan(plan, supplements)
	case constants.OutputFormatCSV:
		output.CsvPlan(plan, supplements)
	}
}

func render(outputFormat string, mix ration.Mixture, eval *ration.Evaluation,
	table *feed.Table, bounds *requirements.Bounds) {
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyEvaluation(mix, eval, table, bounds)
	case constants.OutputFormatCSV:
		output.CsvEvaluation(mix, eval, table, bounds)
	}
}
