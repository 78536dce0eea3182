package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"mmugram/internal/config"
	"mmugram/internal/host"
	"mmugram/internal/logging"
	"mmugram/internal/plot"
	"mmugram/internal/report"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const Version = "1.0.0"

// cpuNameEnv overrides platform detection when --cpu-name is not given.
const cpuNameEnv = "MMUGRAM_CPU_NAME"

type options struct {
	input      string
	output     string
	attempt    int
	cpuName    string
	configFile string
	reportFile string
	logLevel   string
}

func loadEnvironment() {
	logger := logging.GetLogger()

	// Try to load .env file from current directory
	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
		} else {
			logger.WithField("file", envFile).Debug("Loaded environment variables")
		}
		return
	}

	// Try to load from the application directory
	if execPath, err := os.Executable(); err == nil {
		envFile = filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
			} else {
				logger.WithField("file", envFile).Debug("Loaded environment variables")
			}
		}
	}
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "mmugram",
		Short:   "Plot page-table side-channel signals",
		Long:    "Render the per-level AnC signal of an attempt as a multi-page PDF, overlaying the reference and the recovered eviction-set geometry",
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel != "" {
				if err := logging.SetLogLevel(opts.logLevel); err != nil {
					return fmt.Errorf("invalid log level: %w", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "results", "Directory containing the attempt tables")
	flags.StringVarP(&opts.output, "output", "o", "mmugram.pdf", "Output PDF path")
	flags.IntVar(&opts.attempt, "attempt", 0, "Attempt whose tables are plotted")
	flags.StringVar(&opts.cpuName, "cpu-name", "", "CPU name for the document title (detected when empty)")
	flags.StringVarP(&opts.configFile, "config", "c", "", "Render configuration file (default "+config.DefaultPath()+" when present)")
	flags.StringVar(&opts.reportFile, "report", "", "Also write a YAML geometry summary to this path")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options) error {
	logger := logging.GetLogger()

	if opts.attempt < 0 {
		return fmt.Errorf("attempt must not be negative, got %d", opts.attempt)
	}

	cfg, err := config.Resolve(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The flag wins over the config file.
	if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
			logger.WithField("log_level", cfg.LogLevel).WithError(err).Warn("Invalid log level in config, using INFO")
			logging.SetLogLevel("info")
		}
	}

	cpuName := resolveCPUName(opts.cpuName)

	pm, err := plot.NewPlotManager(cfg)
	if err != nil {
		return err
	}

	result, err := pm.GenerateMMUgram(plot.PlotOptions{
		InputDir: opts.input,
		Attempt:  opts.attempt,
		Output:   opts.output,
		CPUName:  cpuName,
	})
	if err != nil {
		return err
	}

	summary, err := report.Build(result.Attempt)
	if err != nil {
		return err
	}
	summary.Title = result.Title
	report.Log(logger, summary)

	if opts.reportFile != "" {
		if err := report.Write(opts.reportFile, summary); err != nil {
			return err
		}
		logger.WithField("report", opts.reportFile).Info("Geometry report written")
	}

	logger.WithFields(logrus.Fields{
		"output": opts.output,
		"pages":  result.Pages,
	}).Info("Done")
	return nil
}

func resolveCPUName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(cpuNameEnv); env != "" {
		return env
	}
	return host.CPUName()
}

func Execute() error {
	loadEnvironment()
	return NewRootCommand().Execute()
}
