package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zostay/go-eml/internal/config"
	"github.com/zostay/go-eml/internal/logger"
)

var (
	rootCmd = &cobra.Command{
		Use:               "eml",
		Short:             "Inspect, flatten, and build EML messages",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	configPath string
	logLevel   string
	logFile    string
	format     string
	maxDepth   int

	settings *config.Config
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to a YAML configuration file (default ./eml.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, or error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this rotating file instead of stderr")
	pf.StringVar(&format, "format", "", "output document format: json or yaml")
	pf.IntVar(&maxDepth, "max-depth", 0, "maximum multipart nesting depth, negative for unlimited")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(roundtripCmd)
}

// setup loads the configuration, applies the flags that were given on top of
// it, and stores the logger in the command context.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("max-depth") {
		cfg.Parse.MaxDepth = maxDepth
	}

	settings = cfg

	log := logger.NewFromConfig(logger.Config{
		Level:     cfg.Log.Level,
		FilePath:  cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		MaxFiles:  cfg.Log.MaxFiles,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithLogger(ctx, log))

	return nil
}

// Execute runs the eml command.
func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}
