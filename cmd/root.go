package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ollxel/document-duplicate/internal/config"
	"github.com/ollxel/document-duplicate/internal/logging"
)

var (
	cfgFile    string
	quiet      bool
	verbose    bool
	outputFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linkdup",
	Short: "Find hyperlinks shared across text, PDF and DOCX documents",
	Long: `Linkdup extracts hyperlinks from a batch of documents (.txt, .pdf and
.docx) and reports the links that appear in more than one of them, with
the number of times each link occurs and the files it was found in.

Files with any other extension are ignored. If a single document cannot be
read, the whole batch fails and no report is produced.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.linkdup.yaml)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "quiet output (only errors are logged, no progress bar)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	flags.StringVarP(&outputFile, "output", "o", "", "write output to a file instead of stdout")
	flags.StringP("format", "f", "human", "output format (human, json, csv, markdown, yaml)")
	flags.Int("workers", 0, "number of documents processed in parallel (default: number of CPUs)")
	flags.Int("max-files", config.DefaultMaxFiles, "maximum number of files accepted in one batch")
	flags.BoolP("recursive", "r", false, "descend into subdirectories of directory arguments")
	flags.Bool("progress", true, "show a progress bar while extracting")
	flags.String("log-format", "console", "log format (console, json)")

	for key, flag := range map[string]string{
		"format":     "format",
		"workers":    "workers",
		"max_files":  "max-files",
		"recursive":  "recursive",
		"progress":   "progress",
		"log_format": "log-format",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".linkdup" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".linkdup")
	}

	config.BindEnv(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setup resolves the configuration and attaches a logger to the command
// context.
func setup(cmd *cobra.Command) (*config.Config, context.Context, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	switch {
	case quiet:
		level = zerolog.LevelErrorValue
	case verbose:
		level = zerolog.LevelDebugValue
	}

	logger, err := logging.New(os.Stderr, level, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return cfg, logger.WithContext(ctx), nil
}

// writeOutput renders to the --output file, or to stdout when none is set.
// A file is rendered into a temporary sibling and renamed into place; on
// failure the previous contents stay untouched.
func writeOutput(render func(io.Writer) error) error {
	if outputFile == "" {
		return render(os.Stdout)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputFile), "."+filepath.Base(outputFile)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := os.Rename(tmp.Name(), outputFile); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
