package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fincalcs/engine/internal/calculators"
	"github.com/fincalcs/engine/internal/config"
	"github.com/fincalcs/engine/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fincalc",
	Short: "Personal finance calculator CLI",
	Long:  "Loan, deposit, investment and business calculators over a shared engine",
}

var calcCmd = &cobra.Command{
	Use:   "calc <calculator>",
	Short: "Run a calculator against an input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("input")
		settingsFile, _ := cmd.Flags().GetString("settings")
		format, _ := cmd.Flags().GetString("format")
		debugMode, _ := cmd.Flags().GetBool("debug")

		settings := config.Defaults()
		if settingsFile != "" {
			var err error
			settings, err = config.Load(settingsFile)
			if err != nil {
				return err
			}
		}
		if format == "" {
			format = settings.Format
		}

		logger, err := newLogger(debugMode || settings.Debug)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		raw, err := readInput(inputFile)
		if err != nil {
			logger.Error("failed to read input",
				zap.String("op", "main.calc"),
				zap.Error(err),
			)
			return err
		}

		engine := calculators.New(logger)
		result, err := engine.Compute(args[0], raw)
		if err != nil {
			return err
		}
		return output.Render(os.Stdout, result, format, settings.Display())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available calculators",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, strings.Join(calculators.Names(), "\n"))
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "fincalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path+" "+bi.Main.Version)
			}
		},
	}
}

// readInput parses the raw field record from a YAML file, or stdin when
// the path is "-".
func readInput(path string) (calculators.Raw, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	raw := calculators.Raw{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing input %s: %w", path, err)
	}
	return raw, nil
}

func newLogger(debugMode bool) (*zap.Logger, error) {
	if debugMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	calcCmd.Flags().StringP("input", "i", "input.yaml", "Path to the YAML input record (- for stdin)")
	calcCmd.Flags().StringP("format", "f", "", "Output format (text, json, yaml); overrides settings")
	calcCmd.Flags().String("settings", "", "Path to a display settings file")
	calcCmd.Flags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
