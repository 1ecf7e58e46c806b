package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"autotyper/internal/analyzer"
	"autotyper/internal/annotator"
	"autotyper/internal/config"
	"autotyper/internal/oracle"
	"autotyper/internal/parser"
	"autotyper/internal/report"
	"autotyper/internal/utils"
)

// Version info, overridden at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "autotyper",
	Short: "Synthesize missing Python type annotations with a completion model",
	Long:  "A CLI tool that scans Python files for incompletely typed functions and asks a text-completion model to fill in the missing annotations",
}

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Report signature ranges and typedness without calling the completion model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := resolveFiles(args[0])
		if err != nil {
			return err
		}

		reporter := report.New(cmd.OutOrStdout())
		for _, file := range files {
			source, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			tree, err := parser.Parse(source)
			if err != nil {
				var syntaxErr *parser.SyntaxError
				if errors.As(err, &syntaxErr) {
					reporter.Warnf("✗ %s: %v", file, err)
					continue
				}
				return err
			}

			ranges, diags := analyzer.ScanTree(tree)
			reporter.Diagnostics(diags)
			for _, sig := range ranges {
				reporter.Range(file, sig)
			}
			tree.Close()
		}
		return nil
	},
}

var annotateCmd = &cobra.Command{
	Use:   "annotate <path>",
	Short: "Fill in missing annotations and write the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Credentials resolve before any file is touched; their absence
		// aborts the whole run.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		inplace, _ := cmd.Flags().GetBool("inplace")
		format, _ := cmd.Flags().GetString("format")

		reporter := report.New(cmd.OutOrStdout())
		client := oracle.NewClient(cfg)
		a := annotator.New(client, reporter, annotator.Options{
			InPlace:      inplace,
			NamingFormat: format,
		})
		return a.AnnotatePath(cmd.Context(), args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "autotyper %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
	},
}

func resolveFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return utils.PythonFiles(path)
	}
	return []string{path}, nil
}

func init() {
	annotateCmd.Flags().Bool("inplace", false, "edit the file in place instead of creating a new file")
	annotateCmd.Flags().String("format", annotator.DefaultNamingFormat,
		"naming template for output files when not editing in place")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
