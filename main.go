package main

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/action"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/config"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/render"
)

// templateFS embeds the HTML report template and its stylesheet.
//
//go:embed templates/*.html
//go:embed templates/style.css
var templateFS embed.FS

var version = "dev"

func main() {
	failures := action.NewActionsFailure(os.Stdout)
	if err := runRoot(newRootCmd(failures), failures); err != nil {
		os.Exit(1)
	}
}

// runRoot executes cmd and reports errors raised before the runner, such as
// flag parsing failures, to the failure sink.
func runRoot(cmd *cobra.Command, failures *action.ActionsFailure) error {
	err := cmd.Execute()
	if err != nil && !failures.Failed() {
		failures.Fail(action.FailurePrefix + err.Error())
	}
	return err
}

func newRootCmd(failures action.FailureSink) *cobra.Command {
	var (
		cfgFile    string
		format     string
		outputPath string
		verbose    bool
		versions   string
		repository string
	)

	rootCmd := &cobra.Command{
		Use:   "readiness",
		Short: "Generate a release readiness badge report",
		Long: `Generate a Markdown release readiness report of issue, pull request and
coverage badges for one repository, or a table across every configured repository.

Inputs are read from flags or, as in a GitHub Actions step, from the
INPUT_VERSIONS and INPUT_REPOSITORY environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			if !render.ValidFormat(format) {
				err := fmt.Errorf("unknown format %q (expected one of %v)", format, render.Formats)
				failures.Fail(action.FailurePrefix + err.Error())
				return err
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				failures.Fail(action.FailurePrefix + err.Error())
				return err
			}

			flags := action.MapInputs{}
			if cmd.Flags().Changed(action.InputVersions) {
				flags[action.InputVersions] = versions
			}
			if cmd.Flags().Changed(action.InputRepository) {
				flags[action.InputRepository] = repository
			}

			// The report file is only written once the report has built.
			var buf bytes.Buffer
			var out io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				out = &buf
			}

			runner := &action.Runner{
				Builder:   cfg.Builder(),
				Inputs:    action.Chain{flags, action.NewEnvInputs()},
				Output:    out,
				Failures:  failures,
				Log:       log,
				Format:    format,
				SetOutput: action.SetOutput,
				Now:       time.Now,
			}
			if format == render.FormatHTML {
				tmpl, err := render.ParseTemplates(templateFS)
				if err != nil {
					failures.Fail(action.FailurePrefix + err.Error())
					return err
				}
				runner.Templates = tmpl
			}

			if _, err := runner.Run(); err != nil {
				return err
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
					err = fmt.Errorf("failed to write %s: %w", outputPath, err)
					failures.Fail(action.FailurePrefix + err.Error())
					return err
				}
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&versions, action.InputVersions, "", "comma-separated release versions, e.g. 2.4,3.0 (env INPUT_VERSIONS)")
	rootCmd.Flags().StringVar(&repository, action.InputRepository, "", "single repository to report on (env INPUT_REPOSITORY)")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: "+config.DefaultConfigFile+")")
	rootCmd.Flags().StringVar(&format, "format", render.FormatMarkdown, "output format: markdown, html, json")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "readiness version: %s\n", version)
		},
	})

	return rootCmd
}
