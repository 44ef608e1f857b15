package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NivBraz/spellcheck-service/internal/app"
	"github.com/NivBraz/spellcheck-service/internal/config"
	"github.com/NivBraz/spellcheck-service/internal/models"
)

// errUnknownWords makes `check` exit non-zero without printing anything extra.
var errUnknownWords = errors.New("unknown words found")

type rootOptions struct {
	configFile string
	dictionary string
	noColor    bool
}

func newRootCommand() *cobra.Command {
	var opts rootOptions

	rootCommand := &cobra.Command{
		Use:           "spellcheck",
		Short:         "Check words against a word list",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Session(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", fmt.Sprintf("config file (default %s if present)", config.DefaultFile))
	flags.StringVar(&opts.dictionary, "dictionary", "", "word list to load, one word per line")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCommand.AddCommand(
		newCheckCommand(&opts),
		newTextCommand(&opts),
	)
	return rootCommand
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   "check WORD...",
		Short: "Check one or more words and exit non-zero if any is unknown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			results := make([]models.CheckResult, 0, len(args))
			unknown := false
			for _, word := range args {
				res := a.Check(word)
				if res.Status != models.StatusCorrect {
					unknown = true
				}
				results = append(results, res)
				if !asJSON {
					fmt.Fprintf(out, "%s: ", word)
					a.Render(out, res)
				}
			}

			if asJSON {
				output, err := json.MarshalIndent(results, "", "    ")
				if err != nil {
					return fmt.Errorf("failed to marshal results: %w", err)
				}
				fmt.Fprintln(out, string(output))
			}
			if unknown {
				return errUnknownWords
			}
			return nil
		},
	}
	command.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return command
}

func newTextCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "text FILE|URL",
		Short: "Report the words of a text file or web page missing from the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			report, err := a.CheckText(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Output results as JSON
			output, err := json.MarshalIndent(report, "", "    ")
			if err != nil {
				return fmt.Errorf("failed to marshal results: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		},
	}
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.dictionary != "" {
		cfg.Dictionary.Path = o.dictionary
		cfg.Dictionary.URL = ""
	}
	if o.noColor {
		cfg.Output.Color = false
	}
	return cfg, nil
}

func (o *rootOptions) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg, app.WithProgressOutput(cmd.ErrOrStderr()))
}
