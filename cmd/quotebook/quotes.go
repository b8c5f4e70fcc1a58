package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// withComponents builds the object graph for a one-shot command, runs fn and
// closes the store. Logs go to stderr so stdout carries only results.
func withComponents(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, c *components) error) error {
	logger := logging.NewWithWriter(loggingConfig(opts.cfg), cmd.ErrOrStderr())
	ctx := logging.WithContext(cmd.Context(), logger)

	c, err := wire(ctx, opts.cfg, logger, nil)
	if err != nil {
		return err
	}

	err = fn(ctx, c)

	if closeErr := c.close(); closeErr != nil {
		logger.ErrorContext(ctx, "store close error", slog.Any("error", closeErr))
	}

	return err
}

func newRandomCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random quote and remember the category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd, opts, func(ctx context.Context, c *components) error {
				selection := category
				if !cmd.Flags().Changed("category") {
					if last, err := c.quotes.LastCategory(ctx); err == nil {
						selection = last
					}
				}

				result, err := c.service.RandomQuote(ctx, cliSession, selection)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Display)

				return err
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", domain.AllCategories,
		"category to pick from; defaults to the remembered one")

	return cmd
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories, marking the remembered one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd, opts, func(ctx context.Context, c *components) error {
				selector, err := c.service.CategorySelector(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()

				for _, o := range selector.Options {
					mark := " "
					if o.Selected {
						mark = "*"
					}

					if _, err := fmt.Fprintf(out, "%s %s\n", mark, o.Label); err != nil {
						return err
					}
				}

				return nil
			})
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var text, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd, opts, func(ctx context.Context, c *components) error {
				q, err := c.service.AddQuote(ctx, cliSession, text, category)
				if err != nil {
					if domain.IsValidation(err) {
						return errors.New(app.NoticeMissingFields)
					}

					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", app.NoticeAdded, q.Display())

				return err
			})
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "quote text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "quote category")

	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every quote as indented JSON",
		Long:  "Write every quote as a JSON array indented by two spaces, to stdout or to --out.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd, opts, func(ctx context.Context, c *components) error {
				data, err := c.service.ExportJSON(ctx)
				if err != nil {
					return err
				}

				if out == "" || out == "-" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}

				if err := os.WriteFile(out, data, 0o600); err != nil {
					return fmt.Errorf("writing %s: %w", out, err)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file such as "+app.ExportFilename+"; stdout when empty")

	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Append the quotes of a JSON file; - reads stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			return withComponents(cmd, opts, func(ctx context.Context, c *components) error {
				n, err := c.service.ImportJSON(ctx, cliSession, data)

				switch {
				case domain.IsParse(err):
					return fmt.Errorf("%s: %w", app.NoticeParseError, err)
				case domain.IsFormat(err):
					return fmt.Errorf("%s: %w", app.NoticeInvalidFormat, err)
				case err != nil:
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", app.NoticeImported, n)

				return err
			})
		},
	}
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return data, nil
}

func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the remote feed once and prepend its quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd, opts, func(ctx context.Context, c *components) error {
				n, err := c.agent.Tick(ctx)
				if err != nil {
					return fmt.Errorf("syncing with %s: %w", strings.TrimSuffix(opts.cfg.Sync.BaseURL, "/"), err)
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "merged %d quotes\n", n)

				return err
			})
		},
	}
}
