package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// analyzeOptions holds the flags of the analyze command.
type analyzeOptions struct {
	branch     string
	format     string
	output     string
	checkLimit int
	noHistory  bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <repo-url>",
		Short: "Analyze the dependencies of a remote repository",
		Long: `Analyze the dependencies of a remote GitHub or GitLab repository.

Supported URL forms:
  https://github.com/owner/repo
  https://github.com/owner/repo/tree/branch
  git@github.com:owner/repo.git
  https://gitlab.com/owner/repo/-/tree/branch
  git@gitlab.com:owner/repo.git

The repository must contain a package.json at its root. The lock file
(pnpm-lock.yaml, yarn.lock or package-lock.json) is optional.`,
		Example: `  depscope analyze https://github.com/expressjs/express
  depscope analyze https://gitlab.com/gitlab-org/gitlab-ui --branch main -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.branch, "branch", "b", "", "branch or ref to analyze (overrides the URL)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVar(&opts.checkLimit, "check-limit", 0, "number of packages to check (default from config)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record this analysis")

	return cmd
}

// runAnalyze runs one analysis and writes the report.
func (c *CLI) runAnalyze(ctx context.Context, repoURL string, opts analyzeOptions, stdout io.Writer) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.checkLimit > 0 {
		cfg.CheckLimit = opts.checkLimit
	}

	runner, store, err := c.newRunner(ctx, cfg, opts.noHistory)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer store.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Analyzing %s...", repoURL))
	spinner.Start()

	result, err := runner.Analyze(ctx, repoURL, opts.branch)
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	prog.done("Analyzed " + result.RepoInfo.Owner + "/" + result.RepoInfo.Repo)

	w := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output %s: %w", opts.output, err)
		}
		defer f.Close()
		w = f
	}

	if opts.format == formatText {
		writeReport(w, result)
	} else if err := writeData(w, result, opts.format); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if opts.output != "" {
		printSuccess(stdout, "Report written to %s", opts.output)
	}
	return nil
}
