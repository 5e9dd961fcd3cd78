package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "depscope audits the dependencies of remote Node.js repositories",
		Long: `depscope analyzes a GitHub or GitLab repository without cloning it.

It reads package.json and the lock file over the hosting API, checks the
declared packages against the OSV vulnerability database, and compares them
with the latest versions on the npm registry.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/depscope/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
