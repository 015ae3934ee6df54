package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pipgen/internal/app"
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [lock_file bzl_file repository_dir [rules_repo]]",
		Short: "Generate Bazel build rules from the lock file",
		Long: `Generate the .bzl file declaring one repository per locked wheel and, under
the repository directory, one BUILD package per requirement that selects the
right wheel for each python version and platform. Arguments not given are
taken from pipgen.yaml.`,
		Args: cobra.MaximumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && len(args) < 3 {
				_ = cmd.Usage()
				return zerr.With(domain.ErrMissingArguments, "arguments", len(args))
			}
			force, _ := cmd.Flags().GetBool("force")

			opts := app.GenerateOptions{Force: force}
			if len(args) >= 3 {
				opts.LockFile, opts.BzlFile, opts.RepositoryDir = args[0], args[1], args[2]
			}
			if len(args) == 4 {
				opts.RulesRepo = args[3]
			}
			return c.app.Generate(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Regenerate even when the output is up to date")
	return cmd
}
