package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pipgen/internal/app"
)

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [requirements files...]",
		Short: "Resolve requirements for this platform and update the lock file",
		Long: `Resolve the requirements for the current interpreter version and platform
and merge the result into the lock file. Environments recorded for other
platforms are kept, so running lock on every platform builds up one lock file
covering all of them.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lockFile, _ := cmd.Flags().GetString("lock-file")
			pythonVersion, _ := cmd.Flags().GetInt("python-version")
			platform, _ := cmd.Flags().GetString("platform")
			resolved, _ := cmd.Flags().GetString("resolved")
			localWheels, _ := cmd.Flags().GetString("local-wheels-package")
			updateAll, _ := cmd.Flags().GetBool("update-all")
			update, _ := cmd.Flags().GetStringArray("update")

			return c.app.Lock(cmd.Context(), app.LockOptions{
				Requirements:       args,
				LockFile:           lockFile,
				PythonVersion:      pythonVersion,
				Platform:           platform,
				Resolved:           resolved,
				LocalWheelsPackage: localWheels,
				UpdateAll:          updateAll,
				Update:             update,
			})
		},
	}
	cmd.Flags().String("lock-file", "", "Lock file to update (default from pipgen.yaml)")
	cmd.Flags().Int("python-version", 0, "Interpreter major version to resolve for (2 or 3)")
	cmd.Flags().String("platform", "", "Platform tag to record, e.g. linux or darwin (default: host)")
	cmd.Flags().String("resolved", "", "Read a pre-computed resolution document instead of running the resolver")
	cmd.Flags().String("local-wheels-package", "", "Build package holding locally built wheels")
	cmd.Flags().Bool("update-all", false, "Ignore every locked version")
	cmd.Flags().StringArray("update", nil, "Ignore the locked version of a package (repeatable)")
	return cmd
}
