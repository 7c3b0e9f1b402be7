// cmd/forkfinder/root.go
package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "forkfinder",
		Short: "Analyze and explore GitHub repository forks",
		Long: `ForkFinder lists the forks of a GitHub repository, loads the metadata of
every fork and shows them as a sortable table.

Configuration is read from the environment or a .env file:
  GITHUB_TOKEN    optional token sent with every request
  GITHUB_API_URL  API base URL (defaults to https://api.github.com)
  TIME_ZONE       zone used to print the rate-limit reset time
  LOG_LEVEL       debug, info, warn or error
  LOG_FORMAT      json or text`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFindCmd(), newServeCmd())
	return root
}
