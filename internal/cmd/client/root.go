package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the Beryl client.
// It registers every client command group.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "beryl",
		Short: "Beryl client commands",
	}
	AddClientCommands(root, baseURL)
	return root
}

// AddClientCommands registers the client commands on an existing root, for
// binaries that also carry server commands.
func AddClientCommands(root *cobra.Command, baseURL BaseURLFunc) {
	root.AddCommand(
		NewMintCommand(baseURL),
		NewDecodeCommand(),
		NewInfoCommand(baseURL),
		NewStateCommand(baseURL),
		NewStatsCommand(baseURL),
		NewWatchCommand(baseURL),
		NewBenchCommand(),
	)
}
