package client

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

// NewInfoCommand constructs the `info` command.
func NewInfoCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server epoch, generator id, and bit layout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out map[string]any
			if err := getJSON(baseURL()+"/v1/info", &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// NewStateCommand constructs the `state` command.
func NewStateCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the generator's current state snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out map[string]any
			if err := getJSON(baseURL()+"/v1/state", &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// NewStatsCommand constructs the `stats` command.
func NewStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show mint/wait/regression counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out map[string]any
			if err := getJSON(baseURL()+"/v1/stats", &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// NewWatchCommand constructs the `watch` command, which tails the server's
// diagnostics SSE stream and prints one signal per line.
func NewWatchCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the generator's diagnostic signals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, baseURL()+"/v1/diagnostics/watch", nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %s", resp.Status)
			}
			sc := bufio.NewScanner(resp.Body)
			for sc.Scan() {
				line := sc.Text()
				if payload, ok := strings.CutPrefix(line, "data: "); ok {
					fmt.Fprintln(cmd.OutOrStdout(), payload)
				}
			}
			// Context cancellation closes the body mid-scan; that's a normal
			// way to stop watching.
			if err := sc.Err(); err != nil && cmd.Context().Err() == nil {
				return err
			}
			return nil
		},
	}
}
