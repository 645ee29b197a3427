package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/max-niederman/beryl/internal/filter"
	"github.com/max-niederman/beryl/pkg/crystal"
)

// decodedRow is the printable decode result for one input.
type decodedRow struct {
	Input     string `json:"input"`
	Timestamp int64  `json:"timestamp"`
	Generator uint16 `json:"generator"`
	Counter   uint16 `json:"counter"`
	Time      string `json:"time,omitempty"`
	Error     string `json:"error,omitempty"`
}

// decodeValues decodes each input locally, applying an optional CEL filter.
// Rows that fail to parse carry a per-row error; rows filtered out are
// dropped. When epoch is non-zero the absolute time is included.
func decodeValues(inputs []string, filterExpr string, epoch time.Time) ([]decodedRow, error) {
	f, err := filter.New(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid --filter: %w", err)
	}
	var rows []decodedRow
	for _, in := range inputs {
		c, err := crystal.Parse(in)
		if err != nil {
			rows = append(rows, decodedRow{Input: in, Error: err.Error()})
			continue
		}
		if !f.Eval(c, epoch) {
			continue
		}
		row := decodedRow{
			Input:     in,
			Timestamp: c.Timestamp(),
			Generator: c.Generator(),
			Counter:   c.Counter(),
		}
		if !epoch.IsZero() {
			row.Time = c.Time(epoch).UTC().Format(time.RFC3339Nano)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readInputs collects crystal values from args, or from r (one per line)
// when no args are given.
func readInputs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			out = append(out, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NewDecodeCommand constructs the `decode` command. Decoding runs locally
// against the codec, no server needed.
func NewDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [crystals...]",
		Short: "Decode crystals locally (args or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			filterExpr, _ := cmd.Flags().GetString("filter")
			epochStr, _ := cmd.Flags().GetString("epoch")

			var epoch time.Time
			if epochStr != "" {
				t, err := parseEpoch(epochStr)
				if err != nil {
					return err
				}
				epoch = t
			}
			inputs, err := readInputs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			rows, err := decodeValues(inputs, filterExpr, epoch)
			if err != nil {
				return err
			}
			for _, row := range rows {
				if err := printJSON(cmd.OutOrStdout(), row); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("filter", "", "CEL expression over timestamp/generator/counter/raw")
	cmd.Flags().String("epoch", "", "Epoch (RFC3339 or unix ms) to resolve absolute times")
	return cmd
}
