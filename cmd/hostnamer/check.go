package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/Control-D-Inc/hostnamer"
)

// inventory is a list of naming records, decoded from a TOML file:
//
//	[[host]]
//	organization = "org"
//	tier = "prod"
//	...
type inventory struct {
	Host []hostnamer.State `toml:"host"`
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate the naming records of a TOML inventory",
		Long:  `Validate every [[host]] record of a TOML inventory file, "-" reads from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readInventory(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			validator, err := newValidator()
			if err != nil {
				return err
			}
			return runCheck(validator, records, cmd.OutOrStdout())
		},
	}
}

func readInventory(path string, stdin io.Reader) ([]hostnamer.State, error) {
	var (
		bs  []byte
		err error
	)
	if path == "-" {
		bs, err = io.ReadAll(stdin)
	} else {
		bs, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read inventory: %w", err)
	}
	var inv inventory
	if err := toml.Unmarshal(bs, &inv); err != nil {
		return nil, fmt.Errorf("could not decode inventory: %w", err)
	}
	return inv.Host, nil
}

// runCheck validates each record and renders a result table.
func runCheck(validator *hostnamer.Validator, records []hostnamer.State, w io.Writer) error {
	invalid := 0
	data := make([][]string, 0, len(records))
	for i, record := range records {
		var result hostnamer.Result
		for _, f := range hostnamer.Fields() {
			r, err := validator.OnFieldChanged(f, record.Get(f))
			if err != nil {
				return err
			}
			result = r
		}
		if !result.Valid() {
			invalid++
		}
		mainLog.Debug().Int("record", i+1).Str("hostname", result.Hostname).Bool("valid", result.Valid()).Msg("checked naming record")
		data = append(data, []string{
			strconv.Itoa(i + 1),
			result.Hostname,
			strconv.FormatBool(result.Valid()),
			strings.Join(result.Errors(), "; "),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Hostname", "Valid", "Errors"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()

	if invalid > 0 {
		mainLog.Warn().Msgf("%d of %d records are invalid", invalid, len(records))
		return errInvalidHostname
	}
	return nil
}
