package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Control-D-Inc/hostnamer"
)

type composeOptions struct {
	values   map[hostnamer.Field]*string
	copy     bool
	qr       bool
	jsonOut  bool
	stdout   io.Writer
	stderr   io.Writer
	copyFunc func(string) error
}

func newComposeCmd() *cobra.Command {
	opts := &composeOptions{
		values:   make(map[hostnamer.Field]*string),
		copyFunc: clipboard.WriteAll,
	}
	composeCmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose and validate a hostname from naming fields",
		Example: `  hostnamer compose --organization org --tier prod --role web --sequence 1 \
    --provider aws --region us-east-1 --domain example.com --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			validator, err := newValidator()
			if err != nil {
				return err
			}
			return runCompose(validator, opts)
		},
	}
	for _, f := range hostnamer.Fields() {
		opts.values[f] = composeCmd.Flags().String(string(f), "", fmt.Sprintf("%s naming field", f))
	}
	composeCmd.Flags().BoolVarP(&opts.copy, "copy", "", false, "Copy the hostname to the clipboard if it is valid")
	composeCmd.Flags().BoolVarP(&opts.qr, "qr", "", false, "Print the hostname as a QR code if it is valid")
	composeCmd.Flags().BoolVarP(&opts.jsonOut, "json", "", false, "Print the result as JSON")
	return composeCmd
}

// runCompose delivers every field to the validator, one change at a time in
// canonical order, and prints the final result.
func runCompose(validator *hostnamer.Validator, opts *composeOptions) error {
	var result hostnamer.Result
	for _, f := range hostnamer.Fields() {
		value := ""
		if p := opts.values[f]; p != nil {
			value = *p
		}
		r, err := validator.OnFieldChanged(f, value)
		if err != nil {
			return err
		}
		result = r
	}

	if opts.jsonOut {
		enc := json.NewEncoder(opts.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newComposeResponse(result)); err != nil {
			return fmt.Errorf("could not encode result: %w", err)
		}
	} else {
		fmt.Fprintln(opts.stdout, result.Hostname)
		for _, msg := range result.Errors() {
			fmt.Fprintf(opts.stderr, "error: %s\n", msg)
		}
	}

	hostname, ok := result.Final()
	if !ok {
		return errInvalidHostname
	}
	if opts.copy {
		if err := opts.copyFunc(hostname); err != nil {
			mainLog.Warn().Err(err).Msg("could not copy hostname to clipboard")
		} else {
			fmt.Fprintln(opts.stderr, "Copied to clipboard!")
		}
	}
	if opts.qr {
		printQR(hostname, opts.stdout)
	}
	return nil
}

func printQR(hostname string, w io.Writer) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		mainLog.Warn().Msg("stdout is not a terminal, skipping QR code")
		return
	}
	qrterminal.GenerateWithConfig(hostname, qrterminal.Config{
		Level:     qrterminal.L,
		Writer:    w,
		BlackChar: qrterminal.BLACK_BLACK,
		WhiteChar: qrterminal.WHITE_WHITE,
		QuietZone: 1,
	})
}
