package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Control-D-Inc/hostnamer"
)

var v = viper.NewWithOptions(viper.KeyDelimiter("::"))

// errInvalidHostname is returned by commands whose composed hostname has findings.
// The findings themselves were already printed.
var errInvalidHostname = errors.New("hostname is not valid")

func initCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hostnamer",
		Short:         "Compose DNS compliant hostnames from structured naming fields",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConsoleLogging()
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}
			return loadConfig()
		},
	}
	rootCmd.PersistentFlags().CountVarP(
		&verbose,
		"verbose",
		"v",
		`verbose log output, "-v" means info level logging, "-vv" means debug level logging`,
	)
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "do not print any log output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&logPath, "log", "", "", "path to log file")

	rootCmd.AddCommand(newComposeCmd())
	rootCmd.AddCommand(newInteractiveCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

const skipConfigAnnotation = "hostnamer/skip-config"

func newConfigCmd() *cobra.Command {
	var force bool
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hostnamer config",
		Args:  cobra.NoArgs,
	}
	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write the default config file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "hostnamer.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
			}
			if err := writeConfigFile(path); err != nil {
				return err
			}
			mainLog.Info().Msgf("default config written to %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")
	configCmd.AddCommand(initCmd)
	return configCmd
}

func writeConfigFile(path string) error {
	bs, err := toml.Marshal(v.AllSettings())
	if err != nil {
		return fmt.Errorf("unable to marshal config to toml: %w", err)
	}
	if err := os.WriteFile(path, bs, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func loadConfig() error {
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	if err := readConfigFile(); err != nil {
		return err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := hostnamer.ValidateConfig(validator.New(), &cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if logPath != "" {
		cfg.Service.LogPath = logPath
	}
	initLogging()
	if f := v.ConfigFileUsed(); f != "" {
		mainLog.Info().Msgf("loaded config file: %s", f)
	}
	return nil
}

func readConfigFile() error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// No config file, defaults are used.
		return nil
	}
	return fmt.Errorf("failed to decode config file: %w", err)
}

// newValidator returns a validator configured by the loaded config.
func newValidator() (*hostnamer.Validator, error) {
	specs, err := cfg.FieldSpecs()
	if err != nil {
		return nil, err
	}
	return hostnamer.NewValidator(specs, cfg.ValidatorOptions()...)
}

// composeResponse is the machine readable form of a validation result.
type composeResponse struct {
	Hostname string   `json:"hostname"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
}

func newComposeResponse(r hostnamer.Result) composeResponse {
	return composeResponse{
		Hostname: r.Hostname,
		Valid:    r.Valid(),
		Errors:   r.Errors(),
	}
}
