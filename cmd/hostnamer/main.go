package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Control-D-Inc/hostnamer"
)

var (
	configPath string
	logPath    string
	cfg        hostnamer.Config
	verbose    int
	silent     bool

	mainLog       = zerolog.New(io.Discard)
	consoleWriter zerolog.ConsoleWriter
)

func main() {
	hostnamer.InitConfig(v, "hostnamer")
	rootCmd := initCLI()
	if err := rootCmd.Execute(); err != nil {
		mainLog.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func normalizeLogFilePath(logFilePath string) string {
	if logFilePath == "" || filepath.IsAbs(logFilePath) {
		return logFilePath
	}
	dir, _ := os.UserHomeDir()
	if dir == "" {
		return logFilePath
	}
	return filepath.Join(dir, logFilePath)
}

func initConsoleLogging() {
	consoleWriter = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.StampMilli
	})
	multi := zerolog.MultiLevelWriter(consoleWriter)
	mainLog = mainLog.Output(multi).With().Timestamp().Logger()
	switch {
	case silent:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case verbose == 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case verbose > 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// initLogging initializes log setup base on current config.
func initLogging() {
	writers := []io.Writer{io.Discard}
	if logFilePath := normalizeLogFilePath(cfg.Service.LogPath); logFilePath != "" {
		// Create parent directory if necessary.
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			mainLog.Error().Msgf("failed to create log path: %v", err)
			os.Exit(1)
		}
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, os.FileMode(0o600))
		if err != nil {
			mainLog.Error().Msgf("failed to create log file: %v", err)
			os.Exit(1)
		}
		writers = append(writers, logFile)
	}
	writers = append(writers, consoleWriter)
	multi := zerolog.MultiLevelWriter(writers...)
	mainLog = mainLog.Output(multi).With().Timestamp().Logger()
	validatorLog := mainLog.With().Str("component", "validator").Logger()
	hostnamer.ValidatorLogger.Store(&validatorLog)

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	logLevel := cfg.Service.LogLevel
	switch {
	case silent:
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	case verbose == 1:
		logLevel = "info"
	case verbose > 1:
		logLevel = "debug"
	}
	if logLevel == "" {
		return
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		mainLog.Warn().Err(err).Msg("could not set log level")
		return
	}
	zerolog.SetGlobalLevel(level)
}
