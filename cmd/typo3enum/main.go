package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/httpclient"
	"github.com/aleister1102/typo3enum/internal/logger"
	"github.com/aleister1102/typo3enum/internal/reporter"
	"github.com/aleister1102/typo3enum/internal/scanner"
	"github.com/aleister1102/typo3enum/internal/tunnel"
	"github.com/aleister1102/typo3enum/internal/urlhandler"
	"github.com/rs/zerolog"
)

const (
	exitOK          = 0
	exitUsage       = 1
	exitTunnelError = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := ParseFlags(args, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		return exitUsage
	}

	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		log.Printf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
		return exitUsage
	}
	applyFlagOverrides(gCfg, flags)

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Printf("[FATAL] Main: Configuration validation failed: %v", err)
		return exitUsage
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Printf("[FATAL] Main: Could not initialize logger: %v", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs, err := collectTargets(flags, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Could not read targets")
		return exitUsage
	}

	console := reporter.NewConsoleReporter(os.Stdout, gCfg.ReporterConfig)

	if gCfg.TunnelConfig.Enabled {
		tun, err := tunnel.NewServiceTunnel(gCfg.TunnelConfig, nil, zLogger)
		if err != nil {
			zLogger.Error().Err(err).Msg("Could not set up tunnel")
			return exitTunnelError
		}
		session, err := tunnel.Acquire(ctx, tun)
		if err != nil {
			zLogger.Error().Err(err).Msg("Failed to connect through privoxy and/or tor")
			return exitTunnelError
		}
		defer func() {
			if err := session.Release(ctx); err != nil {
				zLogger.Warn().Err(err).Msg("Failed to stop tunnel services")
			}
		}()
		if err := console.ExitIP(session.ExitIP()); err != nil {
			zLogger.Warn().Err(err).Msg("Failed to write output")
		}
		gCfg.HTTPClientConfig.Proxy = gCfg.TunnelConfig.ProxyURL()
	}

	client, err := httpclient.NewHTTPClientBuilder(zLogger).
		WithConfig(httpclient.FromConfig(gCfg.HTTPClientConfig)).
		Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Could not create HTTP client")
		return exitUsage
	}

	s, err := scanner.NewScanner(gCfg.DetectionConfig, client, console, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Could not create scanner")
		return exitUsage
	}

	summary, err := s.Scan(ctx, inputs)
	if err != nil {
		if errors.Is(err, scanner.ErrNoTargets) {
			zLogger.Error().Err(err).Msg("Nothing to scan")
			return exitUsage
		}
		if errors.Is(err, context.Canceled) {
			zLogger.Warn().Msg("Interrupted, stopping")
		}
	}

	if err := console.Summary(summary.Scanned, summary.Detected); err != nil {
		zLogger.Warn().Err(err).Msg("Failed to write output")
	}
	return exitOK
}

func applyFlagOverrides(gCfg *config.GlobalConfig, flags AppFlags) {
	if flags.Tor {
		gCfg.TunnelConfig.Enabled = true
	}
	if flags.Port != 0 {
		gCfg.TunnelConfig.Port = flags.Port
	}
	if flags.Timeout > 0 {
		gCfg.HTTPClientConfig.TimeoutSecs = int(math.Ceil(flags.Timeout.Seconds()))
	}
	if flags.UserAgent != "" {
		gCfg.HTTPClientConfig.UserAgent = flags.UserAgent
	}
	if flags.AlwaysLogin {
		gCfg.DetectionConfig.AlwaysCheckLogin = true
	}
	if flags.LogLevel != "" {
		gCfg.LogConfig.LogLevel = flags.LogLevel
	}
	if flags.NoColor {
		gCfg.ReporterConfig.NoColor = true
	}
}

func collectTargets(flags AppFlags, zLogger zerolog.Logger) ([]string, error) {
	inputs := append([]string(nil), flags.Domains...)
	if flags.TargetsFile == "" {
		return inputs, nil
	}

	fromFile, err := urlhandler.ReadTargetsFromFile(flags.TargetsFile, zLogger)
	if err != nil {
		return nil, err
	}
	return append(inputs, fromFile...), nil
}
