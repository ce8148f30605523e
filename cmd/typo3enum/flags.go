package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// stringList collects every occurrence of a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type AppFlags struct {
	Domains          []string
	TargetsFile      string
	GlobalConfigFile string
	Tor              bool
	Port             int
	Timeout          time.Duration
	UserAgent        string
	AlwaysLogin      bool
	LogLevel         string
	NoColor          bool
}

// ParseFlags parses args (without the program name). Long and short spellings
// are aliases; the long form wins when both are given.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("typo3enum", flag.ContinueOnError)
	fs.SetOutput(output)

	var domains stringList
	fs.Var(&domains, "domain", "Target domain or URL to scan. Repeatable.")
	fs.Var(&domains, "d", "Alias for -domain")

	targetsFile := fs.String("file", "", "Path to a text file with one target per line ('#' starts a comment)")
	targetsFileAlias := fs.String("f", "", "Alias for -file")

	globalConfigFile := fs.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	tor := fs.Bool("tor", false, "Route all requests through tor via privoxy")
	port := fs.Int("port", 0, "Privoxy port (overrides config, default 8118)")
	timeout := fs.Duration("timeout", 0, "Per-request timeout, e.g. 10s (overrides config)")
	userAgent := fs.String("user-agent", "", "User-Agent header (overrides config)")
	alwaysLogin := fs.Bool("always-login", false, "Check the backend login page even when TYPO3 was not detected")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	noColor := fs.Bool("no-color", false, "Disable colored output")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		Domains:     domains,
		Tor:         *tor,
		Port:        *port,
		Timeout:     *timeout,
		UserAgent:   *userAgent,
		AlwaysLogin: *alwaysLogin,
		LogLevel:    *logLevel,
		NoColor:     *noColor,
	}

	if *targetsFile != "" {
		flags.TargetsFile = *targetsFile
	} else if *targetsFileAlias != "" {
		flags.TargetsFile = *targetsFileAlias
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if len(flags.Domains) == 0 && flags.TargetsFile == "" {
		return AppFlags{}, fmt.Errorf("at least one -domain or a -file is required")
	}
	if fs.NArg() > 0 {
		return AppFlags{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if flags.Port < 0 || flags.Port > 65535 {
		return AppFlags{}, fmt.Errorf("invalid -port %d", flags.Port)
	}
	if flags.Timeout < 0 {
		return AppFlags{}, fmt.Errorf("invalid -timeout %s", flags.Timeout)
	}

	return flags, nil
}
