package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/api-contract-tests/config"
	"github.com/launchdarkly/api-contract-tests/framework/ldtest"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	environment    string
	configDir      string
	loginTimeout   time.Duration
	timeLimitScale float64
	filters        ldtest.RegexFilters
	checkLogins    bool
	debug          bool
	debugAll       bool
}

// Read parses the command line. Settings taken from the environment are the defaults for the
// corresponding flags.
func (c *commandParams) Read(args []string, defaults config.Settings, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.environment, "env", defaults.Environment, "environment whose configuration is loaded (ENV)")
	fs.StringVar(&c.configDir, "config-dir", defaults.ConfigDir, "directory containing the properties files (CONFIG_DIR)")
	fs.DurationVar(&c.loginTimeout, "login-timeout", defaults.LoginTimeout,
		"time limit for each login request (LOGIN_TIMEOUT_SECONDS)")
	fs.Float64Var(&c.timeLimitScale, "time-limit-scale", defaults.TimeLimitScale,
		"multiplier for the response-time limits of the endpoint tests (TIME_LIMIT_SCALE)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.checkLogins, "check-logins", false, "only log in as every role and report the result")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	if c.loginTimeout <= 0 {
		fmt.Fprintln(errOut, "-login-timeout must be greater than zero")
		fs.Usage()
		return false
	}
	if c.timeLimitScale <= 0 {
		fmt.Fprintln(errOut, "-time-limit-scale must be greater than zero")
		fs.Usage()
		return false
	}
	return true
}

// Command returns a command line that repeats this run with the same parameters.
func (c *commandParams) Command(program string) string {
	var b commandBuilder
	b.add(program, "-env", c.environment, "-config-dir", c.configDir,
		"-login-timeout", c.loginTimeout.String(),
		"-time-limit-scale", strconv.FormatFloat(c.timeLimitScale, 'g', -1, 64))
	for _, p := range c.filters.MustMatch.Patterns() {
		b.add("-run", p)
	}
	for _, p := range c.filters.MustNotMatch.Patterns() {
		b.add("-skip", p)
	}
	if c.checkLogins {
		b.add("-check-logins")
	}
	if c.debugAll {
		b.add("-debug-all")
	} else if c.debug {
		b.add("-debug")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
