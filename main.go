package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/launchdarkly/api-contract-tests/apitests"
	"github.com/launchdarkly/api-contract-tests/auth"
	"github.com/launchdarkly/api-contract-tests/config"
	"github.com/launchdarkly/api-contract-tests/framework"
	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
	"github.com/launchdarkly/api-contract-tests/roles"

	"golang.org/x/sync/errgroup"
)

func main() {
	os.Exit(run(os.Args, config.LoadSettings(), os.Stdout, os.Stderr))
}

func run(args []string, settings config.Settings, out, errOut io.Writer) int {
	var params commandParams
	if !params.Read(args, settings, errOut) {
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(out, "", log.LstdFlags)
		fmt.Fprintf(out, "Command: %s\n", params.Command(filepath.Base(args[0])))
	}

	resolver := config.NewResolver(os.DirFS(params.configDir), params.environment, mainDebugLogger)
	cfg, err := resolver.Resolve()
	if err != nil {
		fmt.Fprintf(errOut, "Configuration error: %s\n", err)
		return 1
	}
	fmt.Fprintf(out, "Environment %q, configuration from %s\n", cfg.Environment(),
		filepath.Join(params.configDir, cfg.Source()))

	tokens := auth.NewTokenAcquirer(cfg,
		auth.WithTimeout(params.loginTimeout),
		auth.WithLogger(framework.LoggerWithPrefix(mainDebugLogger, "[auth] ")),
	)

	if params.checkLogins {
		return checkLogins(tokens, out, errOut)
	}

	testContext, err := apitests.NewAPITestContext(cfg, tokens, nil)
	if err != nil {
		fmt.Fprintf(errOut, "Configuration error: %s\n", err)
		return 1
	}
	testContext = testContext.WithTimeLimitScale(params.timeLimitScale)

	fmt.Fprintln(out)
	params.filters.Describe(out)
	fmt.Fprintln(out, "Running test suite")

	testLogger := &ldtest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
		Output:               out,
	}
	results := apitests.RunTestSuite(testContext, params.filters.AsFilter, testLogger)

	fmt.Fprintln(out)
	ldtest.PrintResults(out, results)
	if !results.OK() {
		return 1
	}
	return 0
}

// checkLogins logs in as every role concurrently and reports each outcome. A configuration
// fault is reported once and ends the check.
func checkLogins(tokens *auth.TokenAcquirer, out, errOut io.Writer) int {
	all := roles.All()
	errs := make([]error, len(all))
	var g errgroup.Group
	for i, role := range all {
		g.Go(func() error {
			_, errs[i] = tokens.Acquire(context.Background(), role)
			return nil
		})
	}
	_ = g.Wait()

	status := 0
	for i, role := range all {
		if errs[i] == nil {
			fmt.Fprintf(out, "%-16s ok\n", role.DisplayName())
			continue
		}
		if !errors.Is(errs[i], auth.ErrAuthenticationFailure) {
			fmt.Fprintf(errOut, "Configuration error: %s\n", errs[i])
			return 1
		}
		fmt.Fprintf(out, "%-16s FAILED: %s\n", role.DisplayName(), errs[i])
		status = 1
	}
	return status
}
