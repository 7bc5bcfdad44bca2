package main

import (
	"fmt"
	"io"
	"os"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/config"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/reporter"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/scraper"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/scrapertests"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/stackexchange"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/testcase"
)

func main() {
	os.Exit(run())
}

// run is separated from main so that deferred cleanup (stopping a scraper we
// launched, closing log files) happens before the process exits.
func run() int {
	var params commandParams
	if !params.Read(os.Args) {
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}
	if params.port != 0 {
		cfg.ScraperPort = params.port
	}
	if err := cfg.ExportPort(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}

	runLog, err := reporter.OpenRunLog(cfg.LogDir, "tester")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Log error: %s\n", err)
		return 1
	}
	defer runLog.Close()
	mainLogger := framework.WriterLogger(runLog)

	serviceURL := params.serviceURL
	if serviceURL == "" {
		serviceURL = fmt.Sprintf("http://localhost:%d", cfg.ScraperPort)

		scraperLog, err := reporter.OpenRunLog(cfg.LogDir, "scraper")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Log error: %s\n", err)
			return 1
		}
		defer scraperLog.Close()

		service := scraper.NewService(params.scraperCommand, scraperLog, mainLogger)
		fmt.Printf("Starting the scraper service on port %d\n", cfg.ScraperPort)
		if err := service.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Scraper service error: %s\n", err)
			return 1
		}
		defer service.Stop()
	}

	scraperClient := scraper.NewClient(serviceURL, scraper.WithLogger(mainLogger))
	if err := scraperClient.AwaitReady(params.readyTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Scraper service error: %s\n", err)
		return 1
	}

	cases, err := testcase.Load(params.casesPath, framework.WriterLogger(io.MultiWriter(os.Stdout, runLog)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test case error: %s\n", err)
		return 1
	}

	rep, err := reporter.New(cfg.ResultsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Results error: %s\n", err)
		return 1
	}

	apiClient := stackexchange.NewClient(cfg.APIBaseURL, cfg.Site, cfg.CacheDir, cfg.CacheTTL,
		stackexchange.WithLogger(mainLogger))

	env := &scrapertests.Environment{
		API:      apiClient,
		Scraper:  scraperClient,
		Reporter: rep,
		Site:     cfg.Site,
		Cases:    cases,
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)
	fmt.Println("Running test suite")

	testLogger := &reporter.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
		Mirror:               runLog,
	}

	results := scrapertests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(io.MultiWriter(os.Stdout, runLog), results)
	if err := rep.WriteManifest(results); err != nil {
		mainLogger.Printf("Could not write run manifest: %s", err)
	}

	if !results.OK() {
		return 1
	}
	return 0
}
