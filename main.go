package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/restqa/books-contract-tests/booktests"
	"github.com/restqa/books-contract-tests/client"
	"github.com/restqa/books-contract-tests/config"
	"github.com/restqa/books-contract-tests/framework"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	if params.settingsPath != "" {
		os.Setenv(config.SettingsPathEnvVar, params.settingsPath)
	}
	cfg, err := config.Load(params.baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
		mainDebugLogger = logrus.StandardLogger()
	}

	booksClient := client.NewBooksClient(cfg, mainDebugLogger)
	if err := booksClient.Probe(params.probeTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Books API error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := booktests.RunTestSuite(booksClient, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", rerunCommand(params, results))
		os.Exit(1)
	}
}
