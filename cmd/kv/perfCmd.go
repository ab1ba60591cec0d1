package kv

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hydrakv/hydrakv-go/cmd/util"
	"github.com/hydrakv/hydrakv-go/lib/bench"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for HydraKV servers",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfNumOps           = 1000
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	KeyValueCommands.PersistentFlags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	KeyValueCommands.PersistentFlags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "ops"
	KeyValueCommands.PersistentFlags().Int(key, 1000, util.WrapString("Number of operations per benchmark"))
	key = "large-value-size"
	KeyValueCommands.PersistentFlags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	KeyValueCommands.PersistentFlags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfNumOps = viper.GetInt("ops")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	fmt.Println("Performance testing tool for HydraKV servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	conf := kvClient.Config()
	fmt.Println(conf.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Operations: %d\n", perfNumOps)
	fmt.Println()

	// The target database may already exist, a failed creation is fine.
	_ = kvClient.CreateDB(ctx, dbName())

	fmt.Println("starting tests...")

	// Create results map
	results := make(map[string]bench.Stats)
	record := func(test string, stats bench.Stats) {
		results[test] = stats
		printResult(test, stats)
	}

	record("set", runTest("set", func(i int) error {
		return kvClient.Set(ctx, dbName(), testKey("set", i), "test", 0, apiKeyArgs()...)
	}))
	cleanupKeys(ctx, "set")

	largeValue := strings.Repeat("x", perfLargeValueSizeKB*1024)
	record("set-large", runTest("set-large", func(i int) error {
		return kvClient.Set(ctx, dbName(), testKey("set-large", i), largeValue, 0, apiKeyArgs()...)
	}))
	cleanupKeys(ctx, "set-large")

	prepareKeys(ctx, "get")
	record("get", runTest("get", func(i int) error {
		_, _, err := kvClient.Get(ctx, dbName(), testKey("get", i), apiKeyArgs()...)
		return err
	}))
	cleanupKeys(ctx, "get")

	// Missing keys are a regular outcome and must be as cheap as hits.
	record("get-missing", runTest("get-missing", func(i int) error {
		_, _, err := kvClient.Get(ctx, dbName(), testKey("missing", i), apiKeyArgs()...)
		return err
	}))

	record("incr", runTest("incr", func(i int) error {
		_, err := kvClient.Incr(ctx, dbName(), testKey("incr", i), 1, apiKeyArgs()...)
		return err
	}))
	cleanupKeys(ctx, "incr")

	prepareKeys(ctx, "delete")
	record("delete", runTest("delete", func(i int) error {
		return kvClient.Delete(ctx, dbName(), testKey("delete", i), apiKeyArgs()...)
	}))

	prepareKeys(ctx, "mixed")
	record("mixed", runTest("mixed", func(i int) error {
		key := testKey("mixed", i)
		switch i % 4 {
		case 0: // set
			return kvClient.Set(ctx, dbName(), key, "test", 0, apiKeyArgs()...)
		case 1: // get
			_, _, err := kvClient.Get(ctx, dbName(), key, apiKeyArgs()...)
			return err
		case 2: // incr
			_, err := kvClient.Incr(ctx, dbName(), key+"-n", 1, apiKeyArgs()...)
			return err
		default: // delete
			return kvClient.Delete(ctx, dbName(), key, apiKeyArgs()...)
		}
	}))
	cleanupKeys(ctx, "mixed")

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// runTest drives op from perfNumThreads workers until perfNumOps operations
// are done, timing each one.
func runTest(test string, op func(int) error) bench.Stats {
	if shouldSkip(test) {
		return bench.Stats{}
	}

	timer := gometrics.NewTimer()
	defer timer.Stop()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for t := 0; t < perfNumThreads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(counter.Add(1)) - 1
				if i >= perfNumOps {
					return
				}
				start := time.Now()
				if err := op(i); err != nil {
					log.Printf("(%s) - operation failed: %v\n", test, err)
				}
				timer.UpdateSince(start)
			}
		}()
	}
	wg.Wait()

	return bench.NewStatsFromTimer(timer)
}

// testKey returns the i-th benchmark key for a test (with wraparound).
func testKey(test string, i int) string {
	return fmt.Sprintf("%s-%s-%d", perfKeyPrefix, test, i%perfKeySpread)
}

// prepareKeys sets all benchmark keys of a test so reads and deletes hit.
func prepareKeys(ctx context.Context, test string) {
	for i := 0; i < perfKeySpread; i++ {
		if err := kvClient.Set(ctx, dbName(), testKey(test, i), "test", 0, apiKeyArgs()...); err != nil {
			log.Printf("(%s) - error preparing key: %v\n", test, err)
		}
	}
}

// cleanupKeys deletes all benchmark keys of a test.
func cleanupKeys(ctx context.Context, test string) {
	for i := 0; i < perfKeySpread; i++ {
		if err := kvClient.Delete(ctx, dbName(), testKey(test, i), apiKeyArgs()...); err != nil {
			log.Printf("(%s) - error deleting key: %v\n", test, err)
		}
	}
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, stats bench.Stats) {
	if stats.Count == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	opsPerSec := 1.0 / stats.Mean * float64(perfNumThreads)
	fmt.Printf("%-20s%s/op\tp95 %s\tp99 %s\t%.0f ops/sec\n",
		test,
		time.Duration(stats.Mean*float64(time.Second)),
		time.Duration(stats.P95*float64(time.Second)),
		time.Duration(stats.P99*float64(time.Second)),
		opsPerSec,
	)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]bench.Stats) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Count", "MeanSec", "MinSec", "MaxSec", "StdDevSec", "P50Sec", "P95Sec", "P99Sec", "Skipped",
		"Host", "Transport", "Codec",
		"Threads", "Ops", "LargeValueSizeKB", "KeysCount",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	conf := kvClient.Config()
	sec := func(v float64) string { return strconv.FormatFloat(v, 'f', 9, 64) }

	// Write test results
	for test, stats := range results {
		row := []string{
			test,
			strconv.Itoa(stats.Count),
			sec(stats.Mean),
			sec(stats.Min),
			sec(stats.Max),
			sec(stats.StdDeviation),
			sec(stats.P50),
			sec(stats.P95),
			sec(stats.P99),
			strconv.FormatBool(stats.Count == 0),
			conf.Host,
			string(conf.Transport),
			conf.Codec,
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfNumOps),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
