// Command matchcore reads a CSV of orders, runs them through the matching
// engine in order, and writes the resulting execution reports back out as
// CSV. Tracing, if enabled in config, runs alongside on its own goroutine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/exchangecore/matchcore"
	"github.com/exchangecore/matchcore/config"
	"github.com/exchangecore/matchcore/internal/csvfeed"
	"github.com/exchangecore/matchcore/internal/trace"
	"github.com/exchangecore/matchcore/logging"
	"github.com/exchangecore/matchcore/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgPath := flag.String("config", "matchcore.yaml", "path to the YAML config file")
	inputCSV := flag.String("input", "", "override config: input CSV path")
	outputCSV := flag.String("output", "", "override config: output CSV path")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "matchcore: %v\n", err)
		return 1
	}
	if *inputCSV != "" {
		cfg.InputCSV = *inputCSV
	}
	if *outputCSV != "" {
		cfg.OutputCSV = *outputCSV
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "matchcore: %v\n", err)
		return 1
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "matchcore: %v\n", err)
		return 1
	}
	defer log.Close()

	if cfg.MetricsAddr != "" {
		metricsErr := make(chan error, 1)
		metrics.StartServer(cfg.MetricsAddr, metricsErr)
		go func() {
			if err := <-metricsErr; err != nil {
				log.Errorw("metrics server stopped", "error", err)
			}
		}()
	}

	return runEngine(cfg, log)
}

func runEngine(cfg config.AppConfig, log *logging.Logger) int {
	in, err := os.Open(cfg.InputCSV)
	if err != nil {
		log.Errorw("open input csv", "error", err)
		return 1
	}
	defer in.Close()

	orders, err := csvfeed.ReadOrders(in, func(line int, err error) {
		metrics.IngestErrorsTotal.Inc()
		log.LogIngestError(line, err)
	})
	if err != nil {
		log.Errorw("read input csv", "error", err)
		return 1
	}

	tracer, err := trace.NewTracer(cfg.Trace)
	if err != nil {
		log.Errorw("start tracer", "error", err)
		return 1
	}

	engine := matchcore.NewEngine(tracer)
	defer engine.Shutdown()

	exitCode := submitAll(engine, orders, log)

	out, err := os.Create(cfg.OutputCSV)
	if err != nil {
		log.Errorw("create output csv", "error", err)
		return 1
	}
	defer out.Close()

	if err := csvfeed.WriteReports(out, engine.Reports()); err != nil {
		log.Errorw("write output csv", "error", err)
		return 1
	}

	return exitCode
}

// submitAll feeds every parsed order to the engine, catching and logging
// engine invariant panics per spec §7 (fatal, but must not take the whole
// process down mid-write of a partially completed run without a clear exit
// code) and reports execution types to metrics as reports accumulate.
func submitAll(engine *matchcore.Engine, orders []csvfeed.ParsedOrder, log *logging.Logger) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(interface{ Error() string }); ok {
				log.LogEngineFatal(fmt.Errorf("%s", fe.Error()))
			} else {
				log.LogEngineFatal(fmt.Errorf("%v", r))
			}
			exitCode = 1
		}
	}()

	before := 0
	for _, o := range orders {
		if _, err := engine.Submit(o.Side, o.Type, o.Price, o.Quantity, o.ID); err != nil {
			metrics.IngestErrorsTotal.Inc()
			log.LogIngestError(0, err)
			continue
		}
		metrics.OrdersSubmitted.Inc()

		reports := engine.Reports()
		for _, r := range reports[before:] {
			metrics.ReportsEmitted.WithLabelValues(r.Type.String()).Inc()
		}
		before = len(reports)

		book := engine.Book()
		metrics.BookDepth.WithLabelValues(matchcore.Buy.String()).Set(float64(book.Depth(matchcore.Buy)))
		metrics.BookDepth.WithLabelValues(matchcore.Sell.String()).Set(float64(book.Depth(matchcore.Sell)))
		metrics.BookVolume.WithLabelValues(matchcore.Buy.String()).Set(float64(book.Volume(matchcore.Buy)))
		metrics.BookVolume.WithLabelValues(matchcore.Sell.String()).Set(float64(book.Volume(matchcore.Sell)))
		metrics.BookOrders.WithLabelValues(matchcore.Buy.String()).Set(float64(book.NumOrders(matchcore.Buy)))
		metrics.BookOrders.WithLabelValues(matchcore.Sell.String()).Set(float64(book.NumOrders(matchcore.Sell)))
	}
	return 0
}
