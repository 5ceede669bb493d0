package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pitchlab/rabona/internal/probe"
)

// Default configuration constants.
const (
	defaultNumClips     = 1000
	defaultClipBytes    = 64 << 10
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultProbeTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numClips   = flag.Int("clips", defaultNumClips, "Number of synthetic clips to submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		clipBytes  = flag.Int("clip-bytes", defaultClipBytes, "Size of each synthetic clip payload")
		duplicates = flag.Int("duplicates", 0, "Extra resubmissions of the first clip")
		logFile    = flag.String("log", "", "Log file for probe output (default: probe_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := probe.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	config := &probe.Config{
		BaseURL:    *baseURL,
		NumClips:   *numClips,
		Workers:    *workers,
		Timeout:    *timeout,
		ClipBytes:  *clipBytes,
		Duplicates: *duplicates,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := probe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		return
	}
}
