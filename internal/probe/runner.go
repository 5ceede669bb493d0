package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchlab/rabona/pkg/logger"
)

// Runner configuration constants.
const (
	percentageMultiplier = 100
)

// Run executes the complete analysis probe.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting rabona analysis probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("clips", config.NumClips),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("clipBytes", config.ClipBytes),
		logger.Int("duplicates", config.Duplicates),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate synthetic clips
	clips, err := generateClips(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("clip generation failed: %w", err)
	}

	// Resubmitting the first clip re-analyzes it but skips media retention.
	for i := 0; i < config.Duplicates && len(clips) > 0; i++ {
		clips = append(clips, clips[0])
	}

	// Step 3: Submit clips concurrently
	responses, err := submitClips(ctx, config, clips, stats)
	if err != nil {
		return fmt.Errorf("clip submission failed: %w", err)
	}

	// Step 4: Verify stored sessions round-trip
	if err := verifySessions(ctx, config, responses, stats); err != nil {
		return fmt.Errorf("session verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "probe completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/health"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != 200 {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final probe statistics.
func displayFinalStats(stats *Stats) {
	var successRate, clipsPerSecond float64

	if stats.ClipsSubmitted > 0 {
		successRate = float64(stats.ClipsSuccessful) / float64(stats.ClipsSubmitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		clipsPerSecond = float64(stats.ClipsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("clipsGenerated", stats.ClipsGenerated),
		logger.Int("clipsSubmitted", stats.ClipsSubmitted),
		logger.Int("clipsSuccessful", stats.ClipsSuccessful),
		logger.Int("clipsFailed", stats.ClipsFailed),
		logger.Int("responsesInvalid", stats.ResponsesInvalid),
		logger.Int("sessionsVerified", stats.SessionsVerified),
		logger.Int("sessionMismatches", stats.SessionMismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("clipsPerSecond", clipsPerSecond))
}
