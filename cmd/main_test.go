package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pitchlab/rabona/internal/adapters/http/api"
	"github.com/pitchlab/rabona/internal/adapters/http/swagger"
	app "github.com/pitchlab/rabona/internal/app"
	"github.com/pitchlab/rabona/internal/config"
	"github.com/pitchlab/rabona/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("RABONA_ADDR", ":8080")
			_ = os.Setenv("RABONA_MEDIA_WORKER_COUNT", "4")
			_ = os.Setenv("RABONA_TOP_N", "3")
			defer func() {
				_ = os.Unsetenv("RABONA_ADDR")
				_ = os.Unsetenv("RABONA_MEDIA_WORKER_COUNT")
				_ = os.Unsetenv("RABONA_TOP_N")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MediaWorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.TopN, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithMediaWorkerCount(8),
					app.WithMediaQueueSize(2000),
					app.WithDedupeSize(1000),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing the system metrics updater", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When testing the service metrics updater", func() {
			svc := app.New()
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When updating system metrics directly", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("When updating service metrics directly", func() {
			svc := app.New()
			convey.So(func() {
				updateServiceMetrics(svc)
			}, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When wiring all components together", func() {
			dir := t.TempDir()
			_ = os.Setenv("RABONA_SESSION_DIR", dir+"/sessions")
			_ = os.Setenv("RABONA_MEDIA_DIR", dir+"/media")
			defer func() {
				_ = os.Unsetenv("RABONA_SESSION_DIR")
				_ = os.Unsetenv("RABONA_MEDIA_DIR")
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)

			svc := app.New(
				app.WithSessionDir(cfg.SessionDir),
				app.WithMediaDir(cfg.MediaDir),
				app.WithMediaWorkerCount(cfg.MediaWorkerCount),
				app.WithMediaQueueSize(cfg.MediaQueueSize),
				app.WithDedupeSize(cfg.DedupeSize),
			)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			server := api.NewServer(svc, svc, api.WithMaxUploadBytes(cfg.MaxUploadBytes))
			server.Register(ctx, mux)

			convey.Convey("Then the mux should serve all routes", func() {
				convey.So(mux, convey.ShouldNotBeNil)
			})
		})
	})
}
