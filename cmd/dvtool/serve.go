package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dvfile/internal/api"
	"github.com/samcharles93/dvfile/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		dataDir     string
		clip        float64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve DV files in a data directory over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "directory clients may open files from",
				Value:       ".",
				Destination: &dataDir,
			},
			&cli.FloatFlag{
				Name:        "clip",
				Usage:       "default contrast clip percent for rendered sections",
				Value:       0.5,
				Destination: &clip,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, cfg, &addr, &dataDir, &clip)

			server, err := api.NewServer(api.NewFileStore(), api.Config{
				DataDir:     dataDir,
				ClipPercent: clip,
				Logger:      log,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := server.Close(); err != nil {
					log.Warn("closing files", "error", err)
				}
			}()

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "data_dir", dataDir)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
