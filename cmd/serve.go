package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/core/container"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/core/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the snapshot scheduler.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
		if c.Config.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		if err := c.Scheduler.Start(); err != nil {
			return err
		}
		defer c.Scheduler.Stop()

		srv := &http.Server{
			Addr:         ":" + c.Config.Server.Port,
			Handler:      routes.NewRouter(c, Version),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: c.Config.Server.RequestTimeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			c.Logger.Info("http server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			c.Logger.Info("shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			c.Logger.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		c.Logger.Info("server stopped")
		return nil
	})
}
