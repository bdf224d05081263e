package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/cache"
	"github.com/matzehuels/glyphgrid/pkg/observability"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
	"github.com/matzehuels/glyphgrid/pkg/server"
	"github.com/matzehuels/glyphgrid/pkg/session"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		specDir  string
		ttl      time.Duration
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders and viewer sessions over HTTP",
		Long: `Serve renders and viewer sessions over HTTP.

Grids can be rendered straight from query parameters, from grid files in
--spec-dir, or through viewer sessions that keep a pan and zoom state
driven by pointer events (over plain requests or a websocket).

Artifacts are cached on disk by default, or in Redis with --redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var store cache.Cache
			switch {
			case noCache:
				store = cache.NewNullCache()
			case redisURL != "":
				rc, err := newRedisCache(ctx, redisURL)
				if err != nil {
					return fmt.Errorf("connect to redis: %w", err)
				}
				store = rc
				c.Logger.Info("using redis cache", "addr", rc.Addr())
			default:
				var err error
				if store, err = newCache(false); err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
			}

			observability.NewLogHooks(c.Logger).Register()
			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			opts := []server.Option{server.WithLogger(c.Logger), server.WithSessionTTL(ttl)}
			if specDir != "" {
				opts = append(opts, server.WithSpecDir(specDir))
				c.Logger.Info("serving grid files", "dir", specDir)
			}
			return server.New(runner, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the artifact cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&specDir, "spec-dir", "", "directory of grid files served under /specs/{name}")
	cmd.Flags().DurationVar(&ttl, "session-ttl", session.DefaultTTL, "idle time before a viewer session expires")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
