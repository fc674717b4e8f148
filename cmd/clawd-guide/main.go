// clawd-guide serves the setup guide while a provider key is missing.
//
// Usage:
//
//	clawd-guide
//	CLAWDBOT_GATEWAY_PORT=8080 CLAWDBOT_GUIDE_PATH=./index.html clawd-guide
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/clawdbot/clawd-guide/internal/api"
	"github.com/clawdbot/clawd-guide/internal/config"
	"github.com/clawdbot/clawd-guide/internal/guide"
	"github.com/clawdbot/clawd-guide/internal/metrics"
)

const envHelp = `Configuration is read from the environment:

  CLAWDBOT_GATEWAY_PORT     TCP port to bind (default 18789)
  CLAWDBOT_GATEWAY_HOST     interface to bind (default 0.0.0.0)
  CLAWDBOT_GUIDE_PATH       HTML template (default /usr/local/share/clawd-guide/index.html)
  CLAWDBOT_AUTH_CHOICE      replaces {{AUTH_CHOICE}} (default "(auto)")
  CLAWDBOT_MISSING_REASON   replaces {{MISSING_REASON}} (default "Provider key missing")
  CLAWDBOT_GUIDE_CACHE_TTL  keep the template in memory this long, e.g. 30s (default 0, off)
`

func main() {
	root := &cobra.Command{
		Use:           "clawd-guide",
		Short:         "Serve the clawdbot setup guide",
		Long:          envHelp,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.Environ())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, &cfg)
		},
	}

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	loader := guide.NewLoader(cfg.GuidePath, cfg.CacheTTL)

	// Non-fatal: the guide may be mounted after startup, and every request
	// re-reads it anyway.
	if err := guide.Probe(ctx, loader); err != nil {
		fmt.Fprint(os.Stderr, color.YellowString("Warning: guide template unavailable (%v); serving fallback page until it appears\n", err))
	}

	mc := metrics.NewCollector()
	srv := api.NewServer(cfg, loader, mc)
	srv.Out = os.Stdout
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	if err := srv.Run(ctx, addr); err != nil {
		return err
	}
	fmt.Printf("Shut down: %s\n", mc.Snapshot())
	return nil
}
