package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lotplan/internal/server"
	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
	"github.com/matzehuels/lotplan/pkg/observability"
	"github.com/matzehuels/lotplan/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address (default from config)
	autosave bool   // write the draft after every edit
	storeURL string // publication store (default from config)
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{autosave: true}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout over HTTP",
		Long: `Serve the layout over an HTTP JSON API. The draft is loaded at startup (or
created empty if it does not exist) and, with --autosave, written back after
every successful edit. Prometheus metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&opts.autosave, "autosave", opts.autosave, "save the draft after every edit")
	cmd.Flags().StringVar(&opts.storeURL, "store", "", "publication store URL (default from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	s, err := c.loadDraft()
	if errors.Is(err, errors.ErrCodeNotFound) {
		c.Logger.Info("starting with an empty layout", "draft", c.draftPath)
		s, err = layout.New(c.Config.LayoutOptions()...), nil
	}
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = c.Config.Server.Addr
	}
	url := opts.storeURL
	if url == "" {
		url = c.Config.Store.URL
	}
	st, err := store.Open(ctx, url)
	if err != nil {
		return err
	}
	defer st.Close()

	srvOpts := server.Options{Store: st, Logger: c.Logger, Metrics: server.NewMetrics()}
	if opts.autosave {
		srvOpts.DraftPath = c.draftPath
	}

	logs := &logHooks{logger: c.Logger}
	observability.SetLayoutHooks(observability.MultiLayoutHooks{logs, srvOpts.Metrics})
	observability.SetStoreHooks(observability.MultiStoreHooks{logs, srvOpts.Metrics})

	c.Logger.Info("serving layout", "spots", s.Len(), "store", store.Backend(st), "autosave", opts.autosave)
	return server.New(s, srvOpts).ListenAndServe(ctx, addr)
}
