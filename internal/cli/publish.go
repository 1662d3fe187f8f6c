package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/publish"
	"github.com/matzehuels/lotplan/pkg/store"
)

// publishOpts holds the command-line flags for the publish command.
type publishOpts struct {
	lotFile  string // lot metadata (TOML or YAML)
	storeURL string // overrides [store] url
}

func (c *CLI) publishCommand() *cobra.Command {
	var opts publishOpts

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the layout with its lot metadata",
		Long: `Publish the layout: combine the lot metadata file (name, address, coordinates,
hourly price) with every spot's label, position and rotation, and write the
result to the configured store (file, Redis or MongoDB).`,
		Example: `  lotplan publish --lot lot.toml
  lotplan publish --lot lot.yaml --store redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPublish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.lotFile, "lot", "lot.toml", "lot metadata file (.toml or .yaml)")
	cmd.Flags().StringVar(&opts.storeURL, "store", "", "store URL (default from config)")

	return cmd
}

func (c *CLI) runPublish(ctx context.Context, opts publishOpts) error {
	s, err := c.loadDraft()
	if err != nil {
		return err
	}
	lot, err := publish.LoadLot(opts.lotFile)
	if err != nil {
		return err
	}
	pub, err := publish.Build(lot, s)
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidInput) {
			printViolations(s)
		}
		return err
	}

	url := opts.storeURL
	if url == "" {
		url = c.Config.Store.URL
	}
	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, "Publishing...")
	spin.Start()
	st, err := store.Open(ctx, url)
	if err != nil {
		spin.Stop()
		return err
	}
	defer st.Close()

	err = store.Save(ctx, st, pub)
	spin.Stop()
	if err != nil {
		return err
	}

	prog.done("published")
	printSuccess("Published %s with %d spot(s)", StyleHighlight.Render(pub.Lot.Name), pub.TotalSpots)
	printKeyValue("ID", pub.ID)
	printKeyValue("Store", store.Backend(st))
	return nil
}
