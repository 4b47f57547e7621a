// -- cmd/render.go --
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kynelabs/graphscope/api/schemas"
	"github.com/kynelabs/graphscope/internal/engine"
	"github.com/kynelabs/graphscope/internal/observability"
	"github.com/kynelabs/graphscope/pkg/layout"
	"github.com/kynelabs/graphscope/pkg/render"
	"github.com/kynelabs/graphscope/pkg/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderFlags struct {
	output   string
	strategy string
	modality string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch a snapshot, lay it out, and render it to an SVG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if renderFlags.strategy != "" {
			if _, err := layout.ParseStrategy(renderFlags.strategy); err != nil {
				return err
			}
			cfg.Layout.Strategy = renderFlags.strategy
		}
		log := observability.GetLogger()

		client := snapshot.NewClient(snapshot.Options{
			BaseURL:      cfg.API.BaseURL,
			EndpointPath: cfg.API.EndpointPath,
			Timeout:      cfg.API.RequestTimeout,
			ForceHTTP2:   cfg.API.ForceHTTP2,
			Logger:       log,
		})
		explorer := engine.New(cfg, client, log)
		defer explorer.Close()

		if renderFlags.modality != "" {
			explorer.ApplyFilterState(schemas.FilterState{Modalities: []string{renderFlags.modality}})
		}
		if err := explorer.Refresh(context.Background()); err != nil {
			return err
		}

		surface := render.NewSVGSurface()
		renderer := render.New(surface, explorer.Camera(), log)
		renderer.Draw(explorer.Scene())

		out, err := os.Create(renderFlags.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
		if _, err := surface.WriteTo(out); err != nil {
			return fmt.Errorf("writing SVG: %w", err)
		}

		log.Info("Rendered graph",
			zap.String("output", renderFlags.output),
			zap.Int("elements", surface.ElementCount()))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.output, "output", "o", "graph.svg", "output SVG path")
	renderCmd.Flags().StringVar(&renderFlags.strategy, "strategy", "", "layout strategy: radial or column")
	renderCmd.Flags().StringVar(&renderFlags.modality, "modality", "", "filter to a single modality")
	rootCmd.AddCommand(renderCmd)
}
