// -- cmd/serve.go --
package cmd

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/kynelabs/graphscope/internal/demo"
	"github.com/kynelabs/graphscope/internal/engine"
	"github.com/kynelabs/graphscope/internal/observability"
	"github.com/kynelabs/graphscope/pkg/render"
	"github.com/kynelabs/graphscope/pkg/snapshot"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveFlags struct {
	addr string
}

// serveCmd runs a development server: a sample snapshot endpoint so the whole
// pipeline works without a real backend, a rendered SVG view of it, and the
// Prometheus metrics handler.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a development server with a sample snapshot endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := observability.GetLogger()
		json := jsoniter.ConfigCompatibleWithStandardLibrary

		// Point the engine at this very server.
		cfg.API.BaseURL = "http://" + serveFlags.addr

		client := snapshot.NewClient(snapshot.Options{
			BaseURL:      cfg.API.BaseURL,
			EndpointPath: cfg.API.EndpointPath,
			Timeout:      cfg.API.RequestTimeout,
			Logger:       log,
		})
		explorer := engine.New(cfg, client, log)
		defer explorer.Close()

		r := chi.NewRouter()
		r.Use(middleware.Recoverer)

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true,"service":"graphscope"}`))
		})

		r.Get(cfg.API.EndpointPath, func(w http.ResponseWriter, req *http.Request) {
			snap := demo.Snapshot(demo.ParseQuery(req.URL.Query()))
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(snap); err != nil {
				log.Warn("Failed to encode sample snapshot", zap.Error(err))
			}
		})

		r.Get("/view.svg", func(w http.ResponseWriter, req *http.Request) {
			if err := explorer.Refresh(req.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			surface := render.NewSVGSurface()
			render.New(surface, explorer.Camera(), log).Draw(explorer.Scene())
			w.Header().Set("Content-Type", "image/svg+xml")
			if _, err := surface.WriteTo(w); err != nil {
				log.Warn("Failed to write SVG view", zap.Error(err))
			}
		})

		r.Handle("/metrics", promhttp.Handler())

		srv := &http.Server{
			Addr:              serveFlags.addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info("Development server listening",
			zap.String("addr", serveFlags.addr),
			zap.String("snapshot_endpoint", cfg.API.EndpointPath))
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "localhost:8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
