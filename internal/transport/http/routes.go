package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "scrapedash/docs"
)

func Routes(h *Handler, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", h.ListRuns)
		r.Post("/", h.StartRun)
		r.Get("/last", h.LastRun)
		r.Get("/active", h.ActiveRun)
	})

	r.Route("/datasets/{id}", func(r chi.Router) {
		r.Get("/", h.GetDataset)
		r.Get("/preview", h.PreviewDataset)
		r.Get("/export", h.ExportDataset)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
