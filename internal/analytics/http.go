package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averyclark/porchlight/internal/platform/middleware"
	requestutil "github.com/averyclark/porchlight/internal/platform/request"
	"github.com/averyclark/porchlight/internal/platform/respond"
	"github.com/averyclark/porchlight/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/track", handler.track)

	router.With(middleware.RequireAdmin).Get("/stats", handler.stats)
}

// track always answers 200. A malformed body or storage failure must never
// surface to the visitor's page.
func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	var input TrackInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.OK(writer, map[string]bool{"ok": true})
		return
	}

	handler.service.Track(request.Context(), &input,
		request.Referer(),
		request.UserAgent(),
		middleware.RealIP(request))

	respond.OK(writer, map[string]bool{"ok": true})
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	stats, err := handler.service.Stats(request.Context(),
		queryParams.Get("period"),
		convert.ToBool(queryParams.Get("previous")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
