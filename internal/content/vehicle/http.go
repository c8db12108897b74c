package vehicle

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averyclark/porchlight/internal/platform/middleware"
	requestutil "github.com/averyclark/porchlight/internal/platform/request"
	"github.com/averyclark/porchlight/internal/platform/respond"
	"github.com/averyclark/porchlight/pkg/convert"
	"github.com/averyclark/porchlight/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listVehicles)
	router.Get("/tags", handler.listTags)
	router.Get("/{slug}", handler.getVehicle)
	router.Get("/{slug}/posts", handler.listPosts)
	router.Get("/{slug}/posts/{postSlug}", handler.getPost)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.createVehicle)
		adminRoute.Put("/{slug}", handler.updateVehicle)
		adminRoute.Delete("/{slug}", handler.deleteVehicle)

		adminRoute.Post("/{slug}/posts", handler.createPost)
		adminRoute.Put("/{slug}/posts/{postSlug}", handler.updatePost)
		adminRoute.Delete("/{slug}/posts/{postSlug}", handler.deletePost)
	})
}

func (handler *Handler) listVehicles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Category: request.URL.Query().Get("category"),
	}

	vehicles, total, err := handler.service.ListVehicles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, vehicles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getVehicle(writer http.ResponseWriter, request *http.Request) {
	vehicle, err := handler.service.GetVehicle(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vehicle)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) createVehicle(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	vehicle, err := handler.service.CreateVehicle(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, vehicle)
}

func (handler *Handler) updateVehicle(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	vehicle, err := handler.service.UpdateVehicle(request.Context(), requestutil.Param(request, "slug"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vehicle)
}

func (handler *Handler) deleteVehicle(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteVehicle(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := PostFilter{
		All: requestutil.IsAdmin(request) && convert.ToBool(queryParams.Get("all")),
	}
	if queryParams.Has("published") {
		published := convert.ToBool(queryParams.Get("published"))
		filter.Published = &published
	}
	if queryParams.Has("featured") {
		featured := convert.ToBool(queryParams.Get("featured"))
		filter.Featured = &featured
	}

	posts, total, err := handler.service.ListPosts(request.Context(), requestutil.Param(request, "slug"), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.GetPost(request.Context(),
		requestutil.Param(request, "slug"),
		requestutil.Param(request, "postSlug"),
		requestutil.IsAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input PostInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), requestutil.Param(request, "slug"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, post)
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	var input PostInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.UpdatePost(request.Context(),
		requestutil.Param(request, "slug"),
		requestutil.Param(request, "postSlug"),
		&input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeletePost(request.Context(),
		requestutil.Param(request, "slug"),
		requestutil.Param(request, "postSlug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
