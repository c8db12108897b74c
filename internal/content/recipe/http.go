// Copyright (c) 2026 Porchlight. All rights reserved.

package recipe

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
	router.Get("/", handler.listRecipes)
	router.Get("/search", handler.searchRecipes)
	router.Get("/{slug}", handler.getRecipe)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.createRecipe)
		adminRoute.Put("/{slug}", handler.updateRecipe)
		adminRoute.Delete("/{slug}", handler.deleteRecipe)
	})
}

func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Category: queryParams.Get("category"),
		Cuisine:  queryParams.Get("cuisine"),
		All:      requestutil.IsAdmin(request) && convert.ToBool(queryParams.Get("all")),
	}
	if queryParams.Has("featured") {
		featured := convert.ToBool(queryParams.Get("featured"))
		filter.Featured = &featured
	}
	if queryParams.Has("published") {
		published := convert.ToBool(queryParams.Get("published"))
		filter.Published = &published
	}

	recipes, total, err := handler.service.ListRecipes(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	recipeSlug := requestutil.Param(request, "slug")

	recipe, err := handler.service.GetRecipe(request.Context(), recipeSlug, requestutil.IsAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipe)
}

func (handler *Handler) searchRecipes(writer http.ResponseWriter, request *http.Request) {
	recipes, err := handler.service.SearchRecipes(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipes)
}

func (handler *Handler) createRecipe(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.CreateRecipe(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, recipe)
}

func (handler *Handler) updateRecipe(writer http.ResponseWriter, request *http.Request) {
	recipeSlug := requestutil.Param(request, "slug")

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.UpdateRecipe(request.Context(), recipeSlug, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipe)
}

func (handler *Handler) deleteRecipe(writer http.ResponseWriter, request *http.Request) {
	recipeSlug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteRecipe(request.Context(), recipeSlug); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
