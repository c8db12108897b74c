// Copyright (c) 2026 Porchlight. All rights reserved.

package project

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
	router.Get("/", handler.listProjects)
	router.Get("/search", handler.searchProjects)
	router.Get("/{slug}", handler.getProject)
	router.Get("/{slug}/images", handler.listImages)
	router.Get("/{slug}/updates", handler.listUpdates)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.createProject)
		adminRoute.Put("/{slug}", handler.updateProject)
		adminRoute.Delete("/{slug}", handler.deleteProject)

		adminRoute.Put("/{slug}/images", handler.replaceImages)
		adminRoute.Post("/{slug}/updates", handler.createUpdate)
		adminRoute.Delete("/{slug}/updates/{id}", handler.deleteUpdate)
	})
}

func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Category: queryParams.Get("category"),
		Status:   queryParams.Get("status"),
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

	projects, total, err := handler.service.ListProjects(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, projects, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	project, err := handler.service.GetProject(request.Context(), requestutil.Param(request, "slug"), requestutil.IsAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

func (handler *Handler) searchProjects(writer http.ResponseWriter, request *http.Request) {
	projects, err := handler.service.SearchProjects(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, projects)
}

func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.CreateProject(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, project)
}

func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.UpdateProject(request.Context(), requestutil.Param(request, "slug"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteProject(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listImages(writer http.ResponseWriter, request *http.Request) {
	images, err := handler.service.ListImages(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, images)
}

func (handler *Handler) replaceImages(writer http.ResponseWriter, request *http.Request) {
	var inputs []ImageInput
	if err := requestutil.DecodeJSON(request, &inputs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	images, err := handler.service.ReplaceImages(request.Context(), requestutil.Param(request, "slug"), inputs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, images)
}

func (handler *Handler) listUpdates(writer http.ResponseWriter, request *http.Request) {
	updates, err := handler.service.ListUpdates(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updates)
}

func (handler *Handler) createUpdate(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update, err := handler.service.CreateUpdate(request.Context(), requestutil.Param(request, "slug"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, update)
}

func (handler *Handler) deleteUpdate(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeleteUpdate(request.Context(),
		requestutil.Param(request, "slug"),
		requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
