// Copyright (c) 2026 Porchlight. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averyclark/porchlight/internal/platform/ctxutil"
	"github.com/averyclark/porchlight/internal/platform/middleware"
	requestutil "github.com/averyclark/porchlight/internal/platform/request"
	"github.com/averyclark/porchlight/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/admin", handler.login)

	router.With(middleware.RequireAdmin).Post("/logout", handler.logout)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAdmin(request.Context())

	if err := handler.service.Logout(request.Context(), claims.SessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
