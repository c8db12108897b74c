// Copyright (c) 2026 Porchlight. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts the router's parameter extraction and common body decoding
patterns so handlers share one error path for malformed input.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averyclark/porchlight/internal/platform/ctxutil"
	"github.com/averyclark/porchlight/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into target.
// It returns validate.ErrInvalidJSON if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter (slug, id) from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IsAdmin reports whether the request carries a verified admin session.
func IsAdmin(request *http.Request) bool {
	return ctxutil.GetAdmin(request.Context()) != nil
}
