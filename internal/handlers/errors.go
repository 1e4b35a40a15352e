// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

// errResponse is the JSON error payload for all API failures.
type errResponse struct {
	HTTPStatusCode int `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

// Render sets the response status code before the payload is marshalled.
func (e *errResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// errInvalidRequest reports a validation failure (400).
func errInvalidRequest(err error) render.Renderer {
	return &errResponse{
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// errNotFound reports an absent resource (404).
func errNotFound(msg string) render.Renderer {
	return &errResponse{
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		ErrorText:      msg,
	}
}

// errConflict reports a duplicate-slug collision (409).
func errConflict(err error) render.Renderer {
	return &errResponse{
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict.",
		ErrorText:      err.Error(),
	}
}

// errInternal reports an unexpected failure (500). The cause is logged
// at the call site and deliberately not included in the response.
func errInternal() render.Renderer {
	return &errResponse{
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
	}
}
