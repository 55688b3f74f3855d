// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"promptpress/internal/ai"
	"promptpress/internal/generator"
	"promptpress/internal/middleware"
	"promptpress/internal/models"
)

// generateResponse is the generation endpoint's body, for both full success
// and mid-batch failure: articles created before a failure are always
// reported, never rolled back.
type generateResponse struct {
	Message  string           `json:"message"`
	Articles []models.Article `json:"articles"`
	Error    string           `json:"error,omitempty"`
}

// Generate runs the AI article generation pipeline for the tenant.
//
// Status mapping: invalid input 400, missing category/author/prompt 404,
// provider rate limit 429, provider credential problems 502, persistence
// and unexpected provider failures 500.
func (a *Admin) Generate(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req generator.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Apply the count default here too, so failure messages below report the
	// effective batch size rather than the omitted field's zero value.
	if req.Count == 0 {
		req.Count = 1
	}

	articles, err := a.generator.Generate(r.Context(), tenant.ID, req)
	if articles == nil {
		articles = []models.Article{}
	}
	if len(articles) > 0 {
		a.invalidate(r)
	}

	if err != nil {
		status := generateErrorStatus(err)
		slog.Error("article generation failed",
			"tenant", tenant.ID,
			"topic", req.Topic,
			"created", len(articles),
			"status", status,
			"error", err,
		)
		writeJSON(w, status, generateResponse{
			Message:  fmt.Sprintf("generated %d of %d article(s)", len(articles), req.Count),
			Articles: articles,
			Error:    err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, generateResponse{
		Message:  fmt.Sprintf("generated %d article(s)", len(articles)),
		Articles: articles,
	})
}

// generateErrorStatus maps pipeline failures to HTTP status codes.
func generateErrorStatus(err error) int {
	var ve *generator.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var nf *generator.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	if ai.IsRateLimited(err) {
		return http.StatusTooManyRequests
	}
	if ai.IsUnauthorized(err) {
		// A credential problem with the upstream provider, not with the
		// client's request.
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
