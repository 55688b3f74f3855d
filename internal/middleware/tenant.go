// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"promptpress/internal/models"
)

type contextKey string

const tenantContextKey contextKey = "tenant"

// TenantResolver looks a tenant up by its serving hostname.
// *store.TenantStore satisfies this.
type TenantResolver interface {
	FindByHostname(hostname string) (*models.Tenant, error)
}

// ResolveTenant maps every request to a tenant and stores it in the request
// context. The X-Tenant header takes precedence over the Host header, so API
// clients and tests can address any tenant directly. Requests for unknown
// hostnames get a 404.
func ResolveTenant(resolver TenantResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hostname := r.Header.Get("X-Tenant")
			if hostname == "" {
				hostname = r.Host
				if host, _, err := net.SplitHostPort(hostname); err == nil {
					hostname = host
				}
			}

			tenant, err := resolver.FindByHostname(hostname)
			if err != nil {
				slog.Error("tenant lookup failed", "hostname", hostname, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if tenant == nil {
				http.Error(w, "Unknown Tenant", http.StatusNotFound)
				return
			}

			ctx := context.WithValue(r.Context(), tenantContextKey, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext returns the tenant resolved for this request, or nil
// outside the ResolveTenant middleware.
func TenantFromContext(ctx context.Context) *models.Tenant {
	tenant, _ := ctx.Value(tenantContextKey).(*models.Tenant)
	return tenant
}
