// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures shared between the store layer
// and the HTTP handlers. Every entity except Tenant itself carries a TenantID;
// tenant scoping is enforced by the store layer, which requires an explicit
// tenant ID on every query.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated logical blog sharing the same datastore.
// Requests are mapped to a tenant by hostname or the X-Tenant header.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Hostname  string    `json:"hostname"`
	CreatedAt time.Time `json:"created_at"`
}
