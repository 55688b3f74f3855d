// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import "fmt"

// ValidationError marks invalid client input. Surfaced before any external
// call is made; maps to HTTP 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError marks a missing reference entity (category, author, or
// prompt template). Surfaced before any generation work begins; maps to
// HTTP 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }
