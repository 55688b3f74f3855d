// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"strings"
	"testing"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		topic    string
		want     string
	}{
		{
			name:     "single placeholder",
			template: "Write about {topic} today.",
			topic:    "Go generics",
			want:     "Write about Go generics today.",
		},
		{
			name:     "placeholder at start",
			template: "{topic}: a deep dive",
			topic:    "Valkey",
			want:     "Valkey: a deep dive",
		},
		{
			name:     "repeated placeholder replaced everywhere",
			template: "Intro to {topic}. Why {topic} matters.",
			topic:    "pgx",
			want:     "Intro to pgx. Why pgx matters.",
		},
		{
			name:     "no placeholder passes through verbatim",
			template: "A fixed prompt with no substitution.",
			topic:    "ignored",
			want:     "A fixed prompt with no substitution.",
		},
		{
			name:     "empty template",
			template: "",
			topic:    "x",
			want:     "",
		},
		{
			name:     "no recursive expansion",
			template: "Write about {topic}.",
			topic:    "literal {topic} token",
			want:     "Write about literal {topic} token.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.template, tt.topic); got != tt.want {
				t.Errorf("Substitute: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubstituteLeavesNoResidualToken(t *testing.T) {
	got := Substitute("A {topic} B {topic} C", "X")
	if strings.Contains(got, "{topic}") {
		t.Errorf("residual placeholder remains: %q", got)
	}
}

func TestDefaultPromptTemplateHasPlaceholder(t *testing.T) {
	if !strings.Contains(defaultPromptTemplate, "{topic}") {
		t.Error("default prompt template must contain the topic placeholder")
	}
}
