package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "\\documentclass{article}",
			want:  "\\documentclass{article}",
		},
		{
			name:  "latex fence",
			input: "```latex\n\\documentclass{article}\n\\begin{document}\n```",
			want:  "\\documentclass{article}\n\\begin{document}",
		},
		{
			name:  "bare fence",
			input: "```\nDear Hiring Manager,\n```",
			want:  "Dear Hiring Manager,",
		},
		{
			name:  "text language identifier",
			input: "```text\nDear Hiring Manager,\n```",
			want:  "Dear Hiring Manager,",
		},
		{
			name:  "surrounding whitespace",
			input: "  \n```latex\ncontent\n```\n  ",
			want:  "content",
		},
		{
			name:  "fence with latex on first line",
			input: "```\\documentclass{article}\n```",
			want:  "\\documentclass{article}",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.input))
		})
	}
}
