package sii

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		ok       bool
	}{
		{
			name:     "Simple manifest",
			content:  "SiiNunit\n{\nmod_package : .package_name\n{\n\tdisplay_name: \"Great Trailer Pack\"\n\tauthor: \"me\"\n}\n}\n",
			expected: "Great Trailer Pack",
			ok:       true,
		},
		{
			name:     "No spaces after colon",
			content:  `display_name:"Compact"`,
			expected: "Compact",
			ok:       true,
		},
		{
			name:    "Missing key",
			content: "SiiNunit\n{\n\tauthor: \"me\"\n}\n",
		},
		{
			name:    "Empty value",
			content: `display_name: ""`,
		},
		{
			name:     "First line with key is used",
			content:  "display_name: \"first\"\ndisplay_name: \"second\"",
			expected: "first",
			ok:       true,
		},
		{
			name:    "First line with key is malformed",
			content: "# display_name: unknown\ndisplay_name: \"second\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DisplayName(tt.content)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("DisplayName() = (%q, %v), want (%q, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}
