package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "paper.pdf", want: "paper.pdf"},
		{name: "spaces", input: "my paper (final).pdf", want: "my_paper__final_.pdf"},
		{name: "slashes", input: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{name: "unicode", input: "résumé.pdf", want: "r_sum_.pdf"},
		{name: "traversal", input: "../etc/passwd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "only unsafe", input: "///", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SanitizeFileName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeFileName(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFileName(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
