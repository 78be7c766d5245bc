package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "moroccan mobile national format",
			input: "0612345678",
			want:  "+212612345678",
		},
		{
			name:  "moroccan mobile international format",
			input: "+212612345678",
			want:  "+212612345678",
		},
		{
			name:  "french mobile international format",
			input: "+33612345678",
			want:  "+33612345678",
		},
		{
			name:  "spaces are tolerated",
			input: " +212 6 12 34 56 78 ",
			want:  "+212612345678",
		},
		{
			name:  "garbage",
			input: "not-a-phone",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
