package metrics

import "testing"

func TestCategory(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{100, ""},
		{200, "2xx"},
		{201, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		if got := Category(tt.status); got != tt.want {
			t.Errorf("Category(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
