package view

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"15/03/2024", Date{2024, time.March, 15}, false},
		{" 2024-03-15 ", Date{2024, time.March, 15}, false},
		{"31/02/2024", Date{}, true},
		{"2024/03/15", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) returned nil error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) returned error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateFormatting(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 5}
	if d.String() != "05/03/2024" {
		t.Fatalf("String() = %q, want 05/03/2024", d.String())
	}
	if d.ISO() != "2024-03-05" {
		t.Fatalf("ISO() = %q, want 2024-03-05", d.ISO())
	}
}
