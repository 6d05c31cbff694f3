package domain

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Category:Orkney Islands", "Orkney Islands"},
		{"Orkney Islands", "Orkney Islands"},
		{"Category:Churches_in_Orkney", "Churches in Orkney"},
		{"  Category:Kirkwall ", "Kirkwall"},
		{"Category:Maps of Category:Things", "Maps of Category:Things"},
		{"Category:Skára Brae", "Skára Brae"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := NormalizeName(tt.title); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestPageTitle(t *testing.T) {
	if got := PageTitle("Orkney Islands"); got != "Category:Orkney Islands" {
		t.Errorf("unexpected title %q", got)
	}
	if got := PageTitle("Category:Orkney Islands"); got != "Category:Orkney Islands" {
		t.Errorf("prefix should not be doubled, got %q", got)
	}
}
