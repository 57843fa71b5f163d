package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Salle Voltaire", "Salle Voltaire"},
		{"surrounding whitespace", "  Salle Voltaire  ", "Salle Voltaire"},
		{"internal runs", "Salle\t\tVoltaire   2", "Salle Voltaire 2"},
		{"newlines", "Salle\nVoltaire", "Salle Voltaire"},
		{"empty", "", ""},
		{"only whitespace", "   \t\n ", ""},
	}

	for _, tc := range cases {
		if got := TrimAndNormalize(tc.input); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestNormalizeTag_Lowercases(t *testing.T) {
	if got := NormalizeTag("  WiFi 6 "); got != "wifi 6" {
		t.Errorf("expected %q, got %q", "wifi 6", got)
	}
	if got := NormalizeTag("Écran"); got != "écran" {
		t.Errorf("expected %q, got %q", "écran", got)
	}
}

func TestNormalizeTags_DedupesAndDropsEmpties(t *testing.T) {
	input := []string{"WiFi", "wifi", "  ", "Monitor", "WIFI", "monitor"}
	want := []string{"wifi", "monitor"}

	if got := NormalizeTags(input); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNormalizeTags_EmptyInput(t *testing.T) {
	if got := NormalizeTags(nil); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}
