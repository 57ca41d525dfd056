package scheme

import (
	"reflect"
	"testing"
)

func campbellDoc() map[string]any {
	return map[string]any{
		"name":         "Campbell",
		"foreground":   "#cccccc",
		"background":   "#0c0c0c",
		"black":        "#0c0c0c",
		"red":          "#c50f1f",
		"green":        "#13a10e",
		"yellow":       "#c19c00",
		"blue":         "#0037da",
		"purple":       "#881798",
		"cyan":         "#3a96dd",
		"white":        "#cccccc",
		"brightBlack":  "#767676",
		"brightRed":    "#e74856",
		"brightGreen":  "#16c60c",
		"brightYellow": "#f9f1a5",
		"brightBlue":   "#3b78ff",
		"brightPurple": "#b4009e",
		"brightCyan":   "#61d6d6",
		"brightWhite":  "#f2f2f2",
	}
}

func TestFromJSON(t *testing.T) {
	s, err := FromJSON(campbellDoc())
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if s.Name != "Campbell" {
		t.Errorf("Name = %q, want Campbell", s.Name)
	}
	if got := s.Foreground.Hex(); got != "#cccccc" {
		t.Errorf("Foreground = %q, want #cccccc", got)
	}
	if got := s.Table[1].Hex(); got != "#c50f1f" {
		t.Errorf("Table[red] = %q, want #c50f1f", got)
	}
	if got := s.Table[15].Hex(); got != "#f2f2f2" {
		t.Errorf("Table[brightWhite] = %q, want #f2f2f2", got)
	}
}

func TestLayerJSONPartial(t *testing.T) {
	s, err := FromJSON(campbellDoc())
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	err = s.LayerJSON(map[string]any{
		"background": "#1e1e1e",
		"unknownKey": "ignored",
	})
	if err != nil {
		t.Fatalf("LayerJSON: %v", err)
	}

	if got := s.Background.Hex(); got != "#1e1e1e" {
		t.Errorf("Background = %q, want #1e1e1e", got)
	}
	// Untouched keys keep their prior values.
	if got := s.Foreground.Hex(); got != "#cccccc" {
		t.Errorf("Foreground = %q, want #cccccc", got)
	}
	if s.Name != "Campbell" {
		t.Errorf("Name = %q, want Campbell", s.Name)
	}
}

func TestLayerJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{
			name: "malformed hex",
			doc:  map[string]any{"foreground": "not-a-color"},
		},
		{
			name: "color wrong type",
			doc:  map[string]any{"background": 42.0},
		},
		{
			name: "name wrong type",
			doc:  map[string]any{"name": 7.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("test")
			if err := s.LayerJSON(tt.doc); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	s, err := FromJSON(campbellDoc())
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	restored, err := FromJSON(s.ToJSON())
	if err != nil {
		t.Fatalf("FromJSON(ToJSON()): %v", err)
	}

	if !reflect.DeepEqual(restored, s) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", restored, s)
	}
}
