package logger

import "testing"

func TestMaskPhone(t *testing.T) {
	got := MaskPhone("+62 812-3456-7890")
	want := "****7890"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if MaskPhone("") != "" {
		t.Fatalf("expected empty phone to stay empty")
	}
}

func TestMaskText(t *testing.T) {
	if got := MaskText("paid at the counter"); got != "****" {
		t.Fatalf("expected masked text, got %q", got)
	}
	if got := MaskText("  "); got != "" {
		t.Fatalf("expected blank text to stay empty, got %q", got)
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"phone":    "0812345678",
		"category": "groceries",
		"nested": map[string]any{
			"billing_address": "Jl. Merdeka 17",
		},
	}
	masked := MaskJSON(input)
	if masked["phone"] != "****5678" {
		t.Fatalf("expected masked phone, got %v", masked["phone"])
	}
	if masked["category"] != "groceries" {
		t.Fatalf("expected category untouched, got %v", masked["category"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["billing_address"] != "****a 17" {
		t.Fatalf("expected masked address, got %v", nested["billing_address"])
	}
}
