package appinfo

import (
	"errors"
	"testing"

	"github.com/luciancaetano/deckconn"
	"github.com/luciancaetano/deckconn/protocol"
)

const sampleInfo = `{
	"application": {"font": ".AppleSystemUIFont", "language": "en", "platform": "mac", "platformVersion": "14.4.1", "version": "6.5.2.19321"},
	"plugin": {"uuid": "com.example.counter", "version": "1.0.0"},
	"devicePixelRatio": 2,
	"colors": {"highlightColor": "#0078FFFF", "mouseDownColor": "#2EA8FFFF"},
	"devices": [
		{"id": "55F16B35884A859CCE4FFA1FC8D3DE5B", "name": "Stream Deck XL", "type": 2, "size": {"columns": 8, "rows": 4}},
		{"id": "A1B2", "name": "Pedal", "type": 5, "size": {"columns": 3, "rows": 1}}
	]
}`

// TestParse tests decoding of a full info document
func TestParse(t *testing.T) {
	t.Parallel()

	info, err := Parse(sampleInfo)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if info.Application.Version != "6.5.2.19321" {
		t.Errorf("Application.Version = %q", info.Application.Version)
	}
	if info.Application.Platform != PlatformMac {
		t.Errorf("Application.Platform = %q, want %q", info.Application.Platform, PlatformMac)
	}
	if info.Application.Language != "en" {
		t.Errorf("Application.Language = %q, want en", info.Application.Language)
	}
	if info.Plugin.UUID != "com.example.counter" {
		t.Errorf("Plugin.UUID = %q", info.Plugin.UUID)
	}
	if info.DevicePixelRatio != 2 {
		t.Errorf("DevicePixelRatio = %d, want 2", info.DevicePixelRatio)
	}
	if info.Colors.HighlightColor != "#0078FFFF" {
		t.Errorf("Colors.HighlightColor = %q", info.Colors.HighlightColor)
	}
	if len(info.Devices) != 2 {
		t.Fatalf("len(Devices) = %d, want 2", len(info.Devices))
	}

	pedal, ok := info.Device("A1B2")
	if !ok {
		t.Fatal("Device(A1B2) not found")
	}
	if pedal.Type != protocol.DeviceTypeStreamDeckPedal {
		t.Errorf("pedal.Type = %v, want %v", pedal.Type, protocol.DeviceTypeStreamDeckPedal)
	}
	if pedal.Size.Columns != 3 || pedal.Size.Rows != 1 {
		t.Errorf("pedal.Size = %+v", pedal.Size)
	}

	if _, ok := info.Device("missing"); ok {
		t.Error("Device(missing) found")
	}
}

// TestParseEmptyObject tests that an empty object is valid auxiliary metadata
func TestParseEmptyObject(t *testing.T) {
	t.Parallel()

	info, err := Parse("{}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(info.Devices) != 0 {
		t.Errorf("len(Devices) = %d, want 0", len(info.Devices))
	}
}

// TestParseInvalid tests that malformed documents are configuration errors
func TestParseInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"truncated", `{"application":`},
		{"array", `[]`},
		{"null", `null`},
		{"string", `"info"`},
		{"mistyped devices", `{"devices":"none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.raw)
			if !errors.Is(err, deckconn.ErrInvalidInfo) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidInfo", tt.raw, err)
			}
		})
	}
}
