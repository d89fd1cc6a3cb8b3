// Package appinfo decodes the info document passed to a plugin with the -info flag.
package appinfo

import (
	"encoding/json"
	"fmt"

	"github.com/luciancaetano/deckconn"
	"github.com/luciancaetano/deckconn/protocol"
)

// Platforms reported in Application.Platform.
const (
	PlatformMac     = "mac"
	PlatformWindows = "windows"
)

// Info describes the host application and the devices attached to it.
type Info struct {
	Application      Application `json:"application"`
	Plugin           Plugin      `json:"plugin"`
	DevicePixelRatio int         `json:"devicePixelRatio"`
	Colors           Colors      `json:"colors"`
	Devices          []Device    `json:"devices"`
}

// Application is the host application.
type Application struct {
	Font            string `json:"font"`
	Language        string `json:"language"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	Version         string `json:"version"`
}

// Plugin is the running plugin as the host sees it.
type Plugin struct {
	UUID    string `json:"uuid"`
	Version string `json:"version"`
}

// Colors are the host UI colors, as hex strings.
type Colors struct {
	ButtonPressedBackgroundColor   string `json:"buttonPressedBackgroundColor"`
	ButtonPressedBorderColor       string `json:"buttonPressedBorderColor"`
	ButtonPressedTextColor         string `json:"buttonPressedTextColor"`
	ButtonMouseOverBackgroundColor string `json:"buttonMouseOverBackgroundColor"`
	DisabledColor                  string `json:"disabledColor"`
	HighlightColor                 string `json:"highlightColor"`
	MouseDownColor                 string `json:"mouseDownColor"`
}

// Device is one device known to the host at launch.
type Device struct {
	ID   string              `json:"id"`
	Name string              `json:"name"`
	Type protocol.DeviceType `json:"type"`
	Size protocol.Size       `json:"size"`
}

// Parse decodes raw. Unknown fields are ignored; a document that is not a JSON object,
// or whose known fields have the wrong type, wraps deckconn.ErrInvalidInfo.
func Parse(raw string) (*Info, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", deckconn.ErrInvalidInfo, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: info is null", deckconn.ErrInvalidInfo)
	}

	var info Info
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("%w: %v", deckconn.ErrInvalidInfo, err)
	}
	return &info, nil
}

// Device returns the device with the given id.
func (i *Info) Device(id string) (Device, bool) {
	for _, d := range i.Devices {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}
