package protocol

// Event is a decoded incoming message. The set of implementations is closed: one struct
// per verb plus Unrecognized. Consumers switch on the concrete type:
//
//	switch ev := event.(type) {
//	case protocol.KeyDown:
//	    ...
//	case protocol.WillAppear:
//	    ...
//	}
type Event interface {
	Verb() string
	isEvent()
}

// KeyPayload is the payload shared by key and appearance events.
type KeyPayload struct {
	Settings         Settings
	Coordinates      *Coordinates
	State            *int
	UserDesiredState *int
	IsInMultiAction  bool
}

// KeyInfo is the shape of keyDown, keyUp, willAppear and willDisappear.
type KeyInfo struct {
	Action  string
	Context Context
	Device  string
	Payload KeyPayload
}

// KeyDown is sent when the user presses a key.
type KeyDown struct{ KeyInfo }

// KeyUp is sent when the user releases a key.
type KeyUp struct{ KeyInfo }

// WillAppear is sent when an action instance becomes visible.
type WillAppear struct{ KeyInfo }

// WillDisappear is sent when an action instance stops being visible.
type WillDisappear struct{ KeyInfo }

func (KeyDown) Verb() string       { return VerbKeyDown }
func (KeyUp) Verb() string         { return VerbKeyUp }
func (WillAppear) Verb() string    { return VerbWillAppear }
func (WillDisappear) Verb() string { return VerbWillDisappear }

// TitleParameters describes how the user styled a key title.
type TitleParameters struct {
	FontFamily     string         `json:"fontFamily"`
	FontSize       int            `json:"fontSize"`
	FontStyle      string         `json:"fontStyle"`
	FontUnderline  bool           `json:"fontUnderline"`
	ShowTitle      bool           `json:"showTitle"`
	TitleAlignment TitleAlignment `json:"titleAlignment"`
	TitleColor     string         `json:"titleColor"`
}

// TitleParametersPayload is the payload of titleParametersDidChange.
type TitleParametersPayload struct {
	Coordinates     *Coordinates
	Settings        Settings
	State           int
	Title           string
	TitleParameters TitleParameters
}

// TitleParametersDidChange is sent when the user edits the title of an action instance.
type TitleParametersDidChange struct {
	Action  string
	Context Context
	Device  string
	Payload TitleParametersPayload
}

func (TitleParametersDidChange) Verb() string { return VerbTitleParametersDidChange }

// DeviceInfo describes a connected device.
type DeviceInfo struct {
	Name string     `json:"name"`
	Type DeviceType `json:"type"`
	Size Size       `json:"size"`
}

// DeviceDidConnect is sent when a device is plugged in.
type DeviceDidConnect struct {
	Device     string
	DeviceInfo DeviceInfo
}

// DeviceDidDisconnect is sent when a device is unplugged.
type DeviceDidDisconnect struct {
	Device string
}

func (DeviceDidConnect) Verb() string    { return VerbDeviceDidConnect }
func (DeviceDidDisconnect) Verb() string { return VerbDeviceDidDisconnect }

// ApplicationDidLaunch is sent when a monitored application starts.
type ApplicationDidLaunch struct {
	Application string
}

// ApplicationDidTerminate is sent when a monitored application exits.
type ApplicationDidTerminate struct {
	Application string
}

func (ApplicationDidLaunch) Verb() string    { return VerbApplicationDidLaunch }
func (ApplicationDidTerminate) Verb() string { return VerbApplicationDidTerminate }

// SystemDidWakeUp is sent when the computer wakes from sleep.
type SystemDidWakeUp struct{}

func (SystemDidWakeUp) Verb() string { return VerbSystemDidWakeUp }

// PropertyInspectorInfo identifies the action whose property inspector changed visibility.
type PropertyInspectorInfo struct {
	Action  string
	Context Context
	Device  string
}

// PropertyInspectorDidAppear is sent when the property inspector is shown.
type PropertyInspectorDidAppear struct{ PropertyInspectorInfo }

// PropertyInspectorDidDisappear is sent when the property inspector is hidden.
type PropertyInspectorDidDisappear struct{ PropertyInspectorInfo }

func (PropertyInspectorDidAppear) Verb() string    { return VerbPropertyInspectorDidAppear }
func (PropertyInspectorDidDisappear) Verb() string { return VerbPropertyInspectorDidDisappear }

// SettingsPayload is the payload of didReceiveSettings.
type SettingsPayload struct {
	Settings        Settings
	Coordinates     *Coordinates
	State           *int
	IsInMultiAction bool
}

// DidReceiveSettings answers getSettings, or reports settings changed by the property inspector.
type DidReceiveSettings struct {
	Action  string
	Context Context
	Device  string
	Payload SettingsPayload
}

// DidReceiveGlobalSettings answers getGlobalSettings.
type DidReceiveGlobalSettings struct {
	Settings Settings
}

func (DidReceiveSettings) Verb() string       { return VerbDidReceiveSettings }
func (DidReceiveGlobalSettings) Verb() string { return VerbDidReceiveGlobalSettings }

// SendToPluginEvent carries an object sent by the property inspector.
type SendToPluginEvent struct {
	Action  string
	Context Context
	Payload map[string]any
}

func (SendToPluginEvent) Verb() string { return VerbSendToPlugin }

// Unrecognized is returned by Decode for frames without a verb or with a verb outside
// the event catalog. It is not an error: the receive loop logs it and moves on.
type Unrecognized struct {
	Name string
	Raw  []byte
}

func (u Unrecognized) Verb() string { return u.Name }

func (KeyDown) isEvent()                       {}
func (KeyUp) isEvent()                         {}
func (WillAppear) isEvent()                    {}
func (WillDisappear) isEvent()                 {}
func (TitleParametersDidChange) isEvent()      {}
func (DeviceDidConnect) isEvent()              {}
func (DeviceDidDisconnect) isEvent()           {}
func (ApplicationDidLaunch) isEvent()          {}
func (ApplicationDidTerminate) isEvent()       {}
func (SystemDidWakeUp) isEvent()               {}
func (PropertyInspectorDidAppear) isEvent()    {}
func (PropertyInspectorDidDisappear) isEvent() {}
func (DidReceiveSettings) isEvent()            {}
func (DidReceiveGlobalSettings) isEvent()      {}
func (SendToPluginEvent) isEvent()             {}
func (Unrecognized) isEvent()                  {}
