package protocol

import "encoding/json"

// Command is an outgoing message. The set of implementations is closed: one struct per verb.
type Command interface {
	Verb() string
	envelope() (Envelope, error)
}

// RegisterPlugin is the handshake command. Event is the registration verb the host
// passed on the command line and UUID the plugin identifier.
type RegisterPlugin struct {
	Event string
	UUID  string
}

func (c RegisterPlugin) Verb() string { return c.Event }

func (c RegisterPlugin) envelope() (Envelope, error) {
	return Envelope{Event: c.Event, UUID: c.UUID}, nil
}

// SetTitle changes the title of an action instance. A nil Title restores the user title.
// A nil State applies the title to every state.
type SetTitle struct {
	Context Context
	Title   *string
	Target  Target
	State   *int
}

type setTitlePayload struct {
	Title  *string `json:"title,omitempty"`
	Target Target  `json:"target"`
	State  *int    `json:"state,omitempty"`
}

func (c SetTitle) Verb() string { return VerbSetTitle }

func (c SetTitle) envelope() (Envelope, error) {
	payload, err := marshalPayload(setTitlePayload{Title: c.Title, Target: c.Target, State: c.State})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSetTitle, Context: c.Context, Payload: payload}, nil
}

// SetImage changes the image of an action instance. A nil Image restores the default image.
type SetImage struct {
	Context Context
	Image   *Image
	Target  Target
	State   *int
}

type setImagePayload struct {
	Image  string `json:"image,omitempty"`
	Target Target `json:"target"`
	State  *int   `json:"state,omitempty"`
}

func (c SetImage) Verb() string { return VerbSetImage }

func (c SetImage) envelope() (Envelope, error) {
	p := setImagePayload{Target: c.Target, State: c.State}
	if c.Image != nil {
		uri, err := c.Image.DataURI()
		if err != nil {
			return Envelope{}, err
		}
		p.Image = uri
	}

	payload, err := marshalPayload(p)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSetImage, Context: c.Context, Payload: payload}, nil
}

// ShowAlert flashes an alert icon on the key.
type ShowAlert struct {
	Context Context
}

func (c ShowAlert) Verb() string { return VerbShowAlert }

func (c ShowAlert) envelope() (Envelope, error) {
	return Envelope{Event: VerbShowAlert, Context: c.Context}, nil
}

// ShowOk flashes a checkmark on the key.
type ShowOk struct {
	Context Context
}

func (c ShowOk) Verb() string { return VerbShowOk }

func (c ShowOk) envelope() (Envelope, error) {
	return Envelope{Event: VerbShowOk, Context: c.Context}, nil
}

// SetSettings persists settings for an action instance.
type SetSettings struct {
	Context  Context
	Settings Settings
}

func (c SetSettings) Verb() string { return VerbSetSettings }

func (c SetSettings) envelope() (Envelope, error) {
	payload, err := marshalSettings(c.Settings)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSetSettings, Context: c.Context, Payload: payload}, nil
}

// GetSettings asks the host to answer with didReceiveSettings.
type GetSettings struct {
	Context Context
}

func (c GetSettings) Verb() string { return VerbGetSettings }

func (c GetSettings) envelope() (Envelope, error) {
	return Envelope{Event: VerbGetSettings, Context: c.Context}, nil
}

// SetGlobalSettings persists plugin wide settings. Context is the plugin UUID.
type SetGlobalSettings struct {
	Context  Context
	Settings Settings
}

func (c SetGlobalSettings) Verb() string { return VerbSetGlobalSettings }

func (c SetGlobalSettings) envelope() (Envelope, error) {
	payload, err := marshalSettings(c.Settings)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSetGlobalSettings, Context: c.Context, Payload: payload}, nil
}

// GetGlobalSettings asks the host to answer with didReceiveGlobalSettings. Context is the plugin UUID.
type GetGlobalSettings struct {
	Context Context
}

func (c GetGlobalSettings) Verb() string { return VerbGetGlobalSettings }

func (c GetGlobalSettings) envelope() (Envelope, error) {
	return Envelope{Event: VerbGetGlobalSettings, Context: c.Context}, nil
}

// SetState switches a multi-state action to State.
type SetState struct {
	Context Context
	State   int
}

type setStatePayload struct {
	State int `json:"state"`
}

func (c SetState) Verb() string { return VerbSetState }

func (c SetState) envelope() (Envelope, error) {
	payload, err := marshalPayload(setStatePayload{State: c.State})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSetState, Context: c.Context, Payload: payload}, nil
}

// SwitchToProfile switches Device to one of the plugin's bundled profiles.
type SwitchToProfile struct {
	Context Context
	Device  string
	Profile string
}

type switchToProfilePayload struct {
	Profile string `json:"profile"`
}

func (c SwitchToProfile) Verb() string { return VerbSwitchToProfile }

func (c SwitchToProfile) envelope() (Envelope, error) {
	payload, err := marshalPayload(switchToProfilePayload{Profile: c.Profile})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSwitchToProfile, Context: c.Context, Device: c.Device, Payload: payload}, nil
}

// SendToPropertyInspector forwards an arbitrary object to the property inspector of an action.
type SendToPropertyInspector struct {
	Action  string
	Context Context
	Payload map[string]any
}

func (c SendToPropertyInspector) Verb() string { return VerbSendToPropertyInspector }

func (c SendToPropertyInspector) envelope() (Envelope, error) {
	payload, err := marshalObject(c.Payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSendToPropertyInspector, Action: c.Action, Context: c.Context, Payload: payload}, nil
}

// SendToPlugin is sent by a property inspector to its plugin.
type SendToPlugin struct {
	Action  string
	Context Context
	Payload map[string]any
}

func (c SendToPlugin) Verb() string { return VerbSendToPlugin }

func (c SendToPlugin) envelope() (Envelope, error) {
	payload, err := marshalObject(c.Payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbSendToPlugin, Action: c.Action, Context: c.Context, Payload: payload}, nil
}

// OpenURL opens URL in the default browser.
type OpenURL struct {
	URL string
}

type openURLPayload struct {
	URL string `json:"url"`
}

func (c OpenURL) Verb() string { return VerbOpenURL }

func (c OpenURL) envelope() (Envelope, error) {
	payload, err := marshalPayload(openURLPayload{URL: c.URL})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbOpenURL, Payload: payload}, nil
}

// LogMessage writes Message to the host's log file.
type LogMessage struct {
	Message string
}

type logMessagePayload struct {
	Message string `json:"message"`
}

func (c LogMessage) Verb() string { return VerbLogMessage }

func (c LogMessage) envelope() (Envelope, error) {
	payload, err := marshalPayload(logMessagePayload{Message: c.Message})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: VerbLogMessage, Payload: payload}, nil
}

// marshalSettings never emits null: nil settings are sent as an empty object.
func marshalSettings(s Settings) (json.RawMessage, error) {
	if s == nil {
		s = Settings{}
	}
	return marshalPayload(s)
}

func marshalObject(m map[string]any) (json.RawMessage, error) {
	if m == nil {
		m = map[string]any{}
	}
	return marshalPayload(m)
}
