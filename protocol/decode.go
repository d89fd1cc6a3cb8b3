package protocol

type eventParser func(obj object) (Event, error)

type commandParser func(obj object) (Command, error)

// eventParsers maps every incoming verb to its payload parser.
var eventParsers = map[string]eventParser{
	VerbKeyDown:                       keyEvent(func(k KeyInfo) Event { return KeyDown{k} }),
	VerbKeyUp:                         keyEvent(func(k KeyInfo) Event { return KeyUp{k} }),
	VerbWillAppear:                    keyEvent(func(k KeyInfo) Event { return WillAppear{k} }),
	VerbWillDisappear:                 keyEvent(func(k KeyInfo) Event { return WillDisappear{k} }),
	VerbTitleParametersDidChange:      parseTitleParametersDidChange,
	VerbDeviceDidConnect:              parseDeviceDidConnect,
	VerbDeviceDidDisconnect:           parseDeviceDidDisconnect,
	VerbApplicationDidLaunch:          applicationEvent(func(app string) Event { return ApplicationDidLaunch{Application: app} }),
	VerbApplicationDidTerminate:       applicationEvent(func(app string) Event { return ApplicationDidTerminate{Application: app} }),
	VerbSystemDidWakeUp:               func(object) (Event, error) { return SystemDidWakeUp{}, nil },
	VerbPropertyInspectorDidAppear:    inspectorEvent(func(p PropertyInspectorInfo) Event { return PropertyInspectorDidAppear{p} }),
	VerbPropertyInspectorDidDisappear: inspectorEvent(func(p PropertyInspectorInfo) Event { return PropertyInspectorDidDisappear{p} }),
	VerbDidReceiveSettings:            parseDidReceiveSettings,
	VerbDidReceiveGlobalSettings:      parseDidReceiveGlobalSettings,
	VerbSendToPlugin:                  parseSendToPluginEvent,
}

// commandParsers maps every outgoing verb except registration to its payload parser.
var commandParsers = map[string]commandParser{
	VerbSetTitle:                parseSetTitle,
	VerbSetImage:                parseSetImage,
	VerbShowAlert:               contextCommand(func(c Context) Command { return ShowAlert{Context: c} }),
	VerbShowOk:                  contextCommand(func(c Context) Command { return ShowOk{Context: c} }),
	VerbSetSettings:             settingsCommand(func(c Context, s Settings) Command { return SetSettings{Context: c, Settings: s} }),
	VerbGetSettings:             contextCommand(func(c Context) Command { return GetSettings{Context: c} }),
	VerbSetGlobalSettings:       settingsCommand(func(c Context, s Settings) Command { return SetGlobalSettings{Context: c, Settings: s} }),
	VerbGetGlobalSettings:       contextCommand(func(c Context) Command { return GetGlobalSettings{Context: c} }),
	VerbSetState:                parseSetState,
	VerbSwitchToProfile:         parseSwitchToProfile,
	VerbSendToPropertyInspector: parseSendToPropertyInspector,
	VerbSendToPlugin:            parseSendToPlugin,
	VerbOpenURL:                 parseOpenURL,
	VerbLogMessage:              parseLogMessage,
}

// actionFields reads the action, context and device fields every action scoped event carries.
func actionFields(obj object) (action string, ctx Context, device string, err error) {
	if err = obj.require(FieldAction, &action); err != nil {
		return
	}
	if err = obj.require(FieldContext, &ctx); err != nil {
		return
	}
	err = obj.require(FieldDevice, &device)
	return
}

func keyEvent(wrap func(KeyInfo) Event) eventParser {
	return func(obj object) (Event, error) {
		var k KeyInfo
		var err error
		if k.Action, k.Context, k.Device, err = actionFields(obj); err != nil {
			return nil, err
		}

		payload, err := obj.object(FieldPayload)
		if err != nil {
			return nil, err
		}
		if err := payload.require("settings", &k.Payload.Settings); err != nil {
			return nil, err
		}
		if err := payload.optional("coordinates", &k.Payload.Coordinates); err != nil {
			return nil, err
		}
		if err := payload.optional("state", &k.Payload.State); err != nil {
			return nil, err
		}
		if err := payload.optional("userDesiredState", &k.Payload.UserDesiredState); err != nil {
			return nil, err
		}
		if err := payload.optional("isInMultiAction", &k.Payload.IsInMultiAction); err != nil {
			return nil, err
		}
		return wrap(k), nil
	}
}

func parseTitleParametersDidChange(obj object) (Event, error) {
	var ev TitleParametersDidChange
	var err error
	if ev.Action, ev.Context, ev.Device, err = actionFields(obj); err != nil {
		return nil, err
	}

	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	if err := payload.require("settings", &ev.Payload.Settings); err != nil {
		return nil, err
	}
	if err := payload.require("titleParameters", &ev.Payload.TitleParameters); err != nil {
		return nil, err
	}
	if err := payload.optional("coordinates", &ev.Payload.Coordinates); err != nil {
		return nil, err
	}
	if err := payload.optional("state", &ev.Payload.State); err != nil {
		return nil, err
	}
	if err := payload.optional("title", &ev.Payload.Title); err != nil {
		return nil, err
	}
	return ev, nil
}

func parseDeviceDidConnect(obj object) (Event, error) {
	var ev DeviceDidConnect
	if err := obj.require(FieldDevice, &ev.Device); err != nil {
		return nil, err
	}
	if err := obj.require(FieldDeviceInfo, &ev.DeviceInfo); err != nil {
		return nil, err
	}
	return ev, nil
}

func parseDeviceDidDisconnect(obj object) (Event, error) {
	var ev DeviceDidDisconnect
	if err := obj.require(FieldDevice, &ev.Device); err != nil {
		return nil, err
	}
	return ev, nil
}

func applicationEvent(wrap func(string) Event) eventParser {
	return func(obj object) (Event, error) {
		payload, err := obj.object(FieldPayload)
		if err != nil {
			return nil, err
		}
		var app string
		if err := payload.require("application", &app); err != nil {
			return nil, err
		}
		return wrap(app), nil
	}
}

func inspectorEvent(wrap func(PropertyInspectorInfo) Event) eventParser {
	return func(obj object) (Event, error) {
		var p PropertyInspectorInfo
		var err error
		if p.Action, p.Context, p.Device, err = actionFields(obj); err != nil {
			return nil, err
		}
		return wrap(p), nil
	}
}

func parseDidReceiveSettings(obj object) (Event, error) {
	var ev DidReceiveSettings
	var err error
	if ev.Action, ev.Context, ev.Device, err = actionFields(obj); err != nil {
		return nil, err
	}

	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	if err := payload.require("settings", &ev.Payload.Settings); err != nil {
		return nil, err
	}
	if err := payload.optional("coordinates", &ev.Payload.Coordinates); err != nil {
		return nil, err
	}
	if err := payload.optional("state", &ev.Payload.State); err != nil {
		return nil, err
	}
	if err := payload.optional("isInMultiAction", &ev.Payload.IsInMultiAction); err != nil {
		return nil, err
	}
	return ev, nil
}

func parseDidReceiveGlobalSettings(obj object) (Event, error) {
	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	var ev DidReceiveGlobalSettings
	if err := payload.require("settings", &ev.Settings); err != nil {
		return nil, err
	}
	return ev, nil
}

func parseSendToPluginEvent(obj object) (Event, error) {
	var ev SendToPluginEvent
	if err := obj.require(FieldAction, &ev.Action); err != nil {
		return nil, err
	}
	if err := obj.require(FieldContext, &ev.Context); err != nil {
		return nil, err
	}
	if err := obj.require(FieldPayload, &ev.Payload); err != nil {
		return nil, err
	}
	return ev, nil
}

func contextCommand(wrap func(Context) Command) commandParser {
	return func(obj object) (Command, error) {
		var ctx Context
		if err := obj.require(FieldContext, &ctx); err != nil {
			return nil, err
		}
		return wrap(ctx), nil
	}
}

func settingsCommand(wrap func(Context, Settings) Command) commandParser {
	return func(obj object) (Command, error) {
		var ctx Context
		if err := obj.require(FieldContext, &ctx); err != nil {
			return nil, err
		}
		var settings Settings
		if err := obj.require(FieldPayload, &settings); err != nil {
			return nil, err
		}
		return wrap(ctx, settings), nil
	}
}

func parseSetTitle(obj object) (Command, error) {
	var cmd SetTitle
	if err := obj.require(FieldContext, &cmd.Context); err != nil {
		return nil, err
	}
	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	if err := payload.optional("title", &cmd.Title); err != nil {
		return nil, err
	}
	if err := payload.optional("target", &cmd.Target); err != nil {
		return nil, err
	}
	if err := payload.optional("state", &cmd.State); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseSetImage(obj object) (Command, error) {
	var cmd SetImage
	if err := obj.require(FieldContext, &cmd.Context); err != nil {
		return nil, err
	}
	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}

	var uri string
	if err := payload.optional("image", &uri); err != nil {
		return nil, err
	}
	if uri != "" {
		if cmd.Image, err = ParseDataURI(uri); err != nil {
			return nil, &fieldError{field: payload.path("image"), err: err}
		}
	}
	if err := payload.optional("target", &cmd.Target); err != nil {
		return nil, err
	}
	if err := payload.optional("state", &cmd.State); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseSetState(obj object) (Command, error) {
	var cmd SetState
	if err := obj.require(FieldContext, &cmd.Context); err != nil {
		return nil, err
	}
	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	if err := payload.require("state", &cmd.State); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseSwitchToProfile(obj object) (Command, error) {
	var cmd SwitchToProfile
	if err := obj.require(FieldContext, &cmd.Context); err != nil {
		return nil, err
	}
	if err := obj.require(FieldDevice, &cmd.Device); err != nil {
		return nil, err
	}
	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	if err := payload.require("profile", &cmd.Profile); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseSendToPropertyInspector(obj object) (Command, error) {
	var cmd SendToPropertyInspector
	if err := obj.require(FieldAction, &cmd.Action); err != nil {
		return nil, err
	}
	if err := obj.require(FieldContext, &cmd.Context); err != nil {
		return nil, err
	}
	if err := obj.require(FieldPayload, &cmd.Payload); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseSendToPlugin(obj object) (Command, error) {
	var cmd SendToPlugin
	if err := obj.require(FieldAction, &cmd.Action); err != nil {
		return nil, err
	}
	if err := obj.require(FieldContext, &cmd.Context); err != nil {
		return nil, err
	}
	if err := obj.require(FieldPayload, &cmd.Payload); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseOpenURL(obj object) (Command, error) {
	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	var cmd OpenURL
	if err := payload.require("url", &cmd.URL); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseLogMessage(obj object) (Command, error) {
	payload, err := obj.object(FieldPayload)
	if err != nil {
		return nil, err
	}
	var cmd LogMessage
	if err := payload.require("message", &cmd.Message); err != nil {
		return nil, err
	}
	return cmd, nil
}
