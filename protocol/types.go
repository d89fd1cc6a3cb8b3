package protocol

// Context identifies one action instance on the host. It is opaque and only round-tripped.
type Context = string

// Settings is the persistent JSON object stored by the host per action instance
// (or per plugin for global settings).
type Settings map[string]any

// Outgoing verbs.
const (
	VerbRegisterPlugin          = "registerPlugin"
	VerbSetTitle                = "setTitle"
	VerbSetImage                = "setImage"
	VerbShowAlert               = "showAlert"
	VerbShowOk                  = "showOk"
	VerbSetSettings             = "setSettings"
	VerbGetSettings             = "getSettings"
	VerbSetGlobalSettings       = "setGlobalSettings"
	VerbGetGlobalSettings       = "getGlobalSettings"
	VerbSetState                = "setState"
	VerbSwitchToProfile         = "switchToProfile"
	VerbSendToPropertyInspector = "sendToPropertyInspector"
	VerbSendToPlugin            = "sendToPlugin"
	VerbOpenURL                 = "openUrl"
	VerbLogMessage              = "logMessage"
)

// Incoming verbs.
const (
	VerbKeyDown                       = "keyDown"
	VerbKeyUp                         = "keyUp"
	VerbWillAppear                    = "willAppear"
	VerbWillDisappear                 = "willDisappear"
	VerbTitleParametersDidChange      = "titleParametersDidChange"
	VerbDeviceDidConnect              = "deviceDidConnect"
	VerbDeviceDidDisconnect           = "deviceDidDisconnect"
	VerbApplicationDidLaunch          = "applicationDidLaunch"
	VerbApplicationDidTerminate       = "applicationDidTerminate"
	VerbSystemDidWakeUp               = "systemDidWakeUp"
	VerbPropertyInspectorDidAppear    = "propertyInspectorDidAppear"
	VerbPropertyInspectorDidDisappear = "propertyInspectorDidDisappear"
	VerbDidReceiveSettings            = "didReceiveSettings"
	VerbDidReceiveGlobalSettings      = "didReceiveGlobalSettings"
	// VerbSendToPlugin is also an incoming verb: the property inspector talking to the plugin.
)

// Target selects where a title or image is displayed.
type Target int

const (
	TargetHardwareAndSoftware Target = 0
	TargetHardwareOnly        Target = 1
	TargetSoftwareOnly        Target = 2
)

// DeviceType is the model of a connected device.
type DeviceType int

const (
	DeviceTypeStreamDeck       DeviceType = 0
	DeviceTypeStreamDeckMini   DeviceType = 1
	DeviceTypeStreamDeckXL     DeviceType = 2
	DeviceTypeStreamDeckMobile DeviceType = 3
	DeviceTypeCorsairGKeys     DeviceType = 4
	DeviceTypeStreamDeckPedal  DeviceType = 5
	DeviceTypeCorsairVoyager   DeviceType = 6
	DeviceTypeStreamDeckPlus   DeviceType = 7
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeStreamDeck:
		return "streamDeck"
	case DeviceTypeStreamDeckMini:
		return "streamDeckMini"
	case DeviceTypeStreamDeckXL:
		return "streamDeckXL"
	case DeviceTypeStreamDeckMobile:
		return "streamDeckMobile"
	case DeviceTypeCorsairGKeys:
		return "corsairGKeys"
	case DeviceTypeStreamDeckPedal:
		return "streamDeckPedal"
	case DeviceTypeCorsairVoyager:
		return "corsairVoyager"
	case DeviceTypeStreamDeckPlus:
		return "streamDeckPlus"
	default:
		return "unknown"
	}
}

// Coordinates locate a key on a device grid.
type Coordinates struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Size is a device grid size in keys.
type Size struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// TitleAlignment is the vertical alignment of a key title.
type TitleAlignment string

const (
	TitleAlignmentTop    TitleAlignment = "top"
	TitleAlignmentMiddle TitleAlignment = "middle"
	TitleAlignmentBottom TitleAlignment = "bottom"
)
