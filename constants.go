package deckconn

// SDKVersion is the plugin SDK version this module speaks.
const SDKVersion = 2

// Transport constants.
const (
	// LoopbackHost is the only address the host listens on.
	LoopbackHost = "127.0.0.1"
	// Scheme is the URL scheme used to reach the host. No TLS is involved.
	Scheme = "ws"
)

// Standard error messages
const (
	// Configuration errors
	ErrMsgInvalidParameters = "invalid launch parameters"
	ErrMsgInvalidInfo       = "invalid info parameter"

	// Connection errors
	ErrMsgNotConnected      = "connection not started"
	ErrMsgAlreadyStarted    = "connection already started"
	ErrMsgConnectionClosed  = "connection is closed"
	ErrMsgFailedToEncode    = "failed to encode command"
	ErrMsgFailedToConnect   = "failed to connect to host"
	ErrMsgFailedToRegister  = "failed to register plugin"
	ErrMsgFailedToSend      = "failed to send command"
	ErrMsgUnexpectedClosure = "websocket closed unexpectedly"
)

// WebSocket close codes the engine distinguishes (RFC 6455).
const (
	CloseNormalClosure   = 1000
	CloseGoingAway       = 1001
	CloseAbnormalClosure = 1006
)
