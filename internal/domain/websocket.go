package domain

const WsEventStatusReceived = "status_received"

type WsEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}
