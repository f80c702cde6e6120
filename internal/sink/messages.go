package sink

// TypeImage is the only message type sent to a WebSocket receiver.
const TypeImage = "image"

// Message is the JSON envelope announcing an image. The image bytes follow
// in one binary message.
type Message struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Size   int    `json:"size,omitempty"`
}
