package actor

// Message is any value an actor can receive. Types satisfy it by embedding
// BaseMessage and implementing MessageType.
type Message interface {
	messageMarker()

	// MessageType returns the type name of the message, used for logging
	// and tracing.
	MessageType() string
}

// BaseMessage is embedded in concrete message types to satisfy the
// unexported messageMarker method of Message.
type BaseMessage struct{}

func (BaseMessage) messageMarker() {}
