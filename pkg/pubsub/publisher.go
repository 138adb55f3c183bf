package pubsub

import "context"

// Pack is the unit exchanged through a message broker. Key determines the
// partition, Msg carries the serialized event.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Stop(ctx context.Context) error
}
