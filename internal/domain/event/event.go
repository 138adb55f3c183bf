package event

import (
	"encoding/json"

	"github.com/mealfeed/backend/pkg/pubsub"
)

type Event interface {
	Op() string
}

type envelope struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"data"`
}

// New wraps a domain event into a broker pack keyed by key.
func New(key string, ev Event) (*pubsub.Pack, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	msg, err := json.Marshal(envelope{Op: ev.Op(), Data: data})
	if err != nil {
		return nil, err
	}

	return &pubsub.Pack{Key: []byte(key), Msg: msg}, nil
}

// Parse returns the op and raw payload of a pack produced by New.
func Parse(pack *pubsub.Pack) (string, json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(pack.Msg, &env); err != nil {
		return "", nil, err
	}

	return env.Op, env.Data, nil
}
