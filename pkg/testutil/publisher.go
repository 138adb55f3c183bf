package testutil

import (
	"context"
	"sync"

	"github.com/mealfeed/backend/pkg/pubsub"
)

// MockPublisher records published packs per topic.
type MockPublisher struct {
	mutex sync.Mutex
	packs map[string][]*pubsub.Pack
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{packs: map[string][]*pubsub.Pack{}}
}

func (p *MockPublisher) Publish(_ context.Context, topic string, pack *pubsub.Pack) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.packs[topic] = append(p.packs[topic], pack)
	return nil
}

func (p *MockPublisher) Stop(context.Context) error {
	return nil
}

func (p *MockPublisher) Packs(topic string) []*pubsub.Pack {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return append([]*pubsub.Pack{}, p.packs[topic]...)
}
