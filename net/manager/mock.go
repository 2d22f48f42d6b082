package manager

import (
	kafkaGo "github.com/segmentio/kafka-go"
)

// MockDataManager collects handlers in memory so tests can emit messages
// without a broker
type MockDataManager struct {
	handlers map[string]EventHandler
}

// NewMockDataManager constructor
func NewMockDataManager() *MockDataManager {
	return &MockDataManager{handlers: map[string]EventHandler{}}
}

// Subscribe registers the handler for the topic
func (dm *MockDataManager) Subscribe(topic string, handler EventHandler) {
	dm.handlers[topic] = handler
}

// Close godoc
func (dm *MockDataManager) Close() {}

// Emit feeds a message to the registered handler for the topic
func (dm *MockDataManager) Emit(topic string, msg kafkaGo.Message) error {
	handler, ok := dm.handlers[topic]
	if !ok {
		return nil
	}
	return handler(msg)
}
