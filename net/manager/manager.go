package manager

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"gitlab.com/missiondax-platform/ledger_api/net/kafka"
)

// EventHandler processes one consumed message. A returned error is logged
// and the message is still committed: bad references are not retried
// blindly, they need operator attention.
type EventHandler func(msg kafkaGo.Message) error

// DataManager dispatches consumed kafka messages to topic handlers
type DataManager interface {
	Subscribe(topic string, handler EventHandler)
	Close()
}

type dataManager struct {
	cfg       kafka.Config
	ctx       context.Context
	cancel    context.CancelFunc
	wait      sync.WaitGroup
	consumers []kafka.Consumer
	lock      sync.Mutex
}

// NewDataManager constructor
func NewDataManager(ctx context.Context, cfg kafka.Config) DataManager {
	ctx, cancel := context.WithCancel(ctx)
	return &dataManager{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Subscribe starts a consumer loop for the topic and feeds every message
// through the handler
func (dm *dataManager) Subscribe(topic string, handler EventHandler) {
	consumer := kafka.NewConsumer(dm.cfg, topic)
	dm.lock.Lock()
	dm.consumers = append(dm.consumers, consumer)
	dm.lock.Unlock()

	dm.wait.Add(1)
	go func() {
		defer dm.wait.Done()
		for {
			msg, err := consumer.ReadMessage(dm.ctx)
			if err != nil {
				if dm.ctx.Err() != nil {
					return
				}
				log.Error().Err(err).
					Str("section", "manager").
					Str("topic", topic).
					Msg("Unable to read kafka event")
				continue
			}
			if err := handler(msg); err != nil {
				log.Error().Err(err).
					Str("section", "manager").
					Str("topic", topic).
					Msg("Unable to process kafka event")
			}
		}
	}()
}

// Close stops all consumer loops and closes the underlying readers
func (dm *dataManager) Close() {
	dm.cancel()
	dm.lock.Lock()
	for _, consumer := range dm.consumers {
		_ = consumer.Close()
	}
	dm.lock.Unlock()
	dm.wait.Wait()
}
