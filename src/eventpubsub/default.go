package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

var bus EventBus.Bus

func Init() {
	bus = EventBus.New()
}

// Publish is a no-op until Init has been called.
func Publish(topic string, event interface{}) {
	if bus == nil {
		return
	}

	bus.Publish(topic, event)
}

func Subscribe(topic string, callbackFn interface{}) error {
	if bus == nil {
		Init()
	}

	if err := bus.SubscribeAsync(topic, callbackFn, false); err != nil {
		return err
	}

	log.Infof("Subscribed to topic %s", topic)
	return nil
}

// WaitAsync blocks until every async subscriber has handled the events published so far.
func WaitAsync() {
	if bus == nil {
		return
	}

	bus.WaitAsync()
}
