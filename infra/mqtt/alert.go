package mqtt

import (
	"context"
	"encoding/json"

	"github.com/fleetsense/evmaint/core/prediction"
	"github.com/fleetsense/evmaint/infra/logger"
	"github.com/fleetsense/evmaint/internal/eventbus"
)

// AlertPublisher forwards urgent maintenance alerts from the event bus to the
// alert topic.
type AlertPublisher struct {
	pub   Publisher
	topic string
	bus   *eventbus.Bus[prediction.Alert]
	sub   <-chan prediction.Alert
	log   logger.Logger
}

// NewAlertPublisher wires an alert publisher. The bus subscription is taken
// here, not in Run, so alerts raised between construction and the first Run
// iteration are buffered instead of lost.
func NewAlertPublisher(pub Publisher, topic string, bus *eventbus.Bus[prediction.Alert], log logger.Logger) *AlertPublisher {
	return &AlertPublisher{pub: pub, topic: topic, bus: bus, sub: bus.Subscribe(), log: log}
}

// Run forwards alerts until the context is cancelled or the bus is closed.
func (a *AlertPublisher) Run(ctx context.Context) {
	defer func() {
		a.bus.Unsubscribe(a.sub)
		if n := a.bus.Dropped(); n > 0 {
			a.log.Warnf("%d alert deliveries dropped while subscribers lagged", n)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case alert, ok := <-a.sub:
			if !ok {
				return
			}
			raw, err := json.Marshal(alert)
			if err != nil {
				a.log.Errorf("marshal alert: %v", err)
				continue
			}
			if err := a.pub.Publish(a.topic+"/"+alert.VehicleID, raw); err != nil {
				a.log.Errorf("publish alert for %s: %v", alert.VehicleID, err)
				continue
			}
			a.log.Infof("urgent maintenance alert published for %s", alert.VehicleID)
		}
	}
}
