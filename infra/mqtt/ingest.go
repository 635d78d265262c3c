package mqtt

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/fleetsense/evmaint/core/model"
	"github.com/fleetsense/evmaint/core/prediction"
	"github.com/fleetsense/evmaint/infra/logger"
)

// Ingestor consumes fleet telemetry from the broker and runs each record
// through the evaluator. Invalid messages are logged and dropped; one bad
// vehicle must not stall the fleet feed.
type Ingestor struct {
	cli   *PahoClient
	topic string
	ev    *prediction.Evaluator
	log   logger.Logger
}

// NewIngestor wires a telemetry ingestor.
func NewIngestor(cli *PahoClient, topic string, ev *prediction.Evaluator, log logger.Logger) *Ingestor {
	return &Ingestor{cli: cli, topic: topic, ev: ev, log: log}
}

// Start subscribes to the telemetry topic.
func (i *Ingestor) Start() error {
	if err := i.cli.Subscribe(i.topic, func(_ paho.Client, msg paho.Message) {
		i.HandleMessage(msg.Payload())
	}); err != nil {
		return fmt.Errorf("subscribe %s: %w", i.topic, err)
	}
	i.log.Infof("ingesting telemetry from %s", i.topic)
	return nil
}

// HandleMessage processes one telemetry payload.
func (i *Ingestor) HandleMessage(payload []byte) {
	var rec model.TelemetryRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		i.log.Warnf("invalid telemetry payload: %v", err)
		return
	}
	if err := rec.Validate(); err != nil {
		i.log.Warnf("telemetry rejected for %q: %v", rec.VehicleID, err)
		return
	}
	if _, err := i.ev.Evaluate(rec, "mqtt"); err != nil {
		i.log.Errorf("prediction failed for %s: %v", rec.VehicleID, err)
	}
}
