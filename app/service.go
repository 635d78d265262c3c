// Package app wires the service together and manages its lifecycle.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fleetsense/evmaint/api"
	"github.com/fleetsense/evmaint/config"
	"github.com/fleetsense/evmaint/core/fleetstatus"
	coremetrics "github.com/fleetsense/evmaint/core/metrics"
	"github.com/fleetsense/evmaint/core/prediction"
	"github.com/fleetsense/evmaint/infra/logger"
	"github.com/fleetsense/evmaint/infra/metrics"
	"github.com/fleetsense/evmaint/infra/mqtt"
	infraprediction "github.com/fleetsense/evmaint/infra/prediction"
	"github.com/fleetsense/evmaint/internal/eventbus"
)

// Service owns the predictor lifecycle and the HTTP and MQTT frontends.
// Exactly one predictor instance exists per process: it is loaded before
// traffic is accepted and only read afterwards.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	sink  coremetrics.MetricsSink
	store *fleetstatus.MemoryStore
	bus   *eventbus.Bus[prediction.Alert]

	mu        sync.RWMutex
	evaluator *prediction.Evaluator

	httpSrv *http.Server
	mqttCli *mqtt.PahoClient
}

// New builds a Service from the configuration. The predictor itself is loaded
// in Run so requests arriving before startup completes observe the not-loaded
// state instead of a half-built one.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		cfg:   cfg,
		log:   log,
		sink:  sink,
		store: fleetstatus.NewMemoryStore(),
		bus:   eventbus.New[prediction.Alert](),
	}
	router := api.NewRouter(api.Deps{
		Version:    cfg.Model.Version,
		CORSOrigin: cfg.API.CORSOrigin,
		Source:     svc,
		Store:      svc.store,
		Log:        logger.New("api"),
	})
	svc.httpSrv = &http.Server{Addr: cfg.API.Addr, Handler: router}
	return svc, nil
}

// Evaluator returns the current evaluator, or nil while models are not loaded.
func (s *Service) Evaluator() *prediction.Evaluator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evaluator
}

func (s *Service) setEvaluator(ev *prediction.Evaluator) {
	s.mu.Lock()
	s.evaluator = ev
	s.mu.Unlock()
}

// Run loads the models and serves until the context is cancelled. A model
// loading failure aborts startup; the service never serves in degraded mode.
func (s *Service) Run(ctx context.Context) error {
	s.log.Infof("starting up API server on %s", s.cfg.API.Addr)
	pred, err := infraprediction.Load(s.cfg.Model)
	if err != nil {
		s.log.Errorf("failed to load models: %v", err)
		return fmt.Errorf("load models: %w", err)
	}
	s.setEvaluator(prediction.NewEvaluator(pred, s.store, s.sink, s.bus, logger.New("evaluator")))
	s.log.Infof("models loaded (version %s)", s.cfg.Model.Version)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr, logger.New("prom-server")); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if s.cfg.MQTT.Enabled {
		cli, err := mqtt.NewPahoClient(s.cfg.MQTT)
		if err != nil {
			return fmt.Errorf("mqtt client: %w", err)
		}
		s.mqttCli = cli
		// The alert publisher subscribes on construction, so it must exist
		// before any telemetry can be evaluated.
		alerts := mqtt.NewAlertPublisher(cli, s.cfg.MQTT.AlertTopic, s.bus, logger.New("alerts"))
		go alerts.Run(ctx)
		ingestor := mqtt.NewIngestor(cli, s.cfg.MQTT.TelemetryTopic, s.Evaluator(), logger.New("ingest"))
		if err := ingestor.Start(); err != nil {
			return fmt.Errorf("telemetry ingest: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.API.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("http shutdown: %v", err)
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.setEvaluator(nil)
	if s.mqttCli != nil {
		s.mqttCli.Disconnect()
	}
	s.bus.Close()
	s.log.Infof("cleanup complete")
	return nil
}
