package predict

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fleetsense/evmaint/api/respond"
	"github.com/fleetsense/evmaint/core/model"
	"github.com/fleetsense/evmaint/core/prediction"
	"github.com/fleetsense/evmaint/infra/logger"
)

type staticSource struct {
	ev *prediction.Evaluator
}

func (s staticSource) Evaluator() *prediction.Evaluator { return s.ev }

type countingPredictor struct {
	prediction.MockPredictor
	calls *int
}

func (c countingPredictor) Predict(rec model.TelemetryRecord) (*prediction.Result, error) {
	*c.calls++
	return c.MockPredictor.Predict(rec)
}

func sourceFor(pred prediction.Predictor) staticSource {
	return staticSource{ev: prediction.NewEvaluator(pred, nil, nil, nil, nil)}
}

func body(t *testing.T) string {
	t.Helper()
	rec := model.TelemetryRecord{
		VehicleID:      "EV-42",
		BatteryVoltage: 400,
		BatteryTempC:   30,
		SoC:            0.8,
		ChargeCycles:   100,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var e respond.ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestPredictBeforeLoadReturns503(t *testing.T) {
	h := NewHandler(staticSource{}, logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/predict", strings.NewReader(body(t))))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rr.Code)
	}
	if e := decodeError(t, rr); !strings.Contains(e.Detail, "not loaded") {
		t.Fatalf("detail %q", e.Detail)
	}
}

func TestPredictSuccessEchoesResult(t *testing.T) {
	h := NewHandler(sourceFor(prediction.MockPredictor{}), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/predict", strings.NewReader(body(t))))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var res prediction.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Status != "success" || res.VehicleID != "EV-42" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPredictorInputErrorReturns400(t *testing.T) {
	pred := prediction.MockPredictor{Err: &prediction.InputError{Reason: "feature out of range"}}
	h := NewHandler(sourceFor(pred), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/predict", strings.NewReader(body(t))))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
	if e := decodeError(t, rr); e.Detail != "feature out of range" {
		t.Fatalf("detail %q", e.Detail)
	}
}

func TestPredictorFailureReturns500(t *testing.T) {
	pred := prediction.MockPredictor{Err: errAny{}}
	h := NewHandler(sourceFor(pred), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/predict", strings.NewReader(body(t))))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rr.Code)
	}
	if e := decodeError(t, rr); !strings.Contains(e.Detail, "Prediction failed") {
		t.Fatalf("detail %q", e.Detail)
	}
}

type errAny struct{}

func (errAny) Error() string { return "model panicked" }

func TestMalformedBodyReturns400(t *testing.T) {
	h := NewHandler(sourceFor(prediction.MockPredictor{}), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/predict", strings.NewReader("{not json")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestSchemaErrorRejectedBeforePredictor(t *testing.T) {
	calls := 0
	pred := countingPredictor{calls: &calls}
	h := NewHandler(sourceFor(pred), logger.NopLogger{})
	rr := httptest.NewRecorder()
	// Missing Vehicle_ID.
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/predict", strings.NewReader(`{"SOC":0.5,"Battery_Voltage_V":400}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
	if calls != 0 {
		t.Fatalf("predictor called %d times", calls)
	}
}

func TestWrongMethodReturns405(t *testing.T) {
	h := NewHandler(sourceFor(prediction.MockPredictor{}), logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/predict", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rr.Code)
	}
}
