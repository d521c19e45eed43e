package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

type startRecorder struct {
	capability.UnimplementedZoneCleaning
	calls int
}

func (s *startRecorder) Start(ctx context.Context, zones []entity.Zone) error {
	s.calls++
	return nil
}

// registryOnly is a capability type without a router.
type registryOnly struct{}

func (registryOnly) Type() capability.Type { return "MapSnapshotCapability" }

// impostor claims the zone cleaning tag without implementing its contract.
type impostor struct{}

func (impostor) Type() capability.Type { return capability.TypeZoneCleaning }

func newTestRobot(t *testing.T, caps ...capability.Capability) *robot.Robot {
	t.Helper()
	r := robot.New(robot.Info{Implementation: "TestRobot", Manufacturer: "Acme", ModelName: "T1"}, nil, robot.NewMemoryConfigStore())
	if err := r.RegisterCapabilities(caps...); err != nil {
		t.Fatal(err)
	}
	return r
}

func request(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const capabilitiesPath = "/api/v2/robot/capabilities/"

func TestRouter_MountsRegisteredCapabilities(t *testing.T) {
	zc := &startRecorder{}
	router := NewRouter(newTestRobot(t, zc, registryOnly{}), schema.NewValidator())

	mounted := router.Mounted()
	if len(mounted) != 1 || mounted[0] != string(capability.TypeZoneCleaning) {
		t.Fatalf("expected only zone cleaning mounted, got %v", mounted)
	}

	w := request(router.Handler(), http.MethodGet, capabilitiesPath+"ZoneCleaningCapability/presets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "{}" {
		t.Errorf("expected empty preset map, got %s", w.Body.String())
	}

	body := `{"action":"clean","zones":[{"points":{"pA":{"x":0,"y":0},"pB":{"x":1,"y":0},"pC":{"x":1,"y":1},"pD":{"x":0,"y":1}}}]}`
	if w := request(router.Handler(), http.MethodPut, capabilitiesPath+"ZoneCleaningCapability", body); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if zc.calls != 1 {
		t.Errorf("expected one Start call, got %d", zc.calls)
	}
}

func TestRouter_AbsentCapabilityIs404(t *testing.T) {
	router := NewRouter(newTestRobot(t, registryOnly{}), schema.NewValidator())

	paths := []string{
		"ZoneCleaningCapability/presets",
		"ZoneCleaningCapability/presets/abc",
		"ZoneCleaningCapability/presets_legacy",
		"WifiConfigurationCapability",
		"MapSnapshotCapability",
	}
	for _, p := range paths {
		w := request(router.Handler(), http.MethodGet, capabilitiesPath+p, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", p, w.Code)
		}
		var resp types.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error != "not_found" {
			t.Errorf("%s: expected JSON not_found body, got %s", p, w.Body.String())
		}
	}
}

func TestRouter_SkipsMismatchedCapability(t *testing.T) {
	router := NewRouter(newTestRobot(t, impostor{}), schema.NewValidator())

	if len(router.Mounted()) != 0 {
		t.Errorf("expected nothing mounted, got %v", router.Mounted())
	}
	if w := request(router.Handler(), http.MethodGet, capabilitiesPath+"ZoneCleaningCapability/presets", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRouter_RobotEndpoints(t *testing.T) {
	r := newTestRobot(t, &startRecorder{}, registryOnly{})
	r.UpdateState(
		entity.StatusStateAttribute{Value: entity.StatusDocked, Flag: entity.FlagNone},
		entity.BatteryStateAttribute{Level: 80, Flag: entity.BatteryFlagCharging},
	)
	router := NewRouter(r, schema.NewValidator())

	w := request(router.Handler(), http.MethodGet, "/api/v2/robot", "")
	var info types.RobotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Implementation != "TestRobot" || info.ModelName != "T1" {
		t.Errorf("unexpected robot info: %+v", info)
	}

	w = request(router.Handler(), http.MethodGet, "/api/v2/robot/capabilities", "")
	var tags []string
	if err := json.Unmarshal(w.Body.Bytes(), &tags); err != nil {
		t.Fatal(err)
	}
	if len(tags) != 2 || tags[0] != "MapSnapshotCapability" || tags[1] != "ZoneCleaningCapability" {
		t.Errorf("unexpected capability list: %v", tags)
	}

	w = request(router.Handler(), http.MethodGet, "/api/v2/robot/state/attributes", "")
	attrs := entity.NewContainer()
	if err := json.Unmarshal(w.Body.Bytes(), attrs); err != nil {
		t.Fatal(err)
	}
	if attrs.Len() != 2 {
		t.Errorf("expected 2 attributes, got %d", attrs.Len())
	}
}

func TestRouter_HealthDegradedWithoutLink(t *testing.T) {
	router := NewRouter(newTestRobot(t), schema.NewValidator())

	for _, path := range []string{"/health", "/api/v2/health"} {
		w := request(router.Handler(), http.MethodGet, path, "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", path, w.Code)
		}
		var resp types.HealthResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Transport != "disconnected" {
			t.Errorf("%s: expected disconnected, got %q", path, resp.Transport)
		}
	}
}

func TestRouter_RequestID(t *testing.T) {
	router := NewRouter(newTestRobot(t), schema.NewValidator())

	w := request(router.Handler(), http.MethodGet, "/api/v2/robot", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v2/robot", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	router.Handler().ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc" {
		t.Errorf("expected propagated request id, got %q", w.Header().Get("X-Request-ID"))
	}
}
