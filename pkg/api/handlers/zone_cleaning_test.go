package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/valetd/pkg/api/types"
	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/robot"
	"github.com/urmzd/valetd/pkg/schema"
)

const kitchenBody = `{"name":"Kitchen","zones":[{"points":{"pA":{"x":0,"y":0},"pB":{"x":100,"y":0},"pC":{"x":100,"y":100},"pD":{"x":0,"y":100}},"iterations":1}]}`

type fakeZoneCleaning struct {
	capability.UnimplementedZoneCleaning
	starts [][]entity.Zone
	err    error
}

func (f *fakeZoneCleaning) Start(ctx context.Context, zones []entity.Zone) error {
	f.starts = append(f.starts, zones)
	return f.err
}

type zoneFixture struct {
	engine  *gin.Engine
	zc      *fakeZoneCleaning
	presets *robot.ZonePresetStore
}

func newZoneFixture(t *testing.T) *zoneFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &zoneFixture{
		engine:  gin.New(),
		zc:      &fakeZoneCleaning{},
		presets: robot.NewZonePresetStore(robot.NewMemoryConfigStore()),
	}
	NewZoneCleaningRouter(f.zc, f.presets, schema.NewValidator()).InitRoutes(f.engine.Group("/zc"))
	return f
}

func (f *zoneFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/zc"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *zoneFixture) seed(t *testing.T, id, name string, area []int) entity.ZonePreset {
	t.Helper()
	zone, err := entity.ZoneFromLegacyArea(area)
	if err != nil {
		t.Fatal(err)
	}
	p, err := entity.NewZonePreset(id, name, []entity.Zone{zone})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.presets.Put(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCreatePreset_RoundTrip(t *testing.T) {
	f := newZoneFixture(t)

	w := f.do(http.MethodPost, "/presets", kitchenBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created entity.ZonePreset
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	w = f.do(http.MethodGet, "/presets/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var fetched entity.ZonePreset
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.Name != "Kitchen" || len(fetched.Zones) != 1 {
		t.Fatalf("unexpected preset: %+v", fetched)
	}
	want := entity.ZonePoints{
		PA: entity.Point{X: 0, Y: 0},
		PB: entity.Point{X: 100, Y: 0},
		PC: entity.Point{X: 100, Y: 100},
		PD: entity.Point{X: 0, Y: 100},
	}
	if fetched.Zones[0].Points != want || fetched.Zones[0].Iterations != 1 {
		t.Errorf("unexpected zone: %+v", fetched.Zones[0])
	}
}

func TestCreatePreset_CallerID(t *testing.T) {
	f := newZoneFixture(t)

	body := `{"id":"kitchen","name":"Kitchen","zones":[{"points":{"pA":{"x":0,"y":0},"pB":{"x":1,"y":0},"pC":{"x":1,"y":1},"pD":{"x":0,"y":1}}}]}`
	if w := f.do(http.MethodPost, "/presets", body); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	p, err := f.presets.Get(context.Background(), "kitchen")
	if err != nil {
		t.Fatal(err)
	}
	if p.Zones[0].Iterations != 1 {
		t.Errorf("omitted iterations should default to 1, got %d", p.Zones[0].Iterations)
	}
}

func TestCreatePreset_Invalid(t *testing.T) {
	f := newZoneFixture(t)

	bodies := []string{
		`{"name":"Kitchen","zones":[]}`,
		`{"zones":[{"points":{"pA":{"x":0,"y":0},"pB":{"x":1,"y":0},"pC":{"x":1,"y":1},"pD":{"x":0,"y":1}}}]}`,
		`{"name":"Kitchen"}`,
		`not json`,
	}
	for _, body := range bodies {
		if w := f.do(http.MethodPost, "/presets", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}

	list, _ := f.presets.List(context.Background())
	if len(list) != 0 {
		t.Errorf("invalid bodies must not store presets, got %d", len(list))
	}
}

func TestListPresets(t *testing.T) {
	f := newZoneFixture(t)
	f.seed(t, "a", "A", []int{0, 0, 10, 10, 1})
	f.seed(t, "b", "B", []int{10, 10, 20, 20, 2})

	w := f.do(http.MethodGet, "/presets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]entity.ZonePreset
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["b"].Name != "B" {
		t.Errorf("unexpected presets: %+v", got)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	f := newZoneFixture(t)
	if w := f.do(http.MethodGet, "/presets/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDeletePreset(t *testing.T) {
	f := newZoneFixture(t)
	f.seed(t, "a", "A", []int{0, 0, 10, 10, 1})

	if w := f.do(http.MethodDelete, "/presets/unknown", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	list, _ := f.presets.List(context.Background())
	if len(list) != 1 {
		t.Fatalf("unknown delete must leave the map unchanged, got %d presets", len(list))
	}

	if w := f.do(http.MethodDelete, "/presets/a", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	list, _ = f.presets.List(context.Background())
	if len(list) != 0 {
		t.Errorf("expected empty map, got %d presets", len(list))
	}
}

func TestUpdatePreset(t *testing.T) {
	f := newZoneFixture(t)
	f.seed(t, "a", "A", []int{0, 0, 10, 10, 1})

	body := `{"id":"ignored","name":"Renamed","zones":[{"points":{"pA":{"x":5,"y":5},"pB":{"x":6,"y":5},"pC":{"x":6,"y":6},"pD":{"x":5,"y":6}},"iterations":3}]}`

	if w := f.do(http.MethodPost, "/presets/unknown", body); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := f.do(http.MethodPost, "/presets/a", `{"name":"Renamed","zones":[]}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	w := f.do(http.MethodPost, "/presets/a", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	list, _ := f.presets.List(context.Background())
	if len(list) != 1 {
		t.Fatalf("expected one preset, got %d", len(list))
	}
	p := list["a"]
	if p.ID != "a" || p.Name != "Renamed" || p.Zones[0].Iterations != 3 {
		t.Errorf("unexpected preset: %+v", p)
	}
}

func TestCleanPresets(t *testing.T) {
	f := newZoneFixture(t)
	f.seed(t, "a", "A", []int{0, 0, 10, 10, 1})
	f.seed(t, "b", "B", []int{20, 20, 30, 30, 2})

	w := f.do(http.MethodPut, "/presets", `{"action":"clean","ids":["b","a","b"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(f.zc.starts) != 1 {
		t.Fatalf("expected a single Start call, got %d", len(f.zc.starts))
	}

	zones := f.zc.starts[0]
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones without deduplication, got %d", len(zones))
	}
	if zones[0].Points.PA.X != 20 || zones[1].Points.PA.X != 0 || zones[2].Points.PA.X != 20 {
		t.Errorf("zones not in request order: %+v", zones)
	}
}

func TestCleanPresets_AllOrNothing(t *testing.T) {
	f := newZoneFixture(t)
	f.seed(t, "a", "A", []int{0, 0, 10, 10, 1})

	w := f.do(http.MethodPut, "/presets", `{"action":"clean","ids":["a","missing"]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if len(f.zc.starts) != 0 {
		t.Errorf("Start must not be called, got %d calls", len(f.zc.starts))
	}
}

func TestCleanPresets_BadRequests(t *testing.T) {
	f := newZoneFixture(t)

	tests := []struct {
		body string
		code int
	}{
		{`{"action":"dance","ids":["a"]}`, http.StatusNotFound},
		{`{"ids":["a"]}`, http.StatusNotFound},
		{`{"action":"clean"}`, http.StatusBadRequest},
		{`{"action":"clean","ids":[]}`, http.StatusBadRequest},
		{`{"action":"clean","ids":"a"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := f.do(http.MethodPut, "/presets", tt.body); w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.body, tt.code, w.Code)
		}
	}
	if len(f.zc.starts) != 0 {
		t.Errorf("Start must not be called, got %d calls", len(f.zc.starts))
	}
}

func TestCleanPreset(t *testing.T) {
	f := newZoneFixture(t)
	p := f.seed(t, "a", "A", []int{0, 0, 10, 10, 2})

	if w := f.do(http.MethodPut, "/presets/unknown", `{"action":"clean"}`); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
	if w := f.do(http.MethodPut, "/presets/a", `{"action":"stop"}`); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unsupported action, got %d", w.Code)
	}

	if w := f.do(http.MethodPut, "/presets/a", `{"action":"clean"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(f.zc.starts) != 1 || f.zc.starts[0][0] != p.Zones[0] {
		t.Errorf("unexpected Start calls: %+v", f.zc.starts)
	}
}

func TestCleanZones(t *testing.T) {
	f := newZoneFixture(t)

	body := `{"action":"clean","zones":[{"points":{"pA":{"x":0,"y":0},"pB":{"x":1,"y":0},"pC":{"x":1,"y":1},"pD":{"x":0,"y":1}}}]}`
	if w := f.do(http.MethodPut, "", body); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(f.zc.starts) != 1 || f.zc.starts[0][0].Iterations != 1 {
		t.Errorf("unexpected Start calls: %+v", f.zc.starts)
	}
}

func TestCleanZones_BadRequests(t *testing.T) {
	f := newZoneFixture(t)

	tests := []struct {
		body    string
		message string
	}{
		{`{"zones":[]}`, "Missing action in request body"},
		{`{"action":"mop","zones":[]}`, `Invalid action "mop" in request body`},
		{`{"action":"clean","zones":[]}`, ""},
		{`{"action":"clean","zones":[{"points":{"pA":{"x":0,"y":0},"pB":{"x":1,"y":0},"pC":{"x":1,"y":1},"pD":{"x":0,"y":1}}},{"iterations":2}]}`, ""},
	}
	for _, tt := range tests {
		w := f.do(http.MethodPut, "/", tt.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.body, w.Code)
			continue
		}
		if tt.message == "" {
			continue
		}
		var resp types.ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Message != tt.message {
			t.Errorf("%s: expected message %q, got %q", tt.body, tt.message, resp.Message)
		}
	}
	if len(f.zc.starts) != 0 {
		t.Errorf("Start must not be called, got %d calls", len(f.zc.starts))
	}
}

func TestStartFailures(t *testing.T) {
	body := `{"action":"clean","zones":[{"points":{"pA":{"x":0,"y":0},"pB":{"x":1,"y":0},"pC":{"x":1,"y":1},"pD":{"x":0,"y":1}}}]}`

	tests := []struct {
		err  error
		code int
	}{
		{errors.New("brush stuck"), http.StatusInternalServerError},
		{fmt.Errorf("app_zoned_clean: %w", robot.ErrTimeout), http.StatusInternalServerError},
		{capability.ErrNotImplemented, http.StatusNotImplemented},
		{fmt.Errorf("app_zoned_clean: %w", robot.ErrNotConnected), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		f := newZoneFixture(t)
		f.zc.err = tt.err

		w := f.do(http.MethodPut, "/", body)
		if w.Code != tt.code {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.code, w.Code)
		}
		if !strings.Contains(w.Body.String(), tt.err.Error()) {
			t.Errorf("%v: expected error message in body, got %s", tt.err, w.Body.String())
		}
	}
}

func TestLegacyPresets(t *testing.T) {
	f := newZoneFixture(t)
	f.seed(t, "old", "Old", []int{1, 1, 2, 2, 1})

	body := `[{"id":"hall","name":"Hall","areas":[[0,0,10,20,2],[5,5,6,6,1]]},{"name":"Bath","areas":[[30,30,40,40,1]]}]`
	if w := f.do(http.MethodPost, "/presets_legacy", body); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	list, _ := f.presets.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("legacy import must replace the map, got %d presets", len(list))
	}
	hall := list["hall"]
	if hall.Zones[0].Points.PB != (entity.Point{X: 10, Y: 0}) || hall.Zones[0].Points.PD != (entity.Point{X: 0, Y: 20}) {
		t.Errorf("unexpected corner conversion: %+v", hall.Zones[0].Points)
	}

	w := f.do(http.MethodGet, "/presets_legacy", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var legacy []entity.LegacyZonePreset
	if err := json.Unmarshal(w.Body.Bytes(), &legacy); err != nil {
		t.Fatal(err)
	}
	if len(legacy) != 2 {
		t.Fatalf("expected 2 legacy presets, got %d", len(legacy))
	}
	for _, lp := range legacy {
		if lp.ID == "hall" && lp.Areas[0] != (entity.LegacyArea{0, 0, 10, 20, 2}) {
			t.Errorf("unexpected legacy area: %v", lp.Areas[0])
		}
	}
}

func TestLegacyPresets_ValidatesBeforeReplacing(t *testing.T) {
	f := newZoneFixture(t)
	f.seed(t, "old", "Old", []int{1, 1, 2, 2, 1})

	bodies := []string{
		`[{"name":"Hall","areas":[[0,0,10,20,2]]},{"name":"Broken","areas":[[1,2,3]]}]`,
		`[{"name":"Hall","areas":[[0,0,10,20,2]]},{"areas":[[1,2,3,4,1]]}]`,
		`[{"name":"Empty","areas":[]}]`,
		`{"name":"Hall"}`,
	}
	for _, body := range bodies {
		if w := f.do(http.MethodPost, "/presets_legacy", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}

	list, _ := f.presets.List(context.Background())
	if _, ok := list["old"]; !ok || len(list) != 1 {
		t.Errorf("rejected imports must leave the map unchanged, got %+v", list)
	}
}
