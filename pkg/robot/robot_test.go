package robot

import (
	"context"
	"errors"
	"testing"

	"github.com/urmzd/valetd/pkg/capability"
	"github.com/urmzd/valetd/pkg/entity"
)

func kitchen(id string) entity.ZonePreset {
	return entity.ZonePreset{
		ID:   id,
		Name: "Kitchen",
		Zones: []entity.Zone{{
			Points: entity.ZonePoints{
				PA: entity.Point{X: 0, Y: 0},
				PB: entity.Point{X: 100, Y: 0},
				PC: entity.Point{X: 100, Y: 100},
				PD: entity.Point{X: 0, Y: 100},
			},
			Iterations: 1,
		}},
	}
}

func TestRobot_NullTransport(t *testing.T) {
	r := New(Info{Implementation: "test"}, nil, NewMemoryConfigStore())

	if r.IsConnected() {
		t.Error("null transport should not be connected")
	}
	if _, err := r.SendCommand(context.Background(), "get_status", nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestRobot_RegisterCapabilities(t *testing.T) {
	r := New(Info{}, NewNullTransport(), NewMemoryConfigStore())

	err := r.RegisterCapabilities(capability.UnimplementedZoneCleaning{}, capability.UnimplementedWifiConfiguration{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Capabilities().Len() != 2 {
		t.Errorf("expected 2 capabilities, got %d", r.Capabilities().Len())
	}

	err = r.RegisterCapabilities(capability.UnimplementedZoneCleaning{})
	if !errors.Is(err, capability.ErrDuplicateCapability) {
		t.Errorf("expected ErrDuplicateCapability, got %v", err)
	}
}

func TestRobot_UpdateState(t *testing.T) {
	r := New(Info{}, nil, nil)

	r.UpdateState(
		entity.StatusStateAttribute{Value: entity.StatusDocked, Flag: entity.FlagNone},
		entity.BatteryStateAttribute{Level: 100, Flag: entity.BatteryFlagCharged},
	)
	r.UpdateState(entity.StatusStateAttribute{Value: entity.StatusCleaning, Flag: entity.FlagZone})

	state := r.State()
	if state.Len() != 2 {
		t.Fatalf("expected 2 attributes, got %d", state.Len())
	}
	status, ok := state.Attributes()[0].(entity.StatusStateAttribute)
	if !ok || status.Value != entity.StatusCleaning {
		t.Errorf("expected cleaning status at index 0, got %+v", state.Attributes()[0])
	}

	// snapshots are detached from the live state
	state.RemoveMatching(entity.Filter{Class: entity.ClassStatusState})
	if !r.State().HasMatching(entity.Filter{Class: entity.ClassStatusState}) {
		t.Error("modifying a snapshot must not change robot state")
	}
}

func TestRobot_Embedded(t *testing.T) {
	ctx := context.Background()
	config := NewMemoryConfigStore()
	r := New(Info{}, nil, config)

	if r.Embedded(ctx) {
		t.Error("embedded should default to false")
	}
	if err := config.Set(ctx, ConfigKeyEmbedded, true); err != nil {
		t.Fatal(err)
	}
	if !r.Embedded(ctx) {
		t.Error("expected embedded to be true")
	}
}

func TestZonePresetStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewZonePresetStore(NewMemoryConfigStore())

	presets, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(presets) != 0 {
		t.Errorf("expected empty map, got %v", presets)
	}

	if err := store.Put(ctx, kitchen("k1")); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Kitchen" || len(got.Zones) != 1 {
		t.Errorf("unexpected preset: %+v", got)
	}

	if ok, err := store.Exists(ctx, "k1"); err != nil || !ok {
		t.Errorf("expected k1 to exist, got %v %v", ok, err)
	}
	if ok, err := store.Exists(ctx, "nope"); err != nil || ok {
		t.Errorf("expected nope to be absent, got %v %v", ok, err)
	}

	if err := store.Delete(ctx, "nope"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "k1"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound after delete, got %v", err)
	}
}

func TestZonePresetStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewZonePresetStore(NewMemoryConfigStore())

	first := kitchen("same")
	second := kitchen("same")
	second.Name = "Hallway"

	if err := store.Put(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, second); err != nil {
		t.Fatal(err)
	}

	presets, _ := store.List(ctx)
	if len(presets) != 1 || presets["same"].Name != "Hallway" {
		t.Errorf("expected overwritten preset, got %+v", presets)
	}
}

func TestZonePresetStore_ResolveAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := NewZonePresetStore(NewMemoryConfigStore())
	_ = store.Put(ctx, kitchen("a"))
	_ = store.Put(ctx, kitchen("b"))

	got, err := store.Resolve(ctx, []string{"b", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("expected presets in request order, got %+v", got)
	}

	got, err = store.Resolve(ctx, []string{"a", "missing"})
	if !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no partial result, got %+v", got)
	}
}

func TestZonePresetStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := NewZonePresetStore(NewMemoryConfigStore())
	_ = store.Put(ctx, kitchen("old"))

	if err := store.ReplaceAll(ctx, []entity.ZonePreset{kitchen("new")}); err != nil {
		t.Fatal(err)
	}
	presets, _ := store.List(ctx)
	if _, ok := presets["old"]; ok {
		t.Error("old preset should be gone")
	}
	if _, ok := presets["new"]; !ok {
		t.Error("new preset should be present")
	}
}
