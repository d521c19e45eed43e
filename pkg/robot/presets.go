package robot

import (
	"context"
	"errors"
	"fmt"

	"github.com/urmzd/valetd/pkg/entity"
)

// ZonePresetStore keeps zone presets in the configuration store under
// ConfigKeyZonePresets as a map of id to preset.
//
// Every mutation is a read-modify-write of the whole map without locking,
// so concurrent writers race and the last write wins.
type ZonePresetStore struct {
	config ConfigStore
}

// NewZonePresetStore creates a preset store over config.
func NewZonePresetStore(config ConfigStore) *ZonePresetStore {
	return &ZonePresetStore{config: config}
}

// List returns all presets keyed by id.
func (s *ZonePresetStore) List(ctx context.Context) (map[string]entity.ZonePreset, error) {
	presets := map[string]entity.ZonePreset{}
	if err := s.config.Get(ctx, ConfigKeyZonePresets, &presets); err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return map[string]entity.ZonePreset{}, nil
		}
		return nil, fmt.Errorf("load zone presets: %w", err)
	}
	if presets == nil {
		presets = map[string]entity.ZonePreset{}
	}
	return presets, nil
}

// Get returns the preset with the given id.
func (s *ZonePresetStore) Get(ctx context.Context, id string) (entity.ZonePreset, error) {
	presets, err := s.List(ctx)
	if err != nil {
		return entity.ZonePreset{}, err
	}
	p, ok := presets[id]
	if !ok {
		return entity.ZonePreset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	return p, nil
}

// Exists reports whether a preset with the given id is stored.
func (s *ZonePresetStore) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrPresetNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Put stores p under its id, overwriting any preset with the same id.
func (s *ZonePresetStore) Put(ctx context.Context, p entity.ZonePreset) error {
	presets, err := s.List(ctx)
	if err != nil {
		return err
	}
	presets[p.ID] = p
	return s.save(ctx, presets)
}

// Delete removes the preset with the given id.
func (s *ZonePresetStore) Delete(ctx context.Context, id string) error {
	presets, err := s.List(ctx)
	if err != nil {
		return err
	}
	if _, ok := presets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	delete(presets, id)
	return s.save(ctx, presets)
}

// Resolve returns the presets for ids in request order.
// It fails without partial results if any id is unknown.
func (s *ZonePresetStore) Resolve(ctx context.Context, ids []string) ([]entity.ZonePreset, error) {
	presets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.ZonePreset, 0, len(ids))
	for _, id := range ids {
		p, ok := presets[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
		}
		out = append(out, p)
	}
	return out, nil
}

// ReplaceAll replaces the whole preset map with presets.
func (s *ZonePresetStore) ReplaceAll(ctx context.Context, presets []entity.ZonePreset) error {
	m := make(map[string]entity.ZonePreset, len(presets))
	for _, p := range presets {
		m[p.ID] = p
	}
	return s.save(ctx, m)
}

func (s *ZonePresetStore) save(ctx context.Context, presets map[string]entity.ZonePreset) error {
	if err := s.config.Set(ctx, ConfigKeyZonePresets, presets); err != nil {
		return fmt.Errorf("save zone presets: %w", err)
	}
	return nil
}
