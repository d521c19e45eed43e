package schema

import (
	"embed"
	"encoding/json"
)

//go:embed schemas/*.json
var documents embed.FS

// Request body schemas.
var (
	ZonePreset        = mustLoad("zone_preset.json")
	CleanZones        = mustLoad("clean_zones.json")
	CleanPresets      = mustLoad("clean_presets.json")
	LegacyPresets     = mustLoad("legacy_presets.json")
	WifiConfiguration = mustLoad("wifi_configuration.json")
	ManualControl     = mustLoad("manual_control.json")
)

func mustLoad(name string) json.RawMessage {
	data, err := documents.ReadFile("schemas/" + name)
	if err != nil {
		panic("schema: " + err.Error())
	}
	return json.RawMessage(data)
}
