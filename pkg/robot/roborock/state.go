package roborock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/valetd/pkg/entity"
	"github.com/urmzd/valetd/pkg/robot"
)

// DefaultPollInterval is how often the robot status is refreshed.
const DefaultPollInterval = 30 * time.Second

// status is the reply to get_status.
type status struct {
	State    int `json:"state"`
	Battery  int `json:"battery"`
	FanPower int `json:"fan_power"`
}

type statusMapping struct {
	value string
	flag  string
}

var statusMap = map[int]statusMapping{
	1:   {entity.StatusIdle, entity.FlagNone},
	2:   {entity.StatusIdle, entity.FlagNone},
	3:   {entity.StatusIdle, entity.FlagNone},
	5:   {entity.StatusCleaning, entity.FlagNone},
	6:   {entity.StatusReturning, entity.FlagNone},
	7:   {entity.StatusManual, entity.FlagNone},
	8:   {entity.StatusDocked, entity.FlagNone},
	9:   {entity.StatusError, entity.FlagNone},
	10:  {entity.StatusPaused, entity.FlagNone},
	11:  {entity.StatusCleaning, entity.FlagSpot},
	12:  {entity.StatusError, entity.FlagNone},
	14:  {entity.StatusDocked, entity.FlagNone},
	15:  {entity.StatusReturning, entity.FlagNone},
	16:  {entity.StatusMoving, entity.FlagTarget},
	17:  {entity.StatusCleaning, entity.FlagZone},
	18:  {entity.StatusCleaning, entity.FlagSegment},
	100: {entity.StatusDocked, entity.FlagNone},
}

var fanSpeedMap = map[int]string{
	101: "low",
	102: "medium",
	103: "high",
	104: "max",
	105: "off",
}

// RefreshState polls get_status once and upserts the observed attributes.
func RefreshState(ctx context.Context, r *robot.Robot) error {
	raw, err := r.SendCommand(ctx, "get_status", nil)
	if err != nil {
		return fmt.Errorf("get_status: %w", err)
	}

	var st status
	if err := json.Unmarshal(unwrapResult(raw), &st); err != nil {
		return fmt.Errorf("decode get_status: %w", err)
	}

	r.UpdateState(statusAttributes(st)...)
	return nil
}

// statusAttributes maps a get_status reply to state attributes.
func statusAttributes(st status) []entity.Attribute {
	mapped, ok := statusMap[st.State]
	if !ok {
		mapped = statusMapping{entity.StatusError, entity.FlagNone}
	}

	batteryFlag := entity.BatteryFlagDischarging
	if mapped.value == entity.StatusDocked {
		batteryFlag = entity.BatteryFlagCharging
		if st.Battery >= 100 {
			batteryFlag = entity.BatteryFlagCharged
		}
	}

	fan := entity.PresetSelectionStateAttribute{Type: entity.PresetTypeFanSpeed}
	if name, ok := fanSpeedMap[st.FanPower]; ok {
		fan.Value = name
	} else {
		fan.Value = "custom"
		fan.CustomValue = st.FanPower
	}

	return []entity.Attribute{
		entity.StatusStateAttribute{Value: mapped.value, Flag: mapped.flag},
		entity.BatteryStateAttribute{Level: st.Battery, Flag: batteryFlag},
		fan,
	}
}

// PollState refreshes the robot state every interval until ctx is done.
func PollState(ctx context.Context, r *robot.Robot, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if r.IsConnected() {
			if err := RefreshState(ctx, r); err != nil {
				log.Warn().Err(err).Msg("Failed to refresh robot state")
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
