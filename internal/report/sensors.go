package report

import (
	"sort"

	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/pkg/model"
)

func reportSensors(log *zap.Logger, sensors []model.TempSensor) {
	if len(sensors) == 0 {
		return
	}
	log.Debug("Processing temperature sensor list...")

	byUnit := make(map[string][]model.TempSensor)
	for _, s := range sensors {
		byUnit[s.Unit] = append(byUnit[s.Unit], s)
	}
	units := make([]string, 0, len(byUnit))
	for unit := range byUnit {
		units = append(units, unit)
	}
	sort.Strings(units)

	for _, unit := range units {
		unitLog := log.With(zap.String("sensor_unit", unit))
		list := byUnit[unit]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Label < list[j].Label })
		for _, s := range list {
			fields := []zap.Field{
				zap.String("label", s.Label),
				zap.Float64("celsius", s.Celsius),
			}
			if s.HighTrip != nil {
				fields = append(fields, zap.Float64("high_trip_celsius", *s.HighTrip))
			}
			if s.CritTrip != nil {
				fields = append(fields, zap.Float64("crit_trip_celsius", *s.CritTrip))
			}
			unitLog.Info("Found a temperature sensor", fields...)
		}
	}
}
