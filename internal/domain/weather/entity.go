package weather

import (
	"time"

	"github.com/cropguard/cropguard/pkg/models"
)

// Observation is one weather reading for a location, logged over time.
type Observation struct {
	ID              int64
	Location        string
	TemperatureC    float64
	Humidity        int
	WindSpeedKmh    float64
	Condition       string
	UVIndex         int
	RainProbability int
	ObservedAt      time.Time
}

// FromWire builds an Observation from the push payload.
func FromWire(o models.WeatherObservation, at time.Time) *Observation {
	return &Observation{
		Location:        o.Location,
		TemperatureC:    o.TemperatureC,
		Humidity:        o.Humidity,
		WindSpeedKmh:    o.WindSpeedKmh,
		Condition:       o.Condition,
		UVIndex:         o.UVIndex,
		RainProbability: o.RainProbability,
		ObservedAt:      at,
	}
}
