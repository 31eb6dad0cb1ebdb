package models

import "time"

// WeatherReport is the weather payload with spraying advice attached.
type WeatherReport struct {
	Location               string    `json:"location"`
	TemperatureC           float64   `json:"temperature"`
	Humidity               int       `json:"humidity"`
	WindSpeedKmh           float64   `json:"wind_speed"`
	Condition              string    `json:"weather_condition"`
	UVIndex                int       `json:"uv_index"`
	RainProbability        int       `json:"rain_probability"`
	SprayingRecommendation string    `json:"spraying_recommendation"`
	BestSprayingTimes      []string  `json:"best_spraying_times,omitempty"`
	ObservedAt             time.Time `json:"observed_at,omitempty"`
}

// WeatherObservation is a raw observation pushed into the weather log.
type WeatherObservation struct {
	Location        string  `json:"location"`
	TemperatureC    float64 `json:"temperature"`
	Humidity        int     `json:"humidity"`
	WindSpeedKmh    float64 `json:"wind_speed"`
	Condition       string  `json:"weather_condition"`
	UVIndex         int     `json:"uv_index"`
	RainProbability int     `json:"rain_probability"`
}
