package tractor

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tractor-plow/internal/config"
)

// Weather affects scoring and movement speed.
type Weather int

const (
	WeatherSunny Weather = iota
	WeatherRainy
)

func (w Weather) String() string {
	if w == WeatherRainy {
		return "Rainy"
	}
	return "Sunny"
}

// TimeOfDay only changes how the field is drawn.
type TimeOfDay int

const (
	Day TimeOfDay = iota
	Night
)

func (t TimeOfDay) String() string {
	if t == Night {
		return "Night"
	}
	return "Day"
}

// Sky runs the weather toggle and the day/night loop on their own timers,
// independent of tractor movement.
type Sky struct {
	firstWeather time.Duration
	weatherMin   time.Duration
	weatherSpan  time.Duration
	day          time.Duration
	cycle        time.Duration
	rng          *rand.Rand
}

// NewSky creates a scheduler drawing weather intervals from rng.
func NewSky(cc config.CycleConfig, rng *rand.Rand) *Sky {
	return &Sky{
		firstWeather: time.Duration(cc.FirstWeatherMs) * time.Millisecond,
		weatherMin:   time.Duration(cc.WeatherMinMs) * time.Millisecond,
		weatherSpan:  time.Duration(cc.WeatherMaxMs-cc.WeatherMinMs) * time.Millisecond,
		day:          time.Duration(cc.DaySeconds) * time.Second,
		cycle:        time.Duration(cc.DaySeconds+cc.NightSeconds) * time.Second,
		rng:          rng,
	}
}

// Start resets the sky to a sunny day beginning at now.
func (s *Sky) Start(st *GameState, now time.Time) {
	st.Weather = WeatherSunny
	st.TimeOfDay = Day
	st.CycleAnchor = now
	st.NextWeatherAt = now.Add(s.firstWeather)
}

// Update toggles the weather once its change time has passed and moves
// the day/night loop forward.
func (s *Sky) Update(st *GameState, now time.Time) {
	if now.After(st.NextWeatherAt) {
		if st.Weather == WeatherSunny {
			st.Weather = WeatherRainy
		} else {
			st.Weather = WeatherSunny
		}
		st.NextWeatherAt = now.Add(s.nextWeatherDelay())
	}

	elapsed := now.Sub(st.CycleAnchor)
	if elapsed > s.cycle {
		st.CycleAnchor = now
		elapsed = 0
	}
	if elapsed < s.day {
		st.TimeOfDay = Day
	} else {
		st.TimeOfDay = Night
	}
}

// nextWeatherDelay draws uniformly from [min, max).
func (s *Sky) nextWeatherDelay() time.Duration {
	if s.weatherSpan <= 0 {
		return s.weatherMin
	}
	return s.weatherMin + time.Duration(s.rng.Int63n(int64(s.weatherSpan)))
}
