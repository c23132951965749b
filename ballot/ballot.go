// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ballot implements the per-epoch voting ledger: one weighted vote
// slot per operator, append-only tallies per distinct ballot value, consensus
// detection at the 2/3 stake threshold and the tie-breaker escape valve.
package ballot

import "fmt"

// Weather is the ballot payload: a 1-byte enum standing in for any
// fixed-size consensus value.
type Weather uint8

const (
	WeatherSunny Weather = iota
	WeatherCloudy
	WeatherRainy
)

// ValidWeather reports whether w is a known payload value.
func ValidWeather(w Weather) bool {
	return w <= WeatherRainy
}

// String implements stringer
func (w Weather) String() string {
	switch w {
	case WeatherSunny:
		return "sunny"
	case WeatherCloudy:
		return "cloudy"
	case WeatherRainy:
		return "rainy"
	default:
		return fmt.Sprintf("weather(%d)", uint8(w))
	}
}

// Ballot is a payload plus a validity flag. The zero Ballot is invalid;
// in particular a box's winning ballot stays invalid until consensus.
type Ballot struct {
	Weather Weather
	Valid   bool
}

// NewBallot wraps a payload value into a valid ballot.
func NewBallot(w Weather) Ballot {
	return Ballot{Weather: w, Valid: true}
}
