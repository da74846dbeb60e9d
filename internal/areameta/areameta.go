package areameta

import (
	"fmt"
	"strings"
	"time"
)

// POIProfile summarizes the points of interest around a parking facility.
// The counts feed the prediction feature vector.
type POIProfile struct {
	OfficeCount     int `json:"poi_office_count"`
	RestaurantCount int `json:"poi_restaurant_count"`
	StoreCount      int `json:"poi_store_count"`
}

// Weather buckets used as categorical prediction features.
const (
	WeatherRainy = "rainy"
	WeatherHot   = "hot"
	WeatherSunny = "sunny"
)

// Event type buckets used as categorical prediction features.
const (
	EventWeekend       = "weekend"
	EventPublicHoliday = "public_holiday"
	EventNone          = "none"
)

// publicHolidays lists fixed-date holidays as MM-DD keys.
var publicHolidays = map[string]bool{
	"01-26": true, // Republic Day
	"08-15": true, // Independence Day
	"10-02": true, // Gandhi Jayanti
	"12-25": true, // Christmas
}

// DeriveFeatures infers a POI profile from the facility's name and address
// text. Keyword buckets are checked in order; the first match wins and the
// fallthrough is a balanced mixed-use profile.
func DeriveFeatures(name, address string) POIProfile {
	text := strings.ToLower(name + " " + address)

	switch {
	case containsAny(text, "it park", "tech", "office"):
		return POIProfile{OfficeCount: 30, RestaurantCount: 5, StoreCount: 2}
	case containsAny(text, "mall", "market", "shopping"):
		return POIProfile{OfficeCount: 2, RestaurantCount: 20, StoreCount: 40}
	case containsAny(text, "restaurant", "dining", "food"):
		return POIProfile{OfficeCount: 5, RestaurantCount: 30, StoreCount: 10}
	case containsAny(text, "residential", "apartment", "society"):
		return POIProfile{OfficeCount: 1, RestaurantCount: 2, StoreCount: 2}
	default:
		return POIProfile{OfficeCount: 10, RestaurantCount: 10, StoreCount: 10}
	}
}

// WeatherBucket maps an instant to a coarse weather category. Monsoon
// afternoons lean rainy, summer afternoons hot, everything else sunny.
func WeatherBucket(t time.Time) string {
	month := t.Month()
	hour := t.Hour()

	if month >= time.July && month <= time.September && hour >= 10 && hour <= 16 {
		return WeatherRainy
	}
	if month >= time.April && month <= time.June && hour >= 11 && hour <= 17 {
		return WeatherHot
	}
	return WeatherSunny
}

// EventTypeBucket maps an instant to an event category. Weekends take
// precedence over the fixed holiday list.
func EventTypeBucket(t time.Time) string {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return EventWeekend
	}
	key := fmt.Sprintf("%02d-%02d", int(t.Month()), t.Day())
	if publicHolidays[key] {
		return EventPublicHoliday
	}
	return EventNone
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
