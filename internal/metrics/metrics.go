// Package metrics exposes Prometheus collectors for the drip API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DrinksLogged counts logged drinks by kind.
var DrinksLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "drip",
	Name:      "drinks_logged_total",
	Help:      "Total drinks logged.",
}, []string{"kind"})

// DrinkVolume sums raw logged volume in milliliters by kind.
var DrinkVolume = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "drip",
	Name:      "drink_volume_ml_total",
	Help:      "Total raw volume logged in milliliters.",
}, []string{"kind"})

var DrinksRemoved = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "drip",
	Name:      "drinks_removed_total",
	Help:      "Total drinks removed.",
})

// AchievementsUnlocked counts unlocks by achievement id.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "drip",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"achievement"})

// WarningsRaised counts hydration warnings returned to users by kind.
var WarningsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "drip",
	Name:      "warnings_raised_total",
	Help:      "Total hydration warnings produced by quality evaluation.",
}, []string{"kind"})

// RequestDuration tracks HTTP handling time by route pattern.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "drip",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})
