package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"days/internal/db"
)

var (
	placeScoreDesc = prometheus.NewDesc(
		"days_place_score",
		"Aggregated popularity score by place and interaction kind",
		[]string{"place", "kind"},
		nil,
	)

	interactionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "days_interactions_total",
		Help: "Interactions seen by the recorder by kind and outcome",
	}, []string{"kind", "outcome"})

	gallerySourceTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "days_gallery_source_total",
		Help: "Gallery results served by producing source",
	}, []string{"source"})

	cachePurgesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "days_cache_purges_total",
		Help: "Namespace purges triggered by storage quota errors",
	}, []string{"namespace"})

	cachePurgedKeysTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "days_cache_purged_keys_total",
		Help: "Keys removed by quota purges",
	}, []string{"namespace"})

	breakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "days_circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
	}, []string{"name"})

	trendingRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "days_trending_refresh_total",
		Help: "Trending board refreshes by result",
	}, []string{"result"})
)

// PlaceScoreCollector is a custom Prometheus collector that reads place
// statistics from the database on each scrape.
type PlaceScoreCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *PlaceScoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- placeScoreDesc
}

// Collect queries the database for all place stats and emits them as gauges.
func (c *PlaceScoreCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.AllPlaceStats(context.Background())
	if err != nil {
		slog.Error("failed to collect place score metrics", "error", err)
		return
	}
	for _, s := range stats {
		place := s.PlaceKey.String()
		for kind, v := range map[string]int64{
			"view":  s.ViewCount,
			"chat":  s.ChatCount,
			"save":  s.SaveCount,
			"total": s.TotalScore,
		} {
			ch <- prometheus.MustNewConstMetric(placeScoreDesc, prometheus.GaugeValue, float64(v), place, kind)
		}
	}
}

var registerOnce sync.Once

// Init registers all collectors. database may be nil, in which case place
// scores are not exported. Must be called once at startup.
func Init(database *db.DB) {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			interactionsTotal,
			gallerySourceTotal,
			cachePurgesTotal,
			cachePurgedKeysTotal,
			breakerState,
			trendingRefreshTotal,
		)
		if database != nil {
			prometheus.MustRegister(&PlaceScoreCollector{db: database})
		}
	})
}

// ObserveInteraction counts one recorder outcome.
func ObserveInteraction(kind, outcome string) {
	interactionsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveGallerySource counts one gallery result by source.
func ObserveGallerySource(source string) {
	gallerySourceTotal.WithLabelValues(source).Inc()
}

// ObserveCachePurge counts a quota purge and the number of keys it removed.
func ObserveCachePurge(namespace string, removed int) {
	cachePurgesTotal.WithLabelValues(namespace).Inc()
	cachePurgedKeysTotal.WithLabelValues(namespace).Add(float64(removed))
}

// SetBreakerState publishes a circuit breaker state transition.
func SetBreakerState(name string, state int) {
	breakerState.WithLabelValues(name).Set(float64(state))
}

// ObserveTrendingRefresh counts a trending refresh; fallback marks refreshes
// that served the static list.
func ObserveTrendingRefresh(fallback bool) {
	result := "live"
	if fallback {
		result = "fallback"
	}
	trendingRefreshTotal.WithLabelValues(result).Inc()
}
