package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_http_requests_total",
}, []string{"action", "method"})
var HttpResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_http_responses_total",
}, []string{"action", "method", "statusCode"})
var CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_cache_hits_total",
}, []string{"cache"})
var CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_cache_misses_total",
}, []string{"cache"})
var CacheEvictions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_cache_evictions_total",
}, []string{"cache", "reason"})
var ThumbnailsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_thumbnails_generated_total",
}, []string{"variant"})
var ImagesServed = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_images_served_total",
}, []string{"variant", "disposition"})
var CachesCleared = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "julender_caches_cleared_total",
}, []string{"domain", "status"})

func init() {
	prometheus.MustRegister(HttpRequests)
	prometheus.MustRegister(HttpResponses)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(CacheEvictions)
	prometheus.MustRegister(ThumbnailsGenerated)
	prometheus.MustRegister(ImagesServed)
	prometheus.MustRegister(CachesCleared)
}
