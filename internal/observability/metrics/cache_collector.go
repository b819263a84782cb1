package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/tienda/internal/cache"
)

// cacheCollector expone los contadores del tier de cache (Stats del
// backend: keys vivas, hits y misses).
type cacheCollector struct {
	client cache.Client

	keysDesc   *prometheus.Desc
	hitsDesc   *prometheus.Desc
	missesDesc *prometheus.Desc
}

func newCacheCollector(client cache.Client) *cacheCollector {
	return &cacheCollector{
		client:     client,
		keysDesc:   prometheus.NewDesc("cache_keys", "Keys vivas en el cache", nil, nil),
		hitsDesc:   prometheus.NewDesc("cache_hits_total", "Lecturas de cache con hit", nil, nil),
		missesDesc: prometheus.NewDesc("cache_misses_total", "Lecturas de cache con miss", nil, nil),
	}
}

func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keysDesc
	ch <- c.hitsDesc
	ch <- c.missesDesc
}

func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	if c.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	stats, err := c.client.Stats(ctx)
	if err != nil {
		// Un backend caído no debe romper el scrape completo.
		return
	}
	ch <- prometheus.MustNewConstMetric(c.keysDesc, prometheus.GaugeValue, float64(stats.Keys))
	ch <- prometheus.MustNewConstMetric(c.hitsDesc, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.missesDesc, prometheus.CounterValue, float64(stats.Misses))
}
