// Package promcollector exports quadgrid metrics to Prometheus.
//
// Usage:
//
//	c := promcollector.New(prometheus.DefaultRegisterer)
//	tree, _ := quadgrid.NewQuadTree(items, 8, quadgrid.WithMetricsCollector(c))
//	http.Handle("/metrics", promhttp.Handler())
package promcollector
