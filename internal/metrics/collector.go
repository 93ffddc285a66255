// Package metrics exposes lot state as Prometheus metrics written to a
// node_exporter textfile, so the CLI needs no listening socket.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
)

// Source is the read side of a parking lot.
type Source interface {
	GetStatus() parking.Status
	GetStatistics() parking.Statistics
}

type LotCollector struct {
	source Source

	occupancy     *prometheus.Desc
	capacity      *prometheus.Desc
	waiting       *prometheus.Desc
	revenue       *prometheus.Desc
	admissions    *prometheus.Desc
	retrievals    *prometheus.Desc
	cancellations *prometheus.Desc
	archived      *prometheus.Desc
}

func NewLotCollector(source Source) *LotCollector {
	return &LotCollector{
		source:        source,
		occupancy:     prometheus.NewDesc("parking_lot_occupancy", "Vehicles currently parked.", nil, nil),
		capacity:      prometheus.NewDesc("parking_lot_capacity", "Number of parking slots.", nil, nil),
		waiting:       prometheus.NewDesc("parking_waiting_queue_length", "Vehicles waiting for a slot.", nil, nil),
		revenue:       prometheus.NewDesc("parking_revenue_total", "Fees collected this session.", nil, nil),
		admissions:    prometheus.NewDesc("parking_admissions_total", "Vehicles admitted into a slot.", nil, nil),
		retrievals:    prometheus.NewDesc("parking_retrievals_total", "Vehicles retrieved.", nil, nil),
		cancellations: prometheus.NewDesc("parking_retrieval_cancellations_total", "Retrievals declined at confirmation.", nil, nil),
		archived:      prometheus.NewDesc("parking_archive_records", "Records held in the archive index.", nil, nil),
	}
}

func (c *LotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.occupancy
	ch <- c.capacity
	ch <- c.waiting
	ch <- c.revenue
	ch <- c.admissions
	ch <- c.retrievals
	ch <- c.cancellations
	ch <- c.archived
}

func (c *LotCollector) Collect(ch chan<- prometheus.Metric) {
	status := c.source.GetStatus()
	stats := c.source.GetStatistics()

	ch <- prometheus.MustNewConstMetric(c.occupancy, prometheus.GaugeValue, float64(status.Occupancy))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(status.Capacity))
	ch <- prometheus.MustNewConstMetric(c.waiting, prometheus.GaugeValue, float64(len(status.Waiting)))
	ch <- prometheus.MustNewConstMetric(c.revenue, prometheus.CounterValue, stats.TotalRevenue.InexactFloat64())
	ch <- prometheus.MustNewConstMetric(c.admissions, prometheus.CounterValue, float64(stats.Admissions))
	ch <- prometheus.MustNewConstMetric(c.retrievals, prometheus.CounterValue, float64(stats.Retrievals))
	ch <- prometheus.MustNewConstMetric(c.cancellations, prometheus.CounterValue, float64(stats.Cancellations))
	ch <- prometheus.MustNewConstMetric(c.archived, prometheus.GaugeValue, float64(stats.Archived))
}

// NewRegistry returns a registry holding only the lot collector.
func NewRegistry(source Source) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewLotCollector(source)); err != nil {
		return nil, err
	}
	return reg, nil
}

// WriteTextfile renders the current lot metrics to path atomically.
func WriteTextfile(path string, source Source) error {
	reg, err := NewRegistry(source)
	if err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
