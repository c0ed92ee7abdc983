package stream

import (
    "net/http"
    "sync/atomic"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
    framesCapturedTotal = promauto.NewCounter(prometheus.CounterOpts{
        Name: "yuvsnap_frames_captured_total",
        Help: "Total number of I420 frames delivered by the capturer",
    })
    conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "yuvsnap_conversions_total",
        Help: "Total number of I420 to NV21 conversions by layout path",
    }, []string{"path"})
    conversionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "yuvsnap_conversion_errors_total",
        Help: "Total number of frames rejected by layout validation",
    }, []string{"reason"})
    snapshotsTotal = promauto.NewCounter(prometheus.CounterOpts{
        Name: "yuvsnap_snapshots_total",
        Help: "Total number of JPEG snapshots produced",
    })
    snapshotsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
        Name: "yuvsnap_snapshots_dropped_total",
        Help: "Total number of snapshots dropped because a subscriber queue was full",
    })
)

// Plain mirrors of the prometheus counters for /health.
var (
    framesIn         atomic.Uint64
    conversions      atomic.Uint64
    conversionErrors atomic.Uint64
    snapshots        atomic.Uint64
    snapshotsDropped atomic.Uint64
)

// ResetCounters resets the /health counters to zero. Prometheus counters are
// monotonic and are left alone.
func ResetCounters() {
    framesIn.Store(0)
    conversions.Store(0)
    conversionErrors.Store(0)
    snapshots.Store(0)
    snapshotsDropped.Store(0)
}

// GetCounters returns a snapshot of current metrics.
func GetCounters() map[string]uint64 {
    return map[string]uint64{
        "frames_in":         framesIn.Load(),
        "conversions":       conversions.Load(),
        "conversion_errors": conversionErrors.Load(),
        "snapshots":         snapshots.Load(),
        "snapshots_dropped": snapshotsDropped.Load(),
    }
}

// IncFramesIn counts a frame handed over by a capturer.
func IncFramesIn() {
    framesIn.Add(1)
    framesCapturedTotal.Inc()
}

// IncConversion counts a successful conversion; path is "contiguous" or "strided".
func IncConversion(path string) {
    conversions.Add(1)
    conversionsTotal.WithLabelValues(path).Inc()
}

// IncConversionError counts a frame rejected before conversion.
func IncConversionError(reason string) {
    conversionErrors.Add(1)
    conversionErrorsTotal.WithLabelValues(reason).Inc()
}

func IncSnapshots() {
    snapshots.Add(1)
    snapshotsTotal.Inc()
}

func incSnapshotsDropped() {
    snapshotsDropped.Add(1)
    snapshotsDroppedTotal.Inc()
}

// MetricsHandler should usually be mounted at /metrics
func MetricsHandler() http.Handler {
    return promhttp.Handler()
}
