package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPortalQueueDepth exposes the portal provisioning queue depth as a
// gauge backed by the given callback.
func RegisterPortalQueueDepth(depth func() int) {
	registerPortalQueueDepthWith(prometheus.DefaultRegisterer, depth)
}

func registerPortalQueueDepthWith(registerer prometheus.Registerer, depth func() int) {
	collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "gasline_portal_queue_depth",
		Help: "Number of portal provisioning tasks waiting in the queue",
	}, func() float64 {
		return float64(depth())
	})

	if err := registerer.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return
		}
		panic(fmt.Sprintf("register gauge %q: %v", "gasline_portal_queue_depth", err))
	}
}
