package server

import (
	"net/http"

	"gasline/internal/checkout/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(checkoutCtrl *controller.CheckoutController) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/checkout", checkoutCtrl.Submit)
	r.Post("/api/checkout/delivery-options", checkoutCtrl.DeliveryOptions)

	return r
}
