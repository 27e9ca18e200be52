package routes

import (
	"net/http"

	"github.com/gearshare/backend/internal/api/handlers"
	"github.com/gearshare/backend/internal/api/middleware"
	"github.com/gearshare/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	userHandler    *handlers.UserHandler
	itemHandler    *handlers.ItemHandler
	bookingHandler *handlers.BookingHandler
	requestHandler *handlers.RequestHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	userHandler *handlers.UserHandler,
	itemHandler *handlers.ItemHandler,
	bookingHandler *handlers.BookingHandler,
	requestHandler *handlers.RequestHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		userHandler:    userHandler,
		itemHandler:    itemHandler,
		bookingHandler: bookingHandler,
		requestHandler: requestHandler,
		metrics:        metrics,
	}
}

// Setup registers all routes and returns the wrapped handler
func (rt *Router) Setup() http.Handler {
	rt.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	rt.mux.HandleFunc("POST /users", rt.userHandler.Create)
	rt.mux.HandleFunc("GET /users", rt.userHandler.List)
	rt.mux.HandleFunc("GET /users/{userId}", rt.userHandler.GetByID)
	rt.mux.HandleFunc("PATCH /users/{userId}", rt.userHandler.Update)
	rt.mux.HandleFunc("DELETE /users/{userId}", rt.userHandler.Delete)

	rt.mux.HandleFunc("POST /items", rt.itemHandler.Create)
	rt.mux.HandleFunc("GET /items", rt.itemHandler.ListByOwner)
	rt.mux.HandleFunc("GET /items/search", rt.itemHandler.Search)
	rt.mux.HandleFunc("GET /items/{itemId}", rt.itemHandler.GetByID)
	rt.mux.HandleFunc("PATCH /items/{itemId}", rt.itemHandler.Update)
	rt.mux.HandleFunc("POST /items/{itemId}/comment", rt.itemHandler.AddComment)

	rt.mux.HandleFunc("POST /bookings", rt.bookingHandler.Create)
	rt.mux.HandleFunc("GET /bookings", rt.bookingHandler.ListByBooker)
	rt.mux.HandleFunc("GET /bookings/owner", rt.bookingHandler.ListByOwner)
	rt.mux.HandleFunc("GET /bookings/{bookingId}", rt.bookingHandler.GetByID)
	rt.mux.HandleFunc("PATCH /bookings/{bookingId}", rt.bookingHandler.Approve)

	rt.mux.HandleFunc("POST /requests", rt.requestHandler.Create)
	rt.mux.HandleFunc("GET /requests", rt.requestHandler.ListByRequestor)
	rt.mux.HandleFunc("GET /requests/all", rt.requestHandler.ListOthers)
	rt.mux.HandleFunc("GET /requests/{requestId}", rt.requestHandler.GetByID)

	var handler http.Handler = rt.mux
	if rt.metrics != nil {
		handler = middleware.ObservabilityMiddleware(rt.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
