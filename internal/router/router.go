package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/cadalt0/Space/internal/handler" // import the handlers that implement business logic
)

// Handlers bundles every resource handler the API mounts.  Keeping the set
// in one struct means RegisterRoutes stays the single place where the route
// table lives.
type Handlers struct {
	SNS      *handler.SNSHandler
	Spaces   *handler.SpaceHandler
	Shops    *handler.ShopHandler
	Items    *handler.LendItemHandler
	Requests *handler.RequestHandler
	Hangouts *handler.HangoutHandler
	Health   *handler.HealthHandler
}

// RegisterRoutes wires the whole route table onto the provided Echo
// instance.  Every resource kind follows the same shape: upsert via POST on
// the collection, list via GET on the collection, and GET/PATCH/DELETE on
// the keyed path.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	// Health endpoint for load balancers and monitoring.  Reports database
	// connectivity alongside process liveness.
	e.GET("/health", h.Health.Check)

	// Wallet-to-profile registrations, keyed by email.
	sns := e.Group("/api/sns")
	sns.POST("", h.SNS.Upsert)
	sns.GET("", h.SNS.List)
	sns.GET("/:email", h.SNS.Get)
	sns.PATCH("/:email", h.SNS.Patch)

	// Spaces are the parent resource; the nested shops listing 404s when
	// the space itself is missing.
	spaces := e.Group("/api/spaces")
	spaces.POST("", h.Spaces.Upsert)
	spaces.GET("", h.Spaces.List)
	spaces.GET("/:spaceId", h.Spaces.Get)
	spaces.PATCH("/:spaceId", h.Spaces.Patch)
	spaces.DELETE("/:spaceId", h.Spaces.Delete)
	spaces.GET("/:spaceId/shops", h.Spaces.ListShops)

	// Shops require a parent space on create.
	shops := e.Group("/api/shops")
	shops.POST("", h.Shops.Upsert)
	shops.GET("", h.Shops.List)
	shops.GET("/:shopId", h.Shops.Get)
	shops.PATCH("/:shopId", h.Shops.Patch)
	shops.DELETE("/:shopId", h.Shops.Delete)

	// Lend items, requests and hangouts share the optional ?spaceId= list
	// filter and may exist outside any space.
	items := e.Group("/api/lend-items")
	items.POST("", h.Items.Upsert)
	items.GET("", h.Items.List)
	items.GET("/:id", h.Items.Get)
	items.PATCH("/:id", h.Items.Patch)
	items.DELETE("/:id", h.Items.Delete)

	requests := e.Group("/api/requests")
	requests.POST("", h.Requests.Upsert)
	requests.GET("", h.Requests.List)
	requests.GET("/:id", h.Requests.Get)
	requests.PATCH("/:id", h.Requests.Patch)
	requests.DELETE("/:id", h.Requests.Delete)

	hangouts := e.Group("/api/hangouts")
	hangouts.POST("", h.Hangouts.Upsert)
	hangouts.GET("", h.Hangouts.List)
	hangouts.GET("/:id", h.Hangouts.Get)
	hangouts.PATCH("/:id", h.Hangouts.Patch)
	hangouts.DELETE("/:id", h.Hangouts.Delete)
}
