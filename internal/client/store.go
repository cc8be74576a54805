// Package client provides the Go-side access layer for the Space API: a
// Store abstraction with HTTP and in-memory backends, section fetchers that
// reconcile server rows into display shapes, and the vote write path.
package client

import (
	"context"
	"errors"

	"github.com/cadalt0/Space/internal/model"
)

// Store is the full CRUD contract the backends implement.  Upserts return
// the stored row plus whether the call created it; mutations echo bare rows
// while single lookups and lists carry the joined parent-space fields, the
// same split the HTTP API exposes.
type Store interface {
	// SNS users, keyed by email.
	UpsertUser(ctx context.Context, email, snsID string, fields map[string]any) (*model.User, bool, error)
	GetUser(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	PatchUser(ctx context.Context, email string, fields map[string]any) (*model.User, error)

	// Spaces, the parent resource.
	UpsertSpace(ctx context.Context, spaceID string, fields map[string]any) (*model.Space, bool, error)
	GetSpace(ctx context.Context, spaceID string) (*model.Space, error)
	ListSpaces(ctx context.Context) ([]*model.Space, error)
	PatchSpace(ctx context.Context, spaceID string, fields map[string]any) (*model.Space, error)
	DeleteSpace(ctx context.Context, spaceID string) (*model.Space, error)
	ListSpaceShops(ctx context.Context, spaceID string) ([]*model.ShopWithSpace, error)

	// Shops require a parent space.
	UpsertShop(ctx context.Context, shopID, name, spaceID string, fields map[string]any) (*model.Shop, bool, error)
	GetShop(ctx context.Context, shopID string) (*model.ShopWithSpace, error)
	ListShops(ctx context.Context) ([]*model.ShopWithSpace, error)
	PatchShop(ctx context.Context, shopID string, fields map[string]any) (*model.Shop, error)
	DeleteShop(ctx context.Context, shopID string) (*model.Shop, error)

	// Lend items; spaceID "" lists everything.
	UpsertLendItem(ctx context.Context, itemID, name, owner string, fields map[string]any) (*model.LendItem, bool, error)
	GetLendItem(ctx context.Context, itemID string) (*model.LendItemWithSpace, error)
	ListLendItems(ctx context.Context, spaceID string) ([]*model.LendItemWithSpace, error)
	PatchLendItem(ctx context.Context, itemID string, fields map[string]any) (*model.LendItem, error)
	DeleteLendItem(ctx context.Context, itemID string) (*model.LendItem, error)

	// Requests.
	UpsertRequest(ctx context.Context, requestID, title, requester string, fields map[string]any) (*model.Request, bool, error)
	GetRequest(ctx context.Context, requestID string) (*model.RequestWithSpace, error)
	ListRequests(ctx context.Context, spaceID string) ([]*model.RequestWithSpace, error)
	PatchRequest(ctx context.Context, requestID string, fields map[string]any) (*model.Request, error)
	DeleteRequest(ctx context.Context, requestID string) (*model.Request, error)

	// Hangouts.
	UpsertHangout(ctx context.Context, hangID, title, host string, fields map[string]any) (*model.Hangout, bool, error)
	GetHangout(ctx context.Context, hangID string) (*model.HangoutWithSpace, error)
	ListHangouts(ctx context.Context, spaceID string) ([]*model.HangoutWithSpace, error)
	PatchHangout(ctx context.Context, hangID string, fields map[string]any) (*model.Hangout, error)
	DeleteHangout(ctx context.Context, hangID string) (*model.Hangout, error)
}

// Sentinel errors shared by every backend.  The HTTP backend wraps them with
// the server's message; the mock returns them bare.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
