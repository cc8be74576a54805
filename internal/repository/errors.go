// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto the API's error taxonomy: unknown natural keys become 404
// responses, while a payload naming a missing parent space becomes a
// 400 before any write is attempted.
package repository

import "errors"

// ErrUserNotFound is returned when no sns_users row matches an email.
var ErrUserNotFound = errors.New("user not found")

// ErrSpaceNotFound is returned when no spaces row matches a space id.
// It doubles as the foreign-key guard error when a payload references a
// parent space that does not exist.
var ErrSpaceNotFound = errors.New("space not found")

// ErrShopNotFound is returned when no shops row matches a shop id.
var ErrShopNotFound = errors.New("shop not found")

// ErrLendItemNotFound is returned when no lend_items row matches an item id.
var ErrLendItemNotFound = errors.New("lend item not found")

// ErrRequestNotFound is returned when no requests row matches a request id.
var ErrRequestNotFound = errors.New("request not found")

// ErrHangoutNotFound is returned when no hangouts row matches a hangout id.
var ErrHangoutNotFound = errors.New("hangout not found")
