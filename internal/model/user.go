package model

// User represents a wallet-login user who has claimed an on-chain
// domain-name (SNS) profile.  A row is created the first time a profile
// is claimed and updated whenever the profile id or stake balance
// changes; the API never deletes users.  This struct corresponds to a
// row in the `sns_users` table.
//
// Fields:
//  ID        – auto-increment primary key.
//  Email     – unique natural key chosen at wallet login.
//  SNSID     – the claimed domain-name profile id (e.g. "alice.sol").
//  Stake     – staked balance in SOL, DECIMAL(20,8) in the store.
//  CreatedAt – timestamp when the row was created.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64  `json:"id"`         // sns_users.id
	Email     string  `json:"email"`      // sns_users.email
	SNSID     string  `json:"sns_id"`     // sns_users.sns_id
	Stake     float64 `json:"stake"`      // sns_users.stake
	CreatedAt string  `json:"created_at"` // sns_users.created_at
	UpdatedAt string  `json:"updated_at"` // sns_users.updated_at
}
