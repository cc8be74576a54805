package client

import (
	"context"
	"fmt"
	"time"
)

// VoteKind names a votable resource kind.
type VoteKind string

const (
	VoteSpace    VoteKind = "space"
	VoteShop     VoteKind = "shop"
	VoteLendItem VoteKind = "lend_item"
	VoteRequest  VoteKind = "request"
	VoteHangout  VoteKind = "hangout"
)

// Direction is the vote direction.
type Direction int

const (
	Up Direction = iota
	Down
)

// voteRetryDelay spaces out the extra database attempts after a vote has
// already landed on chain.
const voteRetryDelay = 500 * time.Millisecond

// ApplyVote bumps a counter by reading the current row and patching it back
// with the incremented value.  There is no atomic increment on the wire, so
// two concurrent voters can read the same count and one bump can be lost;
// that behavior is inherited and callers should not expect exact totals
// under contention.
func ApplyVote(ctx context.Context, s Store, kind VoteKind, id string, dir Direction) error {
	switch kind {
	case VoteSpace:
		sp, err := s.GetSpace(ctx, id)
		if err != nil {
			return err
		}
		field, val := "upvotes", sp.Upvotes+1
		if dir == Down {
			field, val = "downvotes", sp.Downvotes+1
		}
		_, err = s.PatchSpace(ctx, id, map[string]any{field: val})
		return err
	case VoteShop:
		sh, err := s.GetShop(ctx, id)
		if err != nil {
			return err
		}
		field, val := "up", sh.Up+1
		if dir == Down {
			field, val = "down", sh.Down+1
		}
		_, err = s.PatchShop(ctx, id, map[string]any{field: val})
		return err
	case VoteLendItem:
		it, err := s.GetLendItem(ctx, id)
		if err != nil {
			return err
		}
		field, val := "up", it.Up+1
		if dir == Down {
			field, val = "down", it.Down+1
		}
		_, err = s.PatchLendItem(ctx, id, map[string]any{field: val})
		return err
	case VoteRequest:
		rq, err := s.GetRequest(ctx, id)
		if err != nil {
			return err
		}
		field, val := "up", rq.Up+1
		if dir == Down {
			field, val = "down", rq.Down+1
		}
		_, err = s.PatchRequest(ctx, id, map[string]any{field: val})
		return err
	case VoteHangout:
		hg, err := s.GetHangout(ctx, id)
		if err != nil {
			return err
		}
		field, val := "up", hg.Up+1
		if dir == Down {
			field, val = "down", hg.Down+1
		}
		_, err = s.PatchHangout(ctx, id, map[string]any{field: val})
		return err
	default:
		return fmt.Errorf("unknown vote kind %q", kind)
	}
}

// RecordVote persists a vote that already succeeded on chain.  Because the
// chain half cannot be rolled back, the database half is retried up to two
// extra times before giving up.
func RecordVote(ctx context.Context, s Store, kind VoteKind, id string, dir Direction) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(voteRetryDelay):
			}
		}
		if err = ApplyVote(ctx, s, kind, id, dir); err == nil {
			return nil
		}
	}
	return fmt.Errorf("record vote after 3 attempts: %w", err)
}
