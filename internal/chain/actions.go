package chain

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/mr-tron/base58"
)

const (
	// LamportsPerSOL converts the human amount into the native unit.
	LamportsPerSOL = 1_000_000_000

	// MinStakeSOL is the smallest deposit the stake program accepts.
	MinStakeSOL = 0.0001

	// PollInterval is how often a submitted signature is polled.
	PollInterval = 500 * time.Millisecond

	// VotePollAttempts bounds confirmation polling for votes and stakes.
	VotePollAttempts = 20

	// ItemIDPollAttempts bounds polling for item registration, which the
	// caller blocks on and therefore waits longer for.
	ItemIDPollAttempts = 30
)

// VoteDirection selects the vote program handler.
type VoteDirection int

const (
	Upvote VoteDirection = iota
	Downvote
)

// Actions wraps the submit-then-poll flows against the vote and stake
// programs.  Every action fetches a fresh blockhash immediately before
// submission; once a transaction is sent it cannot be recalled, so ctx
// cancellation only abandons the polling, not the transaction.
type Actions struct {
	rpc    *Client
	wallet Wallet
}

func NewActions(rpc *Client, wallet Wallet) *Actions {
	return &Actions{rpc: rpc, wallet: wallet}
}

func (a *Actions) submit(ctx context.Context, instructions []Instruction) (string, error) {
	blockhash, err := a.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	tx := &Transaction{
		FeePayer:        a.wallet.PublicKey(),
		RecentBlockhash: blockhash,
		Instructions:    instructions,
	}
	sig, err := a.wallet.SignAndSend(ctx, a.rpc, tx)
	if err != nil {
		return "", Categorize(err.Error())
	}
	return sig, nil
}

// awaitSignature polls the signature until the cluster confirms it, it
// fails with a categorized error, or the attempt budget runs out.
func (a *Actions) awaitSignature(ctx context.Context, sig string, maxAttempts int) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(PollInterval):
		}

		statuses, err := a.rpc.GetSignatureStatuses(ctx, []string{sig})
		if err != nil {
			// Transient RPC trouble; the attempt still counts.
			continue
		}
		if len(statuses) == 0 || statuses[0] == nil {
			continue
		}
		st := statuses[0]
		if st.Failed() {
			return Categorize(string(st.Err))
		}
		if st.Confirmed() {
			return nil
		}
	}
	return fmt.Errorf("signature %s: %w", sig, ErrTimeout)
}

// ItemAddress derives the item account for an id.
func ItemAddress(itemID string) (PublicKey, error) {
	pk, _, err := FindProgramAddress([][]byte{[]byte("item"), []byte(itemID)}, VoteProgramID)
	return pk, err
}

// VoteTrackerAddress derives the per-voter tracker account the program uses
// to reject double votes.
func VoteTrackerAddress(itemID string, voter PublicKey) (PublicKey, error) {
	pk, _, err := FindProgramAddress([][]byte{[]byte("vote_tracker"), []byte(itemID), voter[:]}, VoteProgramID)
	return pk, err
}

// VaultAddress derives the stake vault for an owner.
func VaultAddress(owner PublicKey) (PublicKey, error) {
	pk, _, err := FindProgramAddress([][]byte{[]byte("vault"), owner[:]}, StakeProgramID)
	return pk, err
}

// Vote submits an up or down vote for an item and waits for confirmation.
// The program itself enforces one vote per wallet per item; a second
// attempt comes back as AlreadyActioned.
func (a *Actions) Vote(ctx context.Context, itemID string, dir VoteDirection) (string, error) {
	voter := a.wallet.PublicKey()
	item, err := ItemAddress(itemID)
	if err != nil {
		return "", err
	}
	tracker, err := VoteTrackerAddress(itemID, voter)
	if err != nil {
		return "", err
	}

	disc := UpvoteDiscriminator
	if dir == Downvote {
		disc = DownvoteDiscriminator
	}

	ins := Instruction{
		ProgramID: VoteProgramID,
		Accounts: []AccountMeta{
			{PubKey: item, IsWritable: true},
			{PubKey: tracker, IsWritable: true},
			{PubKey: voter, IsSigner: true, IsWritable: true},
			{PubKey: SystemProgramID},
		},
		Data: disc[:],
	}

	sig, err := a.submit(ctx, []Instruction{ins})
	if err != nil {
		return "", err
	}
	if err := a.awaitSignature(ctx, sig, VotePollAttempts); err != nil {
		return sig, err
	}
	return sig, nil
}

// Stake deposits SOL into the caller's vault, creating the vault first when
// it does not exist yet.  Both instructions ride in one transaction so a
// first-time stake is still atomic.
func (a *Actions) Stake(ctx context.Context, amountSOL float64) (string, error) {
	if amountSOL < MinStakeSOL {
		return "", fmt.Errorf("stake amount %g below minimum %g SOL", amountSOL, MinStakeSOL)
	}
	lamports := uint64(amountSOL * LamportsPerSOL)

	owner := a.wallet.PublicKey()
	vault, err := VaultAddress(owner)
	if err != nil {
		return "", err
	}

	var instructions []Instruction

	info, err := a.rpc.GetAccountInfo(ctx, vault)
	if err != nil {
		return "", err
	}
	if info == nil {
		initDisc := AnchorDiscriminator("init_vault")
		instructions = append(instructions, Instruction{
			ProgramID: StakeProgramID,
			Accounts: []AccountMeta{
				{PubKey: vault, IsWritable: true},
				{PubKey: owner, IsSigner: true, IsWritable: true},
				{PubKey: SystemProgramID},
			},
			Data: initDisc[:],
		})
	}

	depositDisc := AnchorDiscriminator("deposit")
	instructions = append(instructions, Instruction{
		ProgramID: StakeProgramID,
		Accounts: []AccountMeta{
			{PubKey: vault, IsWritable: true},
			{PubKey: owner, IsSigner: true, IsWritable: true},
			{PubKey: SystemProgramID},
		},
		Data: append(depositDisc[:], u64LE(lamports)...),
	})

	sig, err := a.submit(ctx, instructions)
	if err != nil {
		return "", err
	}
	if err := a.awaitSignature(ctx, sig, VotePollAttempts); err != nil {
		return sig, err
	}
	return sig, nil
}

// GenerateItemID picks a random item id, verifies the derived account is
// unused, and registers it on chain.  Collisions re-roll the id before
// anything is submitted.
func (a *Actions) GenerateItemID(ctx context.Context) (string, string, error) {
	payer := a.wallet.PublicKey()

	var itemID string
	var item PublicKey
	for attempt := 0; attempt < 5; attempt++ {
		candidate, err := randomItemID()
		if err != nil {
			return "", "", err
		}
		addr, err := ItemAddress(candidate)
		if err != nil {
			return "", "", err
		}
		info, err := a.rpc.GetAccountInfo(ctx, addr)
		if err != nil {
			return "", "", err
		}
		if info == nil {
			itemID, item = candidate, addr
			break
		}
	}
	if itemID == "" {
		return "", "", fmt.Errorf("could not find an unused item id")
	}

	// Anchor string argument: u32 length prefix, then the bytes.
	data := make([]byte, 0, 8+4+len(itemID))
	data = append(data, InitializeItemDiscriminator[:]...)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(itemID)))
	data = append(data, lenBuf[:]...)
	data = append(data, itemID...)

	ins := Instruction{
		ProgramID: VoteProgramID,
		Accounts: []AccountMeta{
			{PubKey: item, IsWritable: true},
			{PubKey: payer, IsSigner: true, IsWritable: true},
			{PubKey: SystemProgramID},
		},
		Data: data,
	}

	sig, err := a.submit(ctx, []Instruction{ins})
	if err != nil {
		return "", "", err
	}
	if err := a.awaitSignature(ctx, sig, ItemIDPollAttempts); err != nil {
		return itemID, sig, err
	}
	return itemID, sig, nil
}

func randomItemID() (string, error) {
	raw := make([]byte, 8)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("random id: %w", err)
	}
	return base58.Encode(raw), nil
}
