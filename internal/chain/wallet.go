package chain

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Wallet signs and submits transactions on behalf of a key holder.  Browser
// wallets and hardware signers sit behind the same interface; only their
// public key and a sign-and-send entry point are visible here.
type Wallet interface {
	PublicKey() PublicKey
	SignAndSend(ctx context.Context, rpc *Client, tx *Transaction) (string, error)
}

// LocalWallet holds an in-process ed25519 key.  Used in tests and tooling;
// production callers bring their own Wallet.
type LocalWallet struct {
	priv ed25519.PrivateKey
	pub  PublicKey
}

// NewLocalWallet generates a fresh keypair.
func NewLocalWallet() (*LocalWallet, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	var pk PublicKey
	copy(pk[:], pub)
	return &LocalWallet{priv: priv, pub: pk}, nil
}

func (w *LocalWallet) PublicKey() PublicKey {
	return w.pub
}

// SignAndSend serializes the transaction, signs its message and submits the
// base64 wire form through the RPC client.
func (w *LocalWallet) SignAndSend(ctx context.Context, rpc *Client, tx *Transaction) (string, error) {
	msg, err := tx.Message()
	if err != nil {
		return "", err
	}
	sig := ed25519.Sign(w.priv, msg)
	wire, err := tx.Serialize(sig)
	if err != nil {
		return "", err
	}
	return rpc.SendTransaction(ctx, base64.StdEncoding.EncodeToString(wire))
}
