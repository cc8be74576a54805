package chain

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"
)

// Program addresses and instruction discriminators used by the vote and
// stake programs.  The 8-byte discriminators select the program handler;
// the named ones are fixed by the deployed programs and must not change.
var (
	VoteProgramID  = MustPublicKey("5zQieQbJebHJdxpURBSswrVbHWtKXZHx6EF1gEzNrXZp")
	StakeProgramID = MustPublicKey("HiTfqcaU6XwKVYcudqCLAZKzCFjCyXQxZ1LQkn2PcEks")

	UpvoteDiscriminator         = [8]byte{42, 0, 164, 246, 91, 159, 253, 153}
	DownvoteDiscriminator       = [8]byte{8, 204, 29, 166, 78, 34, 66, 169}
	InitializeItemDiscriminator = [8]byte{56, 205, 178, 170, 150, 105, 174, 27}
)

// AnchorDiscriminator derives the 8-byte handler selector for methods whose
// discriminator is not pinned above: sha256("global:<name>") truncated.
func AnchorDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// u64LE encodes an instruction argument as little-endian u64.
func u64LE(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}

// AccountMeta declares how an instruction touches one account.
type AccountMeta struct {
	PubKey     PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is one program invocation inside a transaction.
type Instruction struct {
	ProgramID PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// Transaction is an unsigned transaction: a fee payer, the blockhash it is
// valid against, and its instructions.
type Transaction struct {
	FeePayer        PublicKey
	RecentBlockhash string
	Instructions    []Instruction
}

// shortvec writes the compact-u16 length prefix used by the wire format.
func shortvec(buf *bytes.Buffer, n int) {
	for {
		if n < 0x80 {
			buf.WriteByte(byte(n))
			return
		}
		buf.WriteByte(byte(n&0x7f | 0x80))
		n >>= 7
	}
}

type compiledKey struct {
	key      PublicKey
	signer   bool
	writable bool
}

// compileKeys orders the account table: writable signers first (fee payer at
// index 0), then readonly signers, writable non-signers, and readonly
// non-signers including the program ids.
func (tx *Transaction) compileKeys() []compiledKey {
	merged := map[PublicKey]*compiledKey{}
	order := []PublicKey{}

	add := func(pk PublicKey, signer, writable bool) {
		if entry, ok := merged[pk]; ok {
			entry.signer = entry.signer || signer
			entry.writable = entry.writable || writable
			return
		}
		merged[pk] = &compiledKey{key: pk, signer: signer, writable: writable}
		order = append(order, pk)
	}

	add(tx.FeePayer, true, true)
	for _, ins := range tx.Instructions {
		for _, acc := range ins.Accounts {
			add(acc.PubKey, acc.IsSigner, acc.IsWritable)
		}
		add(ins.ProgramID, false, false)
	}

	rank := func(k *compiledKey) int {
		switch {
		case k.signer && k.writable:
			return 0
		case k.signer:
			return 1
		case k.writable:
			return 2
		default:
			return 3
		}
	}

	out := make([]compiledKey, 0, len(order))
	for class := 0; class < 4; class++ {
		for _, pk := range order {
			if k := merged[pk]; rank(k) == class {
				out = append(out, *k)
			}
		}
	}
	return out
}

// Message serializes the unsigned message that gets signed.
func (tx *Transaction) Message() ([]byte, error) {
	blockhash, err := base58.Decode(tx.RecentBlockhash)
	if err != nil || len(blockhash) != 32 {
		return nil, fmt.Errorf("invalid recent blockhash %q", tx.RecentBlockhash)
	}

	keys := tx.compileKeys()
	index := map[PublicKey]int{}
	for i, k := range keys {
		index[k.key] = i
	}

	var numSigners, numReadonlySigned, numReadonlyUnsigned int
	for _, k := range keys {
		if k.signer {
			numSigners++
			if !k.writable {
				numReadonlySigned++
			}
		} else if !k.writable {
			numReadonlyUnsigned++
		}
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(numSigners))
	buf.WriteByte(byte(numReadonlySigned))
	buf.WriteByte(byte(numReadonlyUnsigned))

	shortvec(&buf, len(keys))
	for _, k := range keys {
		buf.Write(k.key[:])
	}
	buf.Write(blockhash)

	shortvec(&buf, len(tx.Instructions))
	for _, ins := range tx.Instructions {
		buf.WriteByte(byte(index[ins.ProgramID]))
		shortvec(&buf, len(ins.Accounts))
		for _, acc := range ins.Accounts {
			buf.WriteByte(byte(index[acc.PubKey]))
		}
		shortvec(&buf, len(ins.Data))
		buf.Write(ins.Data)
	}
	return buf.Bytes(), nil
}

// Serialize assembles the wire transaction from the message and the fee
// payer's signature.
func (tx *Transaction) Serialize(signature []byte) ([]byte, error) {
	if len(signature) != 64 {
		return nil, fmt.Errorf("signature must be 64 bytes, got %d", len(signature))
	}
	msg, err := tx.Message()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	shortvec(&buf, 1)
	buf.Write(signature)
	buf.Write(msg)
	return buf.Bytes(), nil
}
