// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
)

// Ed25519Key is the reference SignatureKey, used by tests and the
// cmd/replica demo in place of a real threshold-friendly scheme.
type Ed25519Key struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

var _ SignatureKey = (*Ed25519Key)(nil)

// GenerateEd25519Key creates a new random keypair.
func GenerateEd25519Key() (*Ed25519Key, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Ed25519Key{priv: priv, pub: pub}, nil
}

func (k *Ed25519Key) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, msg), nil
}

func (k *Ed25519Key) PublicKeyBytes() []byte {
	return []byte(k.pub)
}

// Ed25519Check is the Checker for Ed25519Key-produced signatures.
func Ed25519Check(pk, sig, msg []byte) bool {
	if len(pk) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk), msg, sig)
}
