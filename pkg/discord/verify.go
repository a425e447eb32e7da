package discord

import (
	"crypto/ed25519"
	"encoding/hex"
)

// VerifyInteraction checks the ed25519 signature Discord attaches to every
// interaction callback. The signed payload is the concatenation of the
// timestamp header and the raw request body. Any malformed input fails
// closed.
func VerifyInteraction(publicKeyHex, signatureHex, timestamp string, body []byte) bool {
	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	signature, err := hex.DecodeString(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return false
	}

	signed := make([]byte, 0, len(timestamp)+len(body))
	signed = append(signed, timestamp...)
	signed = append(signed, body...)
	return ed25519.Verify(ed25519.PublicKey(publicKey), signed, signature)
}
