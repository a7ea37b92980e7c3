package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Signature is the parsed contents of the gateway's x-signature header.
type Signature struct {
	TS   string
	Hash string
}

// ParseSignatureHeader splits an "ts=...,v1=..." header into its parts.
func ParseSignatureHeader(header string) Signature {
	var sig Signature
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "ts":
			sig.TS = value
		case "v1":
			sig.Hash = value
		}
	}
	return sig
}

// VerifySignature checks a webhook notification against the shared secret.
// The signed manifest is "id:<dataID>;request-id:<requestID>;ts:<ts>;" and
// the hash is hex-encoded HMAC-SHA256 over it.
func VerifySignature(secret, signatureHeader, requestID, dataID string) bool {
	if secret == "" || signatureHeader == "" || requestID == "" || dataID == "" {
		return false
	}

	sig := ParseSignatureHeader(signatureHeader)
	if sig.TS == "" || sig.Hash == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, sig.TS)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sig.Hash))
}
