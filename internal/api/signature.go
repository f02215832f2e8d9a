package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrStaleTimestamp is returned when the request timestamp is outside the
	// replay window.
	ErrStaleTimestamp = errors.New("request timestamp outside allowed window")
	// ErrBadSignature is returned when the HMAC does not match.
	ErrBadSignature = errors.New("request signature mismatch")
)

// replayWindow bounds how old (or future-dated) a signed request may be.
const replayWindow = 5 * time.Minute

// SignatureVerifier checks the v0 HMAC-SHA256 signature scheme used by
// slash-command callbacks: hex(HMAC(secret, "v0:<timestamp>:<body>")).
type SignatureVerifier struct {
	secret []byte
	clock  clockwork.Clock
}

func NewSignatureVerifier(secret string, clock clockwork.Clock) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(secret), clock: clock}
}

// Verify validates the timestamp freshness and the signature over the raw body.
func (v *SignatureVerifier) Verify(timestamp string, body []byte, signature string) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request timestamp %q: %w", timestamp, err)
	}

	age := v.clock.Now().Sub(time.Unix(ts, 0))
	if age > replayWindow || age < -replayWindow {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
