// Package token mints and verifies the session tokens kept in local storage.
//
// A token is a compact JWT (header.payload.signature) signed with HS256
// under a shared secret. The payload carries the profile id as "userId"
// plus iat and an optional exp. The scheme only detects accidental or
// casual edits of stored tokens; it is not an authentication mechanism.
package token

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hitenchhabria09/film-folio-pro/internal/common"
)

// Claims is the token payload.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Payload is the decoded content of a token.
type Payload struct {
	SubjectID string
	IssuedAt  time.Time
	// ExpiresAt is zero when the token never expires.
	ExpiresAt time.Time
}

// HasExpiry reports whether the token carries an exp claim.
func (p Payload) HasExpiry() bool { return !p.ExpiresAt.IsZero() }

// Codec signs and checks tokens with one secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{secret: []byte(secret), now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Mint issues a token for subjectID. ttl is a lifetime expression such as
// "7d" (see ParseTTL); an empty ttl mints a token without expiry.
func (c *Codec) Mint(subjectID, ttl string) (string, error) {
	now := c.now()
	claims := Claims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl != "" {
		d, err := ParseTTL(ttl)
		if err != nil {
			return "", err
		}
		claims.ExpiresAt = jwt.NewNumericDate(claims.IssuedAt.Add(d))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns its payload.
// Errors are common.ErrMalformedToken, common.ErrBadSignature or
// common.ErrTokenExpired.
func (c *Codec) Verify(token string) (Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Payload{}, common.ErrMalformedToken
	}

	parser := c.parser()

	// The signature is checked against the segment text as stored, so any
	// edit of the first two segments is a signature failure.
	sig, err := parser.DecodeSegment(parts[2])
	if err != nil {
		return Payload{}, common.ErrBadSignature
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, c.secret); err != nil {
		return Payload{}, common.ErrBadSignature
	}

	var claims Claims
	_, err = parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Payload{}, common.ErrTokenExpired
	case err != nil:
		return Payload{}, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	case claims.UserID == "":
		return Payload{}, fmt.Errorf("%w: no subject", common.ErrMalformedToken)
	}
	return claims.payload(), nil
}

// DecodeUnsafe returns the payload without checking signature or expiry.
// It must not be used to decide who the user is.
func (c *Codec) DecodeUnsafe(token string) (Payload, bool) {
	var claims Claims
	if _, _, err := c.parser().ParseUnverified(token, &claims); err != nil {
		return Payload{}, false
	}
	return claims.payload(), true
}

func (c *Codec) parser() *jwt.Parser {
	return jwt.NewParser(
		jwt.WithTimeFunc(c.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
}

func (cl Claims) payload() Payload {
	p := Payload{SubjectID: cl.UserID}
	if cl.IssuedAt != nil {
		p.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		p.ExpiresAt = cl.ExpiresAt.Time
	}
	return p
}

var ttlPattern = regexp.MustCompile(`^(-?\d+)([hdw])$`)

var ttlUnits = map[string]time.Duration{
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// ParseTTL parses "<int><unit>" with unit h (hours), d (days) or w (weeks).
// Negative amounts are allowed.
func ParseTTL(expr string) (time.Duration, error) {
	m := ttlPattern.FindStringSubmatch(expr)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidTTL, expr)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidTTL, expr)
	}
	unit := ttlUnits[m[2]]
	if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q out of range", common.ErrInvalidTTL, expr)
	}
	return time.Duration(n) * unit, nil
}
