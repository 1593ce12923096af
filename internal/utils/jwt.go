package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessTokenTTL is the fixed validity window of an access token.  The two
// hour window is a design constant of the API, not configuration: every
// token issued by this process expires exactly two hours after issuance.
const AccessTokenTTL = 2 * time.Hour

// ErrInvalidToken is returned when a token fails signature verification,
// has expired, or cannot be parsed at all.
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidSubject is returned when a token verifies cryptographically but
// its subject claim is missing or not a user identifier.  Callers must treat
// this differently from a bad signature: the payload shape is wrong, and no
// partial identity may be derived from it.
var ErrInvalidSubject = errors.New("invalid token subject")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string; Exp records the UTC
// expiration time.  Access tokens are carried in the Authorization header
// when calling protected endpoints.
type AccessToken struct {
    Token string
    Exp   time.Time
}

// accessClaims is the validated claim set of an access token.  Only the
// registered claims are used: sub carries the user ID as a decimal string,
// iat the issue time and exp the expiry.
type accessClaims struct {
    jwt.RegisteredClaims
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret and the user ID and returns an AccessToken containing the
// signed string and its expiration time.  The expiry is always
// AccessTokenTTL from now; there is no per-call override.
func NewAccessToken(secret string, userID uint64) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(AccessTokenTTL)
    claims := accessClaims{
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.FormatUint(userID, 10),
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies a raw token string against the signing secret
// and returns the user ID it was issued for.  Verification fails with
// ErrInvalidToken on a bad signature, wrong signing method or elapsed
// expiry, and with ErrInvalidSubject when the claim set carries no usable
// subject.  A token is never partially accepted.
func ParseAccessToken(secret, raw string) (uint64, error) {
    var claims accessClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        // Reject any signing method other than HMAC; an attacker must not
        // be able to downgrade to "none" or switch to an asymmetric scheme.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, ErrInvalidToken
    }
    if claims.Subject == "" {
        return 0, ErrInvalidSubject
    }
    uid, err := strconv.ParseUint(claims.Subject, 10, 64)
    if err != nil || uid == 0 {
        return 0, ErrInvalidSubject
    }
    return uid, nil
}
