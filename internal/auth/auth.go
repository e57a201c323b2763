package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"clinic-console-api/internal/model"
)

// TokenPrefix starts every console session token.
const TokenPrefix = "amsc_token_"

const (
	DefaultDemoEmail    = "admin@amsc.com"
	DefaultDemoPassword = "admin123"
)

var ErrBadToken = errors.New("invalid token")

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Demo is the single accepted credential pair and the user it logs in as.
type Demo struct {
	email string
	hash  string
	user  model.User
}

func NewDemo(email, password string) (*Demo, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Demo{
		email: email,
		hash:  hash,
		user:  model.User{ID: 1, Email: email, Name: "Admin User", Role: "admin"},
	}, nil
}

func (d *Demo) Check(c model.Credentials) bool {
	return c.Email == d.email && CheckPassword(d.hash, c.Password)
}

func (d *Demo) User() model.User { return d.user }

type Claims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// Tokens issues and checks session tokens. Without a secret a token is
// the prefix plus the issue time in epoch milliseconds and validation is
// a prefix check. With a secret the suffix is an HS256 JWT and the
// signature and expiry are checked as well.
type Tokens struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: secret, ttl: 12 * time.Hour, now: time.Now}
}

func (t *Tokens) Signed() bool { return t.secret != "" }

func (t *Tokens) Issue(u model.User) (string, error) {
	now := t.now()
	if !t.Signed() {
		return TokenPrefix + strconv.FormatInt(now.UnixMilli(), 10), nil
	}
	c := Claims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(t.secret))
	if err != nil {
		return "", err
	}
	return TokenPrefix + s, nil
}

func (t *Tokens) Validate(raw string) error {
	if !strings.HasPrefix(raw, TokenPrefix) {
		return ErrBadToken
	}
	if !t.Signed() {
		return nil
	}
	_, err := t.parse(strings.TrimPrefix(raw, TokenPrefix))
	return err
}

func (t *Tokens) parse(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(tk *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(t.secret), nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, ErrBadToken
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}
