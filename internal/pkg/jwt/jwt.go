package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens minted by the identity provider and issues
// the short-lived stream tokens used by the SSE endpoint.
type Service interface {
	GenerateStreamToken(memberID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (memberID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// streamTokenTTL bounds how long a leaked stream URL stays usable.
const streamTokenTTL = 5 * time.Minute

// GenerateStreamToken issues a short-lived token for the notification SSE
// endpoint, where the EventSource API cannot set an Authorization header.
func (j *JWTService) GenerateStreamToken(memberID string) (string, int, error) {
	claims := map[string]interface{}{
		"member_id": memberID,
		"type":      "stream",
		"exp":       time.Now().Add(streamTokenTTL).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(streamTokenTTL.Seconds()), nil
}

func (j *JWTService) ValidateStreamToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}
	if err := jwt.Validate(token); err != nil {
		return "", err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	if claims["type"] != "stream" {
		return "", fmt.Errorf("not a stream token")
	}
	memberID, ok := claims["member_id"].(string)
	if !ok || memberID == "" {
		return "", fmt.Errorf("stream token missing member_id")
	}
	return memberID, nil
}
