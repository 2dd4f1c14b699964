// README: Firebase Admin SDK initialisation and ID token verification for guests and hosts.
package infra

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Marketplace roles carried in the "role" custom claim.
const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// VerifiedToken is the caller identity extracted from a Firebase ID token.
type VerifiedToken struct {
	UID    string
	Role   string
	Claims map[string]interface{}
}

// TokenVerifier verifies a raw ID token string.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*VerifiedToken, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier builds a TokenVerifier from the Admin SDK. An empty
// credentialsFile falls back to application-default credentials.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*VerifiedToken, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &VerifiedToken{UID: token.UID, Role: RoleFromClaims(token.Claims), Claims: token.Claims}, nil
}

// RoleFromClaims reads the role claim. Unknown or missing roles are guests.
func RoleFromClaims(claims map[string]interface{}) string {
	role, _ := claims["role"].(string)
	switch role {
	case RoleHost, RoleAdmin:
		return role
	default:
		return RoleGuest
	}
}
