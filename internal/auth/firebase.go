package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/punto-pos/pos-backend/config"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns the app
// together with an Auth client.
func InitializeFirebase(cfg *config.FirebaseConfig) (*firebase.App, *auth.Client, error) {
	conf := &firebase.Config{ProjectID: cfg.ProjectID}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(context.Background(), conf, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return app, authClient, nil
}
