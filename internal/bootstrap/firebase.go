package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"github.com/punto-pos/pos-backend/config"
	"github.com/punto-pos/pos-backend/internal/auth"
)

// Firebase bundles the Admin SDK clients the service needs.
type Firebase struct {
	App       *firebase.App
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

func OpenFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*Firebase, error) {
	app, authClient, err := auth.InitializeFirebase(cfg)
	if err != nil {
		return nil, err
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return &Firebase{App: app, Auth: authClient, Firestore: fs}, nil
}

func (f *Firebase) Close() {
	if f.Firestore != nil {
		_ = f.Firestore.Close()
	}
}
