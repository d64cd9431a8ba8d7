package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and the client that verifies ID tokens.
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

type Options struct {
	CredentialsPath string
	// ProjectID overrides the project from the credentials file.
	ProjectID string
}

// Init returns (nil, nil) when no credentials are configured; Firebase
// token auth is then disabled.
func Init(ctx context.Context, opts Options) (*App, error) {
	if opts.CredentialsPath == "" {
		return nil, nil
	}
	if _, err := os.Stat(opts.CredentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials %s: %w", opts.CredentialsPath, err)
	}

	var conf *firebase.Config
	if opts.ProjectID != "" {
		conf = &firebase.Config{ProjectID: opts.ProjectID}
	}

	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(opts.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}
	return &App{FirebaseApp: app, AuthClient: client}, nil
}
