package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories"
)

// IDTokenVerifier is the part of the Firebase auth client used here.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

var _ IDTokenVerifier = (*auth.Client)(nil)

// resolveFirebase verifies a Firebase ID token and maps its UID to a student.
func resolveFirebase(ctx context.Context, verifier IDTokenVerifier, students repositories.StudentRepository, idToken string) (*models.Student, *auth.Token, error) {
	token, err := verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, nil, err
	}

	student, err := students.GetStudentByFirebaseUID(ctx, token.UID)
	if err != nil {
		return nil, nil, err
	}
	return student, token, nil
}
