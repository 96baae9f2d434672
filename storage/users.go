package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/cvmate/backend/models"
)

// CreateUser creates a new user. The email doubles as the document ID,
// which gives uniqueness for free.
func (f *FirestoreClient) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	docRef := f.client.Collection(usersCollection).Doc(user.Email)

	// Check if user already exists
	_, err := docRef.Get(ctx)
	if err == nil {
		return errors.New("user with this email already exists")
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to check user existence: %w", err)
	}

	if _, err := docRef.Set(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = user.Email
	return nil
}

// GetUserByEmail retrieves a user by email
func (f *FirestoreClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := f.client.Collection(usersCollection).Doc(email).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}

	user.ID = doc.Ref.ID
	return &user, nil
}

// UpdateUser merges field updates into a user document
func (f *FirestoreClient) UpdateUser(ctx context.Context, email string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	docRef := f.client.Collection(usersCollection).Doc(email)
	if _, err := docRef.Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// GetUsersByIDs fetches display records for a set of user ids. Missing
// ids are skipped rather than erroring; conversations tolerate deleted
// accounts.
func (f *FirestoreClient) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := f.GetUserByEmail(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}
