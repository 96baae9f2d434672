package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/cvmate/backend/models"
)

// CreateResume inserts a new resume owned by its OwnerID
func (f *FirestoreClient) CreateResume(ctx context.Context, resume *models.Resume) error {
	resume.CreatedAt = time.Now()
	resume.UpdatedAt = time.Now()

	docRef := f.client.Collection(resumesCollection).Doc(uuid.NewString())
	if _, err := docRef.Set(ctx, resume); err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	resume.ID = docRef.ID
	return nil
}

// GetResume retrieves a resume by id
func (f *FirestoreClient) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	doc, err := f.client.Collection(resumesCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	var resume models.Resume
	if err := doc.DataTo(&resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume data: %w", err)
	}

	resume.ID = doc.Ref.ID
	return &resume, nil
}

// ListResumesByOwner returns all resumes of one owner, most recently
// updated first.
func (f *FirestoreClient) ListResumesByOwner(ctx context.Context, ownerID string) ([]models.Resume, error) {
	iter := f.client.Collection(resumesCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var resumes []models.Resume
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list resumes: %w", err)
		}

		var resume models.Resume
		if err := doc.DataTo(&resume); err != nil {
			return nil, fmt.Errorf("failed to parse resume data: %w", err)
		}
		resume.ID = doc.Ref.ID
		resumes = append(resumes, resume)
	}

	return resumes, nil
}

// UpdateResume merges field updates into a resume document
func (f *FirestoreClient) UpdateResume(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	docRef := f.client.Collection(resumesCollection).Doc(id)
	if _, err := docRef.Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}

	return nil
}

// DeleteResume deletes a resume by id
func (f *FirestoreClient) DeleteResume(ctx context.Context, id string) error {
	if _, err := f.client.Collection(resumesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// CountResumesByOwner counts resumes of one owner
func (f *FirestoreClient) CountResumesByOwner(ctx context.Context, ownerID string) (int, error) {
	return countDocs(ctx, f.client.Collection(resumesCollection).Where("ownerId", "==", ownerID))
}
