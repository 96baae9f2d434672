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

// CreateInterview inserts a new interview session
func (f *FirestoreClient) CreateInterview(ctx context.Context, interview *models.Interview) error {
	interview.CreatedAt = time.Now()
	interview.UpdatedAt = time.Now()

	docRef := f.client.Collection(interviewsCollection).Doc(uuid.NewString())
	if _, err := docRef.Set(ctx, interview); err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	interview.ID = docRef.ID
	return nil
}

// GetInterview retrieves an interview by id
func (f *FirestoreClient) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	doc, err := f.client.Collection(interviewsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	var interview models.Interview
	if err := doc.DataTo(&interview); err != nil {
		return nil, fmt.Errorf("failed to parse interview data: %w", err)
	}

	interview.ID = doc.Ref.ID
	return &interview, nil
}

// SaveInterview writes back the full interview document. Interviews are
// mutated read-modify-write within a single request; the chat history is
// append-only so the whole document is rewritten rather than patched.
func (f *FirestoreClient) SaveInterview(ctx context.Context, interview *models.Interview) error {
	interview.UpdatedAt = time.Now()

	docRef := f.client.Collection(interviewsCollection).Doc(interview.ID)
	if _, err := docRef.Set(ctx, interview); err != nil {
		return fmt.Errorf("failed to save interview: %w", err)
	}

	return nil
}

// ListInterviewsByOwner returns all interviews of one owner, newest first
func (f *FirestoreClient) ListInterviewsByOwner(ctx context.Context, ownerID string) ([]models.Interview, error) {
	iter := f.client.Collection(interviewsCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var interviews []models.Interview
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list interviews: %w", err)
		}

		var interview models.Interview
		if err := doc.DataTo(&interview); err != nil {
			return nil, fmt.Errorf("failed to parse interview data: %w", err)
		}
		interview.ID = doc.Ref.ID
		interviews = append(interviews, interview)
	}

	return interviews, nil
}

// CountInterviewsByOwner counts interviews of one owner
func (f *FirestoreClient) CountInterviewsByOwner(ctx context.Context, ownerID string) (int, error) {
	return countDocs(ctx, f.client.Collection(interviewsCollection).Where("ownerId", "==", ownerID))
}
