package storage

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/cvmate/backend/models"
)

// CreateJob inserts a new job posting
func (f *FirestoreClient) CreateJob(ctx context.Context, job *models.Job) error {
	if job.Applicants == nil {
		job.Applicants = []string{}
	}

	docRef := f.client.Collection(jobsCollection).Doc(uuid.NewString())
	if _, err := docRef.Set(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	job.ID = docRef.ID
	return nil
}

// GetJob retrieves a job by id
func (f *FirestoreClient) GetJob(ctx context.Context, id string) (*models.Job, error) {
	doc, err := f.client.Collection(jobsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job models.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job data: %w", err)
	}

	job.ID = doc.Ref.ID
	return &job, nil
}

// ListJobs returns one page of job postings, newest first. Free-text
// search is a case-insensitive substring match over title, company and
// location; Firestore has no server-side substring operator, so the
// (capped) candidate set is filtered in memory before paging.
func (f *FirestoreClient) ListJobs(ctx context.Context, q models.JobQuery) ([]models.Job, int, error) {
	query := f.client.Collection(jobsCollection).Query
	if q.Type != "" {
		query = query.Where("type", "==", q.Type)
	}

	iter := query.
		OrderBy("postedAt", firestore.Desc).
		Limit(f.maxResults).
		Documents(ctx)
	defer iter.Stop()

	var jobs []models.Job
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
		}

		var job models.Job
		if err := doc.DataTo(&job); err != nil {
			return nil, 0, fmt.Errorf("failed to parse job data: %w", err)
		}
		job.ID = doc.Ref.ID

		if q.Search != "" && !jobMatches(&job, q.Search) {
			continue
		}
		jobs = append(jobs, job)
	}

	total := len(jobs)
	return pageSlice(jobs, q.Page, q.Limit), total, nil
}

func jobMatches(job *models.Job, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{job.Title, job.Company, job.Location} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// UpdateJob merges field updates into a job document
func (f *FirestoreClient) UpdateJob(ctx context.Context, id string, updates map[string]interface{}) error {
	docRef := f.client.Collection(jobsCollection).Doc(id)
	if _, err := docRef.Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// DeleteJob deletes a job by id
func (f *FirestoreClient) DeleteJob(ctx context.Context, id string) error {
	if _, err := f.client.Collection(jobsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// pageSlice cuts one page out of an in-memory result set.
func pageSlice[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
