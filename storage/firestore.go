package storage

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cvmate/backend/config"
)

// Collection names
const (
	usersCollection         = "users"
	resumesCollection       = "resumes"
	interviewsCollection    = "interviews"
	postsCollection         = "posts"
	jobsCollection          = "jobs"
	articlesCollection      = "articles"
	messagesCollection      = "messages"
	notificationsCollection = "notifications"
)

// ErrNotFound is returned when a document id does not resolve.
var ErrNotFound = errors.New("document not found")

// FirestoreClient wraps Firestore operations for all collections
type FirestoreClient struct {
	client     *firestore.Client
	maxResults int
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{client: client, maxResults: cfg.MaxListResults}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// countDocs runs a server-side count aggregation over a query.
func countDocs(ctx context.Context, q firestore.Query) (int, error) {
	results, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	value, ok := results["all"]
	if !ok {
		return 0, errors.New("count aggregation missing from result")
	}
	count, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, errors.New("unexpected count aggregation type")
	}

	return int(count.GetIntegerValue()), nil
}
