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

// CreatePost inserts a new feed post
func (f *FirestoreClient) CreatePost(ctx context.Context, post *models.Post) error {
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	docRef := f.client.Collection(postsCollection).Doc(uuid.NewString())
	if _, err := docRef.Set(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	post.ID = docRef.ID
	return nil
}

// GetPost retrieves a post by id
func (f *FirestoreClient) GetPost(ctx context.Context, id string) (*models.Post, error) {
	doc, err := f.client.Collection(postsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	var post models.Post
	if err := doc.DataTo(&post); err != nil {
		return nil, fmt.Errorf("failed to parse post data: %w", err)
	}

	post.ID = doc.Ref.ID
	return &post, nil
}

// ListPosts returns one page of the feed, newest first, with the total
// post count for pagination.
func (f *FirestoreClient) ListPosts(ctx context.Context, page, limit int) ([]models.Post, int, error) {
	base := f.client.Collection(postsCollection).Query

	total, err := countDocs(ctx, base)
	if err != nil {
		return nil, 0, err
	}

	iter := base.
		OrderBy("createdAt", firestore.Desc).
		Offset((page - 1) * limit).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	posts := []models.Post{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list posts: %w", err)
		}

		var post models.Post
		if err := doc.DataTo(&post); err != nil {
			return nil, 0, fmt.Errorf("failed to parse post data: %w", err)
		}
		post.ID = doc.Ref.ID
		posts = append(posts, post)
	}

	return posts, total, nil
}

// UpdatePost merges field updates into a post document
func (f *FirestoreClient) UpdatePost(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	docRef := f.client.Collection(postsCollection).Doc(id)
	if _, err := docRef.Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// DeletePost deletes a post by id
func (f *FirestoreClient) DeletePost(ctx context.Context, id string) error {
	if _, err := f.client.Collection(postsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// CountPostsByOwner counts posts of one owner
func (f *FirestoreClient) CountPostsByOwner(ctx context.Context, ownerID string) (int, error) {
	return countDocs(ctx, f.client.Collection(postsCollection).Where("ownerId", "==", ownerID))
}
