package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/cvmate/backend/models"
)

// CreateArticle inserts a new blog article
func (f *FirestoreClient) CreateArticle(ctx context.Context, article *models.Article) error {
	article.CreatedAt = time.Now()
	article.UpdatedAt = time.Now()

	docRef := f.client.Collection(articlesCollection).Doc(uuid.NewString())
	if _, err := docRef.Set(ctx, article); err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	article.ID = docRef.ID
	return nil
}

// GetArticle retrieves an article by id
func (f *FirestoreClient) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	doc, err := f.client.Collection(articlesCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	var article models.Article
	if err := doc.DataTo(&article); err != nil {
		return nil, fmt.Errorf("failed to parse article data: %w", err)
	}

	article.ID = doc.Ref.ID
	return &article, nil
}

// IncrementArticleViews bumps the view counter atomically server side,
// so concurrent readers never lose counts.
func (f *FirestoreClient) IncrementArticleViews(ctx context.Context, id string) error {
	docRef := f.client.Collection(articlesCollection).Doc(id)
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return fmt.Errorf("failed to increment article views: %w", err)
	}
	return nil
}

// ListArticles returns one page of articles, newest first, optionally
// filtered by category and by case-insensitive substring search over
// title and content (filtered in memory, same approach as job search).
func (f *FirestoreClient) ListArticles(ctx context.Context, q models.ArticleQuery) ([]models.Article, int, error) {
	query := f.client.Collection(articlesCollection).Query
	if q.Category != "" {
		query = query.Where("category", "==", q.Category)
	}

	iter := query.
		OrderBy("createdAt", firestore.Desc).
		Limit(f.maxResults).
		Documents(ctx)
	defer iter.Stop()

	var articles []models.Article
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list articles: %w", err)
		}

		var article models.Article
		if err := doc.DataTo(&article); err != nil {
			return nil, 0, fmt.Errorf("failed to parse article data: %w", err)
		}
		article.ID = doc.Ref.ID

		if q.Search != "" && !articleMatches(&article, q.Search) {
			continue
		}
		articles = append(articles, article)
	}

	total := len(articles)
	return pageSlice(articles, q.Page, q.Limit), total, nil
}

func articleMatches(article *models.Article, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(article.Title), needle) ||
		strings.Contains(strings.ToLower(article.Content), needle)
}

// UpdateArticle merges field updates into an article document
func (f *FirestoreClient) UpdateArticle(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	docRef := f.client.Collection(articlesCollection).Doc(id)
	if _, err := docRef.Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	return nil
}

// DeleteArticle deletes an article by id
func (f *FirestoreClient) DeleteArticle(ctx context.Context, id string) error {
	if _, err := f.client.Collection(articlesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

// CountArticlesByAuthor counts articles of one author
func (f *FirestoreClient) CountArticlesByAuthor(ctx context.Context, authorID string) (int, error) {
	return countDocs(ctx, f.client.Collection(articlesCollection).Where("authorId", "==", authorID))
}
