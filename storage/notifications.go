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

// CreateNotification inserts a new notification
func (f *FirestoreClient) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.CreatedAt = time.Now()

	docRef := f.client.Collection(notificationsCollection).Doc(uuid.NewString())
	if _, err := docRef.Set(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	notification.ID = docRef.ID
	return nil
}

// ListNotificationsByRecipient returns a user's notifications, newest first
func (f *FirestoreClient) ListNotificationsByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	iter := f.client.Collection(notificationsCollection).
		Where("recipientId", "==", recipientID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	notifications := []models.Notification{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list notifications: %w", err)
		}

		var notification models.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, fmt.Errorf("failed to parse notification data: %w", err)
		}
		notification.ID = doc.Ref.ID
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// GetNotification retrieves a notification by id
func (f *FirestoreClient) GetNotification(ctx context.Context, id string) (*models.Notification, error) {
	doc, err := f.client.Collection(notificationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	var notification models.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, fmt.Errorf("failed to parse notification data: %w", err)
	}

	notification.ID = doc.Ref.ID
	return &notification, nil
}

// MarkNotificationRead flips a notification's read flag
func (f *FirestoreClient) MarkNotificationRead(ctx context.Context, id string) error {
	docRef := f.client.Collection(notificationsCollection).Doc(id)
	_, err := docRef.Update(ctx, []firestore.Update{{Path: "read", Value: true}})
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
