package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/cvmate/backend/models"
)

// CreateMessage inserts a new direct message
func (f *FirestoreClient) CreateMessage(ctx context.Context, message *models.Message) error {
	message.CreatedAt = time.Now()

	docRef := f.client.Collection(messagesCollection).Doc(uuid.NewString())
	if _, err := docRef.Set(ctx, message); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	message.ID = docRef.ID
	return nil
}

// ListThread returns the two-way message thread between two users in
// ascending time order. Firestore queries cannot OR across fields
// cheaply, so both directions are fetched and merged.
func (f *FirestoreClient) ListThread(ctx context.Context, userA, userB string) ([]models.Message, error) {
	sent, err := f.listDirection(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	received, err := f.listDirection(ctx, userB, userA)
	if err != nil {
		return nil, err
	}

	thread := append(sent, received...)
	sort.Slice(thread, func(i, j int) bool {
		return thread[i].CreatedAt.Before(thread[j].CreatedAt)
	})

	return thread, nil
}

func (f *FirestoreClient) listDirection(ctx context.Context, sender, receiver string) ([]models.Message, error) {
	iter := f.client.Collection(messagesCollection).
		Where("senderId", "==", sender).
		Where("receiverId", "==", receiver).
		Documents(ctx)
	defer iter.Stop()

	messages := []models.Message{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		var message models.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, fmt.Errorf("failed to parse message data: %w", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, message)
	}

	return messages, nil
}

// ListConversationPeers returns the distinct set of user ids the given
// user has exchanged messages with.
func (f *FirestoreClient) ListConversationPeers(ctx context.Context, userID string) ([]string, error) {
	peers := map[string]bool{}

	if err := f.collectPeers(ctx, "senderId", userID, "receiverId", peers); err != nil {
		return nil, err
	}
	if err := f.collectPeers(ctx, "receiverId", userID, "senderId", peers); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(peers))
	for id := range peers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *FirestoreClient) collectPeers(ctx context.Context, whereField, userID, peerField string, peers map[string]bool) error {
	iter := f.client.Collection(messagesCollection).
		Where(whereField, "==", userID).
		Select(peerField).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list conversation peers: %w", err)
		}

		if peer, err := doc.DataAt(peerField); err == nil {
			if id, ok := peer.(string); ok && id != "" {
				peers[id] = true
			}
		}
	}
}

// MarkThreadRead marks all messages from peer to user as read.
func (f *FirestoreClient) MarkThreadRead(ctx context.Context, userID, peerID string) error {
	iter := f.client.Collection(messagesCollection).
		Where("senderId", "==", peerID).
		Where("receiverId", "==", userID).
		Where("read", "==", false).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to mark thread read: %w", err)
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{{Path: "read", Value: true}}); err != nil {
			return fmt.Errorf("failed to mark message read: %w", err)
		}
	}
}
