package notify

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/monngon/backend/internal/models"
	"go.uber.org/zap"
)

const (
	// cooldown suppresses a merge when it would re-render an identical
	// message within this window after the row's last update.
	cooldown = 50 * time.Second

	// pushTimeout bounds a single FCM delivery attempt.
	pushTimeout = 5 * time.Second

	// PushTokenUnset is the sentinel stored for users with no registered device.
	PushTokenUnset = "unset"

	// PlaceholderImageURL is stored when the actor has no avatar.
	PlaceholderImageURL = "https://cdn.monngon.app/images/avatar-placeholder.png"
)

// Event is a single qualifying action (follow, like, comment, comment like)
// to be resolved into zero or one notification mutation.
type Event struct {
	RecipientID    uint
	Kind           Kind
	RelatedID      string // recipe ID or comment ID; ignored for NEW_FOLLOWER
	ActorID        uint
	ActorName      string
	ActorAvatarURL string
	OthersCount    string // pre-computed "N others" figure, caller-supplied
	Title          string // recipe title or comment snippet
}

// UserFinder resolves notification recipients. Implementations return
// (nil, nil) when the user does not exist.
type UserFinder interface {
	FindUserByID(id uint) (*models.User, error)
}

// NotificationStore is the persistence collaborator for notification rows.
// FindByKey returns (nil, nil) when no row matches the dedup key.
type NotificationStore interface {
	FindByKey(recipientID uint, kind, relatedID string) (*models.Notification, error)
	CreateNotification(notification *models.Notification) error
	SaveNotification(notification *models.Notification) error
}

// PushSender delivers a push notification to a single device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// Aggregator decides, per incoming event, whether to create a notification
// row, merge into the existing unread row for the same dedup key, or
// suppress the event entirely, and forwards eligible notifications to the
// push sender.
type Aggregator struct {
	users         UserFinder
	notifications NotificationStore
	push          PushSender
	logger        *zap.Logger

	keys *keyMutex
	now  func() time.Time
}

// NewAggregator creates an Aggregator. push may be nil when FCM is not
// configured; delivery is then skipped.
func NewAggregator(users UserFinder, notifications NotificationStore, push PushSender, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		users:         users,
		notifications: notifications,
		push:          push,
		logger:        logger,
		keys:          newKeyMutex(),
		now:           time.Now,
	}
}

// RecordEvent resolves an event into at most one persisted write and at most
// one push call.
//
// Unknown kinds and missing recipients complete as silent no-ops. Store
// failures are returned to the caller. Push failures are logged and
// swallowed: delivery is a secondary effect of the triggering action and
// must never fail it.
func (a *Aggregator) RecordEvent(ctx context.Context, ev Event) error {
	if !ev.Kind.known() {
		return nil
	}

	// A follow's related entity is the follower themselves.
	if ev.Kind == KindNewFollower {
		ev.RelatedID = strconv.FormatUint(uint64(ev.ActorID), 10)
	}

	lookupRelated := ""
	if ev.Kind.aggregatesByRelated() {
		lookupRelated = ev.RelatedID
	}

	key := fmt.Sprintf("%d|%s|%s", ev.RecipientID, ev.Kind, lookupRelated)
	unlock := a.keys.Lock(key)
	defer unlock()

	recipient, err := a.users.FindUserByID(ev.RecipientID)
	if err != nil {
		return err
	}
	if recipient == nil {
		// User deleted between event creation and processing.
		return nil
	}

	message := ev.Kind.message(ev.ActorName, ev.OthersCount, ev.Title)
	imageURL := ev.ActorAvatarURL
	if imageURL == "" {
		imageURL = PlaceholderImageURL
	}
	now := a.now()

	existing, err := a.notifications.FindByKey(ev.RecipientID, string(ev.Kind), lookupRelated)
	if err != nil {
		return err
	}

	if existing == nil {
		row := &models.Notification{
			RecipientID: ev.RecipientID,
			Type:        string(ev.Kind),
			ActorID:     ev.ActorID,
			RelatedID:   ev.RelatedID,
			Message:     message,
			ImageURL:    imageURL,
			IsRead:      false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := a.notifications.CreateNotification(row); err != nil {
			return err
		}
	} else {
		if existing.Message == message && now.Sub(existing.UpdatedAt) < cooldown {
			// Identical re-render inside the cooldown window: suppress
			// entirely, including the push.
			return nil
		}
		existing.ActorID = ev.ActorID
		existing.RelatedID = ev.RelatedID
		existing.Message = message
		existing.ImageURL = imageURL
		existing.IsRead = false
		existing.UpdatedAt = now
		if err := a.notifications.SaveNotification(existing); err != nil {
			return err
		}
	}

	a.sendPush(ctx, recipient, ev)
	return nil
}

// sendPush delivers the event to the recipient's device, best-effort
func (a *Aggregator) sendPush(ctx context.Context, recipient *models.User, ev Event) {
	if a.push == nil {
		return
	}
	token := recipient.PushToken
	if token == "" || token == PushTokenUnset {
		return
	}

	data := map[string]string{
		"type":       string(ev.Kind),
		"related_id": ev.RelatedID,
		"actor_id":   strconv.FormatUint(uint64(ev.ActorID), 10),
		"actor_name": ev.ActorName,
	}

	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	if err := a.push.Send(ctx, token, ev.Kind.title(), ev.Kind.body(ev.ActorName, ev.Title), data); err != nil {
		a.logger.Warn("push delivery failed",
			zap.Uint("recipient_id", recipient.ID),
			zap.String("type", string(ev.Kind)),
			zap.Error(err),
		)
	}
}
