package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/monngon/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	users map[uint]*models.User
	err   error
}

func (f *fakeUsers) FindUserByID(id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

type fakeStore struct {
	mu      sync.Mutex
	rows    []*models.Notification
	nextID  uint
	findErr error
	saveErr error
}

func (f *fakeStore) FindByKey(recipientID uint, kind, relatedID string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, row := range f.rows {
		if row.RecipientID != recipientID || row.Type != kind {
			continue
		}
		if relatedID != "" && row.RelatedID != relatedID {
			continue
		}
		clone := *row
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateNotification(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.nextID++
	n.ID = f.nextID
	clone := *n
	f.rows = append(f.rows, &clone)
	return nil
}

func (f *fakeStore) SaveNotification(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	for i, row := range f.rows {
		if row.ID == n.ID {
			clone := *n
			f.rows[i] = &clone
			return nil
		}
	}
	return errors.New("row not found")
}

func (f *fakeStore) all() []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Notification, len(f.rows))
	for i, row := range f.rows {
		clone := *row
		out[i] = &clone
	}
	return out
}

type sentPush struct {
	token string
	title string
	body  string
	data  map[string]string
}

type fakePush struct {
	mu   sync.Mutex
	sent []sentPush
	err  error
}

func (f *fakePush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentPush{token: token, title: title, body: body, data: data})
	return nil
}

func (f *fakePush) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestAggregator(users *fakeUsers, store *fakeStore, push PushSender) *Aggregator {
	return NewAggregator(users, store, push, zap.NewNop())
}

func likeEvent() Event {
	return Event{
		RecipientID:    42,
		Kind:           KindNewPostLike,
		RelatedID:      "7",
		ActorID:        9,
		ActorName:      "Lan",
		ActorAvatarURL: "https://cdn.monngon.app/avatars/lan.jpg",
		OthersCount:    "2",
		Title:          "Phở bò",
	}
}

func recipientWithToken(token string) *fakeUsers {
	return &fakeUsers{users: map[uint]*models.User{
		42: {ID: 42, Name: "Minh", Email: "minh@example.com", PushToken: token},
	}}
}

func TestRecordEventCreatesRow(t *testing.T) {
	users := recipientWithToken("device-token")
	store := &fakeStore{}
	push := &fakePush{}
	agg := newTestAggregator(users, store, push)

	err := agg.RecordEvent(context.Background(), likeEvent())
	require.NoError(t, err)

	rows := store.all()
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, uint(42), row.RecipientID)
	assert.Equal(t, "NEW_POST_LIKE", row.Type)
	assert.Equal(t, uint(9), row.ActorID)
	assert.Equal(t, "7", row.RelatedID)
	assert.Equal(t, "Lan và 2 người khác đã thích bài viết của bạn: Phở bò", row.Message)
	assert.Equal(t, "https://cdn.monngon.app/avatars/lan.jpg", row.ImageURL)
	assert.False(t, row.IsRead)
	assert.Equal(t, row.CreatedAt, row.UpdatedAt)

	require.Equal(t, 1, push.count())
	sent := push.sent[0]
	assert.Equal(t, "device-token", sent.token)
	assert.Equal(t, "Lượt thích mới", sent.title)
	assert.Equal(t, "Lan vừa thích bài viết của bạn: Phở bò", sent.body)
	assert.Equal(t, map[string]string{
		"type":       "NEW_POST_LIKE",
		"related_id": "7",
		"actor_id":   "9",
		"actor_name": "Lan",
	}, sent.data)
}

func TestRecordEventMergesIntoExistingRow(t *testing.T) {
	users := recipientWithToken("device-token")
	store := &fakeStore{}
	push := &fakePush{}
	agg := newTestAggregator(users, store, push)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return base }
	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	// Same recipe, different actor, after the cooldown window
	agg.now = func() time.Time { return base.Add(2 * time.Minute) }
	ev := likeEvent()
	ev.ActorID = 11
	ev.ActorName = "Huy"
	ev.ActorAvatarURL = "https://cdn.monngon.app/avatars/huy.jpg"
	ev.OthersCount = "3"
	require.NoError(t, agg.RecordEvent(context.Background(), ev))

	rows := store.all()
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, uint(11), row.ActorID)
	assert.Equal(t, "Huy và 3 người khác đã thích bài viết của bạn: Phở bò", row.Message)
	assert.Equal(t, "https://cdn.monngon.app/avatars/huy.jpg", row.ImageURL)
	assert.Equal(t, base, row.CreatedAt)
	assert.Equal(t, base.Add(2*time.Minute), row.UpdatedAt)
	assert.Equal(t, 2, push.count())
}

func TestRecordEventMergeResetsRead(t *testing.T) {
	users := recipientWithToken(PushTokenUnset)
	store := &fakeStore{}
	agg := newTestAggregator(users, store, nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return base }
	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	// Recipient read the notification
	store.mu.Lock()
	store.rows[0].IsRead = true
	store.mu.Unlock()

	agg.now = func() time.Time { return base.Add(time.Minute) }
	ev := likeEvent()
	ev.ActorName = "Huy"
	require.NoError(t, agg.RecordEvent(context.Background(), ev))

	rows := store.all()
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsRead)
}

func TestRecordEventCooldownSuppressesIdenticalMessage(t *testing.T) {
	users := recipientWithToken("device-token")
	store := &fakeStore{}
	push := &fakePush{}
	agg := newTestAggregator(users, store, push)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return base }
	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	// Identical event 10 seconds later: no write, no push
	agg.now = func() time.Time { return base.Add(10 * time.Second) }
	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	rows := store.all()
	require.Len(t, rows, 1)
	assert.Equal(t, base, rows[0].UpdatedAt)
	assert.Equal(t, 1, push.count())
}

func TestRecordEventCooldownExpires(t *testing.T) {
	users := recipientWithToken("device-token")
	store := &fakeStore{}
	push := &fakePush{}
	agg := newTestAggregator(users, store, push)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return base }
	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	// Identical event exactly at the window edge goes through again
	agg.now = func() time.Time { return base.Add(50 * time.Second) }
	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	rows := store.all()
	require.Len(t, rows, 1)
	assert.Equal(t, base.Add(50*time.Second), rows[0].UpdatedAt)
	assert.Equal(t, 2, push.count())
}

func TestRecordEventCooldownIgnoredWhenMessageChanges(t *testing.T) {
	users := recipientWithToken("device-token")
	store := &fakeStore{}
	push := &fakePush{}
	agg := newTestAggregator(users, store, push)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return base }
	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	// Different rendered message inside the window still merges
	agg.now = func() time.Time { return base.Add(5 * time.Second) }
	ev := likeEvent()
	ev.OthersCount = "3"
	require.NoError(t, agg.RecordEvent(context.Background(), ev))

	rows := store.all()
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Message, "và 3 người khác")
	assert.Equal(t, 2, push.count())
}

func TestRecordEventFollowerAggregatesWithoutRelated(t *testing.T) {
	users := recipientWithToken(PushTokenUnset)
	store := &fakeStore{}
	agg := newTestAggregator(users, store, nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return base }

	first := Event{RecipientID: 42, Kind: KindNewFollower, ActorID: 5, ActorName: "An"}
	require.NoError(t, agg.RecordEvent(context.Background(), first))

	agg.now = func() time.Time { return base.Add(time.Minute) }
	second := Event{RecipientID: 42, Kind: KindNewFollower, ActorID: 6, ActorName: "Bình"}
	require.NoError(t, agg.RecordEvent(context.Background(), second))

	// Different followers collapse into the one NEW_FOLLOWER row; the
	// related ID tracks the most recent follower.
	rows := store.all()
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "NEW_FOLLOWER", row.Type)
	assert.Equal(t, uint(6), row.ActorID)
	assert.Equal(t, "6", row.RelatedID)
	assert.Equal(t, "Bình vừa đã theo dõi bạn.", row.Message)
}

func TestRecordEventSeparateRowsPerRecipe(t *testing.T) {
	users := recipientWithToken(PushTokenUnset)
	store := &fakeStore{}
	agg := newTestAggregator(users, store, nil)

	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	ev := likeEvent()
	ev.RelatedID = "8"
	ev.Title = "Bún chả"
	require.NoError(t, agg.RecordEvent(context.Background(), ev))

	assert.Len(t, store.all(), 2)
}

func TestRecordEventUnknownKindIsNoop(t *testing.T) {
	users := recipientWithToken("device-token")
	store := &fakeStore{}
	push := &fakePush{}
	agg := newTestAggregator(users, store, push)

	ev := likeEvent()
	ev.Kind = Kind("NEW_BADGE")
	require.NoError(t, agg.RecordEvent(context.Background(), ev))

	assert.Empty(t, store.all())
	assert.Equal(t, 0, push.count())
}

func TestRecordEventMissingRecipientIsNoop(t *testing.T) {
	users := &fakeUsers{users: map[uint]*models.User{}}
	store := &fakeStore{}
	push := &fakePush{}
	agg := newTestAggregator(users, store, push)

	require.NoError(t, agg.RecordEvent(context.Background(), likeEvent()))

	assert.Empty(t, store.all())
	assert.Equal(t, 0, push.count())
}

func TestRecordEventPlaceholderImage(t *testing.T) {
	users := recipientWithToken(PushTokenUnset)
	store := &fakeStore{}
	agg := newTestAggregator(users, store, nil)

	ev := likeEvent()
	ev.ActorAvatarURL = ""
	require.NoError(t, agg.RecordEvent(context.Background(), ev))

	rows := store.all()
	require.Len(t, rows, 1)
	assert.Equal(t, PlaceholderImageURL, rows[0].ImageURL)
}

func TestRecordEventSkipsPushForUnsetToken(t *testing.T) {
	store := &fakeStore{}
	push := &fakePush{}

	for _, token := range []string{"", PushTokenUnset} {
		agg := newTestAggregator(recipientWithToken(token), store, push)
		ev := likeEvent()
		ev.RelatedID = fmt.Sprintf("token-%q", token)
		require.NoError(t, agg.RecordEvent(context.Background(), ev))
	}

	assert.Len(t, store.all(), 2)
	assert.Equal(t, 0, push.count())
}

func TestRecordEventPushFailureIsSwallowed(t *testing.T) {
	users := recipientWithToken("device-token")
	store := &fakeStore{}
	push := &fakePush{err: errors.New("fcm unavailable")}
	agg := newTestAggregator(users, store, push)

	err := agg.RecordEvent(context.Background(), likeEvent())
	require.NoError(t, err)
	assert.Len(t, store.all(), 1)
}

func TestRecordEventStoreErrorsPropagate(t *testing.T) {
	users := recipientWithToken("device-token")
	push := &fakePush{}

	findErr := errors.New("connection reset")
	agg := newTestAggregator(users, &fakeStore{findErr: findErr}, push)
	assert.ErrorIs(t, agg.RecordEvent(context.Background(), likeEvent()), findErr)

	saveErr := errors.New("constraint violation")
	agg = newTestAggregator(users, &fakeStore{saveErr: saveErr}, push)
	assert.ErrorIs(t, agg.RecordEvent(context.Background(), likeEvent()), saveErr)

	assert.Equal(t, 0, push.count())
}

func TestRecordEventUserLookupErrorPropagates(t *testing.T) {
	lookupErr := errors.New("db down")
	agg := newTestAggregator(&fakeUsers{err: lookupErr}, &fakeStore{}, nil)

	assert.ErrorIs(t, agg.RecordEvent(context.Background(), likeEvent()), lookupErr)
}

func TestRecordEventConcurrentSameKeySingleRow(t *testing.T) {
	users := recipientWithToken(PushTokenUnset)
	store := &fakeStore{}
	agg := newTestAggregator(users, store, nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	tick := 0
	agg.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev := likeEvent()
			ev.ActorID = uint(100 + i)
			ev.ActorName = fmt.Sprintf("user-%d", i)
			assert.NoError(t, agg.RecordEvent(context.Background(), ev))
		}(i)
	}
	wg.Wait()

	// Per-key serialization: concurrent events for one dedup key must
	// never fan out into duplicate rows.
	assert.Len(t, store.all(), 1)
}
