package notification

import (
	"context"
	"errors"
	"testing"

	"carrental/mocks"
	"carrental/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEnqueuer struct {
	ids []string
	err error
}

func (f *fakeEnqueuer) EnqueueDispatch(ctx context.Context, id string) error {
	f.ids = append(f.ids, id)
	return f.err
}

func TestCreateDirectEnqueues(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	q := &fakeEnqueuer{}
	svc := NewDefaultNotificationService(repo, q, TriggerDirect, zap.NewNop())
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)

	n := &models.Notification{UserID: "u1", Title: "t", Message: "m"}
	require.NoError(t, svc.Create(context.Background(), n))
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, []string{n.ID}, q.ids)
}

func TestCreateEnqueueFailureIsLogged(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	q := &fakeEnqueuer{err: errors.New("redis down")}
	svc := NewDefaultNotificationService(repo, q, TriggerDirect, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, svc.Create(context.Background(), &models.Notification{Title: "t", Message: "m"}))
}

func TestCreateChangeStreamDoesNotEnqueue(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	q := &fakeEnqueuer{}
	svc := NewDefaultNotificationService(repo, q, TriggerChangeStream, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.Create(context.Background(), &models.Notification{Title: "t", Message: "m"}))
	assert.Empty(t, q.ids)
}

func TestWatchEnqueuesInserts(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	q := &fakeEnqueuer{}
	svc := NewDefaultNotificationService(repo, q, TriggerChangeStream, zap.NewNop())
	repo.On("WatchInserts", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		onInsert := args.Get(1).(func(id string))
		onInsert("n1")
		onInsert("n2")
	}).Return(nil)

	require.NoError(t, svc.Watch(context.Background()))
	assert.Equal(t, []string{"n1", "n2"}, q.ids)
}

func TestWatchNoopInDirectMode(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewDefaultNotificationService(repo, &fakeEnqueuer{}, "", zap.NewNop())
	require.NoError(t, svc.Watch(context.Background()))
	repo.AssertNotCalled(t, "WatchInserts", mock.Anything, mock.Anything)
}

func TestSend(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewDefaultNotificationService(repo, &fakeEnqueuer{}, TriggerDirect, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	n, err := svc.Send(context.Background(), models.Actor{ID: "m1", Role: models.RoleManager},
		models.NotificationRequest{Email: " a@example.com ", Title: "Promo", Message: "20% off"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", n.Email)
	assert.Equal(t, "manual", n.Type)

	_, err = svc.Send(context.Background(), models.Actor{ID: "r1", Role: models.RoleRenter},
		models.NotificationRequest{Email: "a@example.com", Title: "t", Message: "m"})
	assert.Error(t, err)

	_, err = svc.Send(context.Background(), models.Actor{ID: "m1", Role: models.RoleManager},
		models.NotificationRequest{Title: "t", Message: "m"})
	assert.Error(t, err)
}
