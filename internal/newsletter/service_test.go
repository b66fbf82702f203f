package newsletter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscriber), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func TestService_Subscribe(t *testing.T) {
	t.Run("SubscribesAndSendsWelcome", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := NewService(repo, mail)

		repo.On("Subscribe", mock.Anything, "ada@example.com").
			Return(&Subscriber{ID: "s1", Email: "ada@example.com"}, nil)
		mail.On("Send", mock.Anything, "ada@example.com", mock.Anything, mock.Anything).Return(nil)

		err := svc.Subscribe(context.Background(), "ada@example.com")
		require.NoError(t, err)
		mail.AssertExpectations(t)
	})

	t.Run("NormalizesEmail", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := NewService(repo, mail)

		repo.On("Subscribe", mock.Anything, "ada@example.com").
			Return(&Subscriber{ID: "s1", Email: "ada@example.com"}, nil)
		mail.On("Send", mock.Anything, "ada@example.com", mock.Anything, mock.Anything).Return(nil)

		err := svc.Subscribe(context.Background(), "  Ada@Example.com ")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := NewService(repo, mail)

		repo.On("Subscribe", mock.Anything, "ada@example.com").Return(nil, ErrAlreadySubscribed)

		err := svc.Subscribe(context.Background(), "ada@example.com")
		assert.ErrorIs(t, err, ErrAlreadySubscribed)
		mail.AssertNotCalled(t, "Send")
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(mockMailer))

		assert.ErrorIs(t, svc.Subscribe(context.Background(), ""), ErrInvalidEmail)
		assert.ErrorIs(t, svc.Subscribe(context.Background(), "not-an-email"), ErrInvalidEmail)
	})

	t.Run("MailFailureDoesNotFailSubscription", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := NewService(repo, mail)

		repo.On("Subscribe", mock.Anything, "ada@example.com").
			Return(&Subscriber{ID: "s1", Email: "ada@example.com"}, nil)
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp down"))

		err := svc.Subscribe(context.Background(), "ada@example.com")
		assert.NoError(t, err)
	})
}
