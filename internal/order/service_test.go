package order

import (
	"context"
	"errors"
	"testing"

	"emeraldscents-be/internal/address"
	"emeraldscents-be/internal/payment"
	"emeraldscents-be/internal/pricing"
	"emeraldscents-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByPaymentRef(ctx context.Context, ref string) (*Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByNumberAndEmail(ctx context.Context, orderNumber, email string) (*Order, error) {
	args := m.Called(ctx, orderNumber, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, page int) ([]*Order, error) {
	args := m.Called(ctx, filter, sort, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) MarkPaidTx(ctx context.Context, o *Order, allowBackorder bool) (bool, error) {
	args := m.Called(ctx, o, allowBackorder)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID string, status Status, trackingNo *string) error {
	args := m.Called(ctx, orderID, status, trackingNo)
	return args.Error(0)
}

type MockAddressRepo struct {
	mock.Mock
}

func (m *MockAddressRepo) Create(ctx context.Context, userID string, input address.AddressInput) (*address.Address, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressRepo) ListByUser(ctx context.Context, userID string) ([]*address.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*address.Address), args.Error(1)
}

func (m *MockAddressRepo) GetByID(ctx context.Context, id string) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) InitializeTransaction(ctx context.Context, reference, email string, amount int64) (*payment.Authorization, error) {
	args := m.Called(ctx, reference, email, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Authorization), args.Error(1)
}

func (m *mockGateway) VerifySignature(body []byte, signature string) error {
	args := m.Called(body, signature)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

type stubRates struct{}

func (stubRates) FeeFor(_ context.Context, _ string) int64 { return 1500 }

func authedCtx() context.Context {
	return utils.SetUserContext(context.Background(), "user-1", "test@example.com", "USER")
}

func newTestService(repo *MockRepository, addrRepo *MockAddressRepo, gw *mockGateway, mail *mockMailer) Service {
	calc := pricing.NewCalculator(stubRates{}, 50000)
	return NewService(repo, addrRepo, calc, gw, mail, false)
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		Items:         []ItemInput{{ProductID: "p1", Quantity: 2, Price: 1000}},
		AddressID:     "addr-1",
		PaymentMethod: "PAYSTACK",
	}
}

func TestService_Create(t *testing.T) {
	addr := &address.Address{ID: "addr-1", UserID: "user-1", Region: "Lagos"}

	t.Run("PaystackHappyPath", func(t *testing.T) {
		repo := new(MockRepository)
		addrRepo := new(MockAddressRepo)
		gw := new(mockGateway)
		mail := new(mockMailer)
		svc := newTestService(repo, addrRepo, gw, mail)

		addrRepo.On("GetByID", mock.Anything, "addr-1").Return(addr, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		gw.On("InitializeTransaction", mock.Anything, mock.Anything, "test@example.com", int64(3500)).
			Return(&payment.Authorization{AuthorizationURL: "https://checkout.example/x"}, nil)

		o, auth, err := svc.Create(authedCtx(), validInput())
		require.NoError(t, err)
		require.NotNil(t, auth)

		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		assert.Equal(t, int64(2000), o.Subtotal)
		assert.Equal(t, int64(1500), o.ShippingCost)
		assert.Equal(t, int64(3500), o.Total)
		assert.NotEmpty(t, o.OrderNumber)
		assert.NotEmpty(t, o.PaymentRef)
	})

	t.Run("BankTransferSkipsGateway", func(t *testing.T) {
		repo := new(MockRepository)
		addrRepo := new(MockAddressRepo)
		gw := new(mockGateway)
		mail := new(mockMailer)
		svc := newTestService(repo, addrRepo, gw, mail)

		addrRepo.On("GetByID", mock.Anything, "addr-1").Return(addr, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		input := validInput()
		input.PaymentMethod = "BANK_TRANSFER"
		input.PaymentProof = utils.StrPtr("https://cdn.example/proof.jpg")

		o, auth, err := svc.Create(authedCtx(), input)
		require.NoError(t, err)
		assert.Nil(t, auth)
		assert.Equal(t, StatusPaymentPending, o.Status)
		gw.AssertNotCalled(t, "InitializeTransaction")
	})

	t.Run("BankTransferWithoutProof", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockAddressRepo), new(mockGateway), new(mockMailer))

		input := validInput()
		input.PaymentMethod = "BANK_TRANSFER"

		_, _, err := svc.Create(authedCtx(), input)
		assert.ErrorIs(t, err, ErrProofRequired)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockAddressRepo), new(mockGateway), new(mockMailer))

		input := validInput()
		input.Items = nil

		_, _, err := svc.Create(authedCtx(), input)
		assert.ErrorIs(t, err, ErrEmptyItems)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockAddressRepo), new(mockGateway), new(mockMailer))

		input := validInput()
		input.Items[0].Quantity = 0

		_, _, err := svc.Create(authedCtx(), input)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockAddressRepo), new(mockGateway), new(mockMailer))

		input := validInput()
		input.PaymentMethod = "CRYPTO"

		_, _, err := svc.Create(authedCtx(), input)
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("SomeoneElsesAddress", func(t *testing.T) {
		repo := new(MockRepository)
		addrRepo := new(MockAddressRepo)
		svc := newTestService(repo, addrRepo, new(mockGateway), new(mockMailer))

		addrRepo.On("GetByID", mock.Anything, "addr-1").
			Return(&address.Address{ID: "addr-1", UserID: "someone-else", Region: "Lagos"}, nil)

		_, _, err := svc.Create(authedCtx(), validInput())
		assert.ErrorIs(t, err, ErrUnknownAddress)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockAddressRepo), new(mockGateway), new(mockMailer))

		_, _, err := svc.Create(context.Background(), validInput())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("RefCollisionRetries", func(t *testing.T) {
		repo := new(MockRepository)
		addrRepo := new(MockAddressRepo)
		gw := new(mockGateway)
		svc := newTestService(repo, addrRepo, gw, new(mockMailer))

		addrRepo.On("GetByID", mock.Anything, "addr-1").Return(addr, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(ErrRefConflict).Twice()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		gw.On("InitializeTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&payment.Authorization{}, nil)

		_, _, err := svc.Create(authedCtx(), validInput())
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "Create", 3)
	})

	t.Run("RefCollisionGivesUp", func(t *testing.T) {
		repo := new(MockRepository)
		addrRepo := new(MockAddressRepo)
		svc := newTestService(repo, addrRepo, new(mockGateway), new(mockMailer))

		addrRepo.On("GetByID", mock.Anything, "addr-1").Return(addr, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(ErrRefConflict)

		_, _, err := svc.Create(authedCtx(), validInput())
		assert.ErrorIs(t, err, ErrRefConflict)
		repo.AssertNumberOfCalls(t, "Create", 3)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("ShippedRequiresTracking", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

		repo.On("GetByID", mock.Anything, "o1").
			Return(&Order{ID: "o1", Status: StatusProcessing}, nil)

		err := svc.UpdateStatus(authedCtx(), "o1", StatusShipped, nil)
		assert.ErrorIs(t, err, ErrTrackingRequired)
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

		repo.On("GetByID", mock.Anything, "o1").
			Return(&Order{ID: "o1", Status: StatusDelivered}, nil)

		err := svc.UpdateStatus(authedCtx(), "o1", StatusProcessing, nil)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("ShippedSendsMail", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), mail)

		tracking := utils.StrPtr("TRK-123")
		o := &Order{ID: "o1", OrderNumber: "ES1", PaymentRef: "PAY_1", Status: StatusProcessing, UserEmail: "buyer@example.com"}

		repo.On("GetByID", mock.Anything, "o1").Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, "o1", StatusShipped, tracking).Return(nil)
		mail.On("Send", mock.Anything, "buyer@example.com", mock.Anything, mock.Anything).Return(nil)

		err := svc.UpdateStatus(authedCtx(), "o1", StatusShipped, tracking)
		require.NoError(t, err)
		mail.AssertExpectations(t)
	})

	t.Run("MailFailureDoesNotFailUpdate", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), mail)

		tracking := utils.StrPtr("TRK-123")
		o := &Order{ID: "o1", PaymentRef: "PAY_1", Status: StatusProcessing, UserEmail: "buyer@example.com"}

		repo.On("GetByID", mock.Anything, "o1").Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, "o1", StatusShipped, tracking).Return(nil)
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp down"))

		err := svc.UpdateStatus(authedCtx(), "o1", StatusShipped, tracking)
		assert.NoError(t, err)
	})
}

func TestService_MarkPaidByReference(t *testing.T) {
	t.Run("UnknownRefSwallowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

		repo.On("GetByPaymentRef", mock.Anything, "PAY_x").Return(nil, ErrOrderNotFound)

		applied, err := svc.MarkPaidByReference(authedCtx(), "PAY_x")
		assert.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("AppliesAndMails", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), mail)

		o := &Order{ID: "o1", OrderNumber: "ES1", PaymentRef: "PAY_1", Status: StatusPending, UserEmail: "buyer@example.com", Total: 3500}
		repo.On("GetByPaymentRef", mock.Anything, "PAY_1").Return(o, nil)
		repo.On("MarkPaidTx", mock.Anything, o, false).Return(true, nil)
		mail.On("Send", mock.Anything, "buyer@example.com", mock.Anything, mock.Anything).Return(nil)

		applied, err := svc.MarkPaidByReference(authedCtx(), "PAY_1")
		require.NoError(t, err)
		assert.True(t, applied)
		mail.AssertExpectations(t)
	})

	t.Run("AlreadyReconciled", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), mail)

		o := &Order{ID: "o1", PaymentRef: "PAY_1", Status: StatusPending, UserEmail: "buyer@example.com"}
		repo.On("GetByPaymentRef", mock.Anything, "PAY_1").Return(o, nil)
		repo.On("MarkPaidTx", mock.Anything, o, false).Return(false, nil)

		applied, err := svc.MarkPaidByReference(authedCtx(), "PAY_1")
		require.NoError(t, err)
		assert.False(t, applied)
		mail.AssertNotCalled(t, "Send")
	})

	t.Run("CancelledOrderStaysCancelled", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(mockMailer)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), mail)

		o := &Order{ID: "o1", PaymentRef: "PAY_1", Status: StatusCancelled, PaymentStatus: PaymentStatusPending}
		repo.On("GetByPaymentRef", mock.Anything, "PAY_1").Return(o, nil)

		applied, err := svc.MarkPaidByReference(authedCtx(), "PAY_1")
		require.NoError(t, err)
		assert.False(t, applied)
		repo.AssertNotCalled(t, "MarkPaidTx")
		mail.AssertNotCalled(t, "Send")
	})

	t.Run("DeliveredOrderUntouched", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

		o := &Order{ID: "o1", PaymentRef: "PAY_1", Status: StatusDelivered}
		repo.On("GetByPaymentRef", mock.Anything, "PAY_1").Return(o, nil)

		applied, err := svc.MarkPaidByReference(authedCtx(), "PAY_1")
		require.NoError(t, err)
		assert.False(t, applied)
		repo.AssertNotCalled(t, "MarkPaidTx")
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

		repo.On("GetByPaymentRef", mock.Anything, "PAY_1").Return(nil, errors.New("db down"))

		_, err := svc.MarkPaidByReference(authedCtx(), "PAY_1")
		assert.Error(t, err)
	})
}

func TestService_Track(t *testing.T) {
	t.Run("FindsByNumberAndEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

		o := &Order{ID: "o1", OrderNumber: "ES1", Status: StatusShipped}
		repo.On("GetByNumberAndEmail", mock.Anything, "ES1", "buyer@example.com").Return(o, nil)

		got, err := svc.Track(context.Background(), "ES1", "buyer@example.com")
		require.NoError(t, err)
		assert.Equal(t, StatusShipped, got.Status)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockAddressRepo), new(mockGateway), new(mockMailer))

		_, err := svc.Track(context.Background(), "", "buyer@example.com")
		assert.ErrorIs(t, err, ErrTrackingQuery)

		_, err = svc.Track(context.Background(), "ES1", "")
		assert.ErrorIs(t, err, ErrTrackingQuery)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

		repo.On("GetByNumberAndEmail", mock.Anything, "ES404", "buyer@example.com").
			Return(nil, ErrOrderNotFound)

		_, err := svc.Track(context.Background(), "ES404", "buyer@example.com")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_Get_Ownership(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockAddressRepo), new(mockGateway), new(mockMailer))

	repo.On("GetByID", mock.Anything, "o1").
		Return(&Order{ID: "o1", UserID: "someone-else"}, nil)

	t.Run("OtherUserDenied", func(t *testing.T) {
		_, err := svc.Get(authedCtx(), "o1")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		adminCtx := utils.SetUserContext(context.Background(), "admin-1", "admin@example.com", "ADMIN")
		o, err := svc.Get(adminCtx, "o1")
		require.NoError(t, err)
		assert.Equal(t, "o1", o.ID)
	})
}
