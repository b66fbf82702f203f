package order

import (
	"context"
	"fmt"

	"emeraldscents-be/internal/address"
	"emeraldscents-be/internal/logger"
	"emeraldscents-be/internal/notification"
	"emeraldscents-be/internal/payment"
	"emeraldscents-be/internal/pricing"
	"emeraldscents-be/internal/utils"

	"go.uber.org/zap"
)

const refRetryLimit = 3

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, *payment.Authorization, error)
	ListByUser(ctx context.Context) ([]*Order, error)
	List(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, page int) ([]*Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status, trackingNo *string) error

	// Track is the anonymous lookup for the order-tracking page;
	// order number plus the account email stand in for authentication.
	Track(ctx context.Context, orderNumber, email string) (*Order, error)

	// MarkPaidByReference drives the webhook reconciliation. An unknown
	// reference is swallowed (applied=false, nil error) so the provider
	// does not retry-storm on references we never issued.
	MarkPaidByReference(ctx context.Context, ref string) (applied bool, err error)
}

type service struct {
	repo           Repository
	addressRepo    address.Repository
	calc           *pricing.Calculator
	gateway        payment.Gateway
	mailer         notification.Mailer
	allowBackorder bool
}

func NewService(
	repo Repository,
	addressRepo address.Repository,
	calc *pricing.Calculator,
	gateway payment.Gateway,
	mailer notification.Mailer,
	allowBackorder bool,
) Service {
	return &service{
		repo:           repo,
		addressRepo:    addressRepo,
		calc:           calc,
		gateway:        gateway,
		mailer:         mailer,
		allowBackorder: allowBackorder,
	}
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, *payment.Authorization, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil, ErrUnauthorized
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("user_id", userID),
		zap.Int("item_count", len(input.Items)),
	)

	if len(input.Items) == 0 {
		return nil, nil, ErrEmptyItems
	}
	for _, item := range input.Items {
		if item.Quantity < 1 || item.Price < 0 {
			return nil, nil, ErrInvalidQuantity
		}
	}

	var method PaymentMethod
	switch input.PaymentMethod {
	case "bank_transfer", string(MethodBankTransfer):
		method = MethodBankTransfer
	case "paystack", string(MethodPaystack):
		method = MethodPaystack
	default:
		return nil, nil, ErrInvalidMethod
	}

	if method == MethodBankTransfer && utils.PtrString(input.PaymentProof) == "" {
		return nil, nil, ErrProofRequired
	}

	addr, err := s.addressRepo.GetByID(ctx, input.AddressID)
	if err != nil {
		log.Warn("address lookup failed", zap.String("address_id", input.AddressID), zap.Error(err))
		return nil, nil, ErrUnknownAddress
	}
	if addr.UserID != userID {
		return nil, nil, ErrUnknownAddress
	}

	lineItems := make([]pricing.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		lineItems = append(lineItems, pricing.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}
	quote := s.calc.Quote(ctx, lineItems, addr.Region, utils.PtrString(input.PromoCode))

	log.Info("price calculated",
		zap.Int64("subtotal", quote.Subtotal),
		zap.Int64("shipping_cost", quote.ShippingCost),
		zap.Int64("discount", quote.Discount),
		zap.Int64("total", quote.Total),
	)

	status := StatusPending
	if method == MethodBankTransfer {
		status = StatusPaymentPending
	}

	o := &Order{
		UserID:        userID,
		AddressID:     addr.ID,
		Subtotal:      quote.Subtotal,
		ShippingCost:  quote.ShippingCost,
		Discount:      quote.Discount,
		Total:         quote.Total,
		PromoCode:     input.PromoCode,
		PaymentMethod: method,
		PaymentStatus: PaymentStatusPending,
		Status:        status,
		PaymentProof:  input.PaymentProof,
	}
	for _, item := range input.Items {
		o.Items = append(o.Items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	// Reference generation is time-based; the unique constraints catch
	// the rare collision and we regenerate.
	for attempt := 0; ; attempt++ {
		o.OrderNumber = utils.GenerateOrderNumber()
		o.PaymentRef = utils.GeneratePaymentRef()

		err = s.repo.Create(ctx, o)
		if err == nil {
			break
		}
		if err != ErrRefConflict || attempt+1 >= refRetryLimit {
			return nil, nil, err
		}
		log.Warn("regenerating order references after collision", zap.Int("attempt", attempt+1))
	}

	if method == MethodBankTransfer {
		// Manual path: an admin reviews the proof and confirms by hand.
		return o, nil, nil
	}

	auth, err := s.gateway.InitializeTransaction(ctx, o.PaymentRef, utils.GetUserEmailFromContext(ctx), o.Total)
	if err != nil {
		return o, nil, fmt.Errorf("failed to initialize payment: %w", err)
	}

	return o, auth, nil
}

func (s *service) ListByUser(ctx context.Context) ([]*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) List(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, page int) ([]*Order, error) {
	orders, err := s.repo.List(ctx, filter, sort, limit, page)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	if !utils.IsAdmin(ctx) && o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status, trackingNo *string) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := Transition(o.Status, status); err != nil {
		return err
	}
	if status == StatusShipped && utils.PtrString(trackingNo) == "" {
		return ErrTrackingRequired
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status, trackingNo); err != nil {
		return err
	}

	if status == StatusShipped && trackingNo != nil {
		s.sendShippedMail(ctx, o, *trackingNo)
	}

	return nil
}

func (s *service) Track(ctx context.Context, orderNumber, email string) (*Order, error) {
	if orderNumber == "" || email == "" {
		return nil, ErrTrackingQuery
	}
	return s.repo.GetByNumberAndEmail(ctx, orderNumber, email)
}

func (s *service) MarkPaidByReference(ctx context.Context, ref string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MarkPaidByReference"),
		zap.String("payment_ref", ref),
	)

	o, err := s.repo.GetByPaymentRef(ctx, ref)
	if err != nil {
		if err == ErrOrderNotFound {
			log.Warn("webhook for unknown payment reference, ignoring")
			return false, nil
		}
		return false, err
	}

	// A late success event can arrive after an admin has already moved
	// the order on, including to CANCELLED. Those orders must stay where
	// they are; acknowledge the event and keep the inventory untouched.
	if err := Transition(o.Status, StatusProcessing); err != nil {
		log.Warn("order cannot move to processing, ignoring payment event",
			zap.String("status", string(o.Status)))
		return false, nil
	}

	applied, err := s.repo.MarkPaidTx(ctx, o, s.allowBackorder)
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	// Confirmation mail is best-effort; the state transition above is
	// already committed and must not be rolled back.
	if err := s.mailer.Send(
		ctx,
		o.UserEmail,
		notification.SubjectOrderConfirmation,
		notification.OrderConfirmationEmail(o.OrderNumber, o.Total),
	); err != nil {
		log.Warn("failed to send order confirmation email", zap.Error(err))
	}

	return true, nil
}

func (s *service) sendShippedMail(ctx context.Context, o *Order, trackingNo string) {
	email := o.UserEmail
	if email == "" {
		// ListByUser/GetByID do not join the user; fetch via payment ref.
		full, err := s.repo.GetByPaymentRef(ctx, o.PaymentRef)
		if err != nil {
			logger.FromCtx(ctx).Warn("cannot resolve customer email for shipment notice",
				zap.String("order_id", o.ID), zap.Error(err))
			return
		}
		email = full.UserEmail
	}

	if err := s.mailer.Send(
		ctx,
		email,
		notification.SubjectOrderShipped,
		notification.OrderShippedEmail(o.OrderNumber, trackingNo),
	); err != nil {
		logger.FromCtx(ctx).Warn("failed to send shipment email",
			zap.String("order_id", o.ID), zap.Error(err))
	}
}
