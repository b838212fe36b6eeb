package service

import (
	"context"

	ordermodel "github.com/Amanisai/Emart/internal/domains/order/model"
	"github.com/Amanisai/Emart/internal/domains/order/repository"
	productrepo "github.com/Amanisai/Emart/internal/domains/product/repository"
	userrepo "github.com/Amanisai/Emart/internal/domains/user/repository"
	"github.com/Amanisai/Emart/internal/infrastructure/queue"
	"github.com/Amanisai/Emart/internal/shared/money"
	"github.com/Amanisai/Emart/pkg/logger"
)

type OrderService interface {
	Create(ctx context.Context, userID int64, req ordermodel.CreateOrderRequest) (*ordermodel.OrderResponse, error)
	CreatePendingPayment(ctx context.Context, userID int64, req ordermodel.CreateOrderRequest) (*ordermodel.Order, error)
	GetForUser(ctx context.Context, orderID, userID int64) (*ordermodel.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]ordermodel.OrderResponse, error)
	ListAll(ctx context.Context) ([]ordermodel.OrderResponse, error)
	AttachPaymentRef(ctx context.Context, orderID int64, provider, ref string) error
	MarkPaid(ctx context.Context, orderID int64, provider, ref string) (bool, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	queueClient *queue.Client
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo productrepo.ProductRepository,
	userRepo userrepo.UserRepository,
	queueClient *queue.Client,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// Create places an order priced entirely from the catalog
func (s *orderService) Create(ctx context.Context, userID int64, req ordermodel.CreateOrderRequest) (*ordermodel.OrderResponse, error) {
	order, err := s.buildOrder(ctx, userID, req, ordermodel.StatusCreated)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    money.FormatCents(order.TotalCents),
	})

	resp := ordermodel.ToOrderResponse(order)
	return &resp, nil
}

// CreatePendingPayment places an order that is waiting on a hosted
// checkout. The payment domain attaches the provider reference after
// the session is created.
func (s *orderService) CreatePendingPayment(ctx context.Context, userID int64, req ordermodel.CreateOrderRequest) (*ordermodel.Order, error) {
	order, err := s.buildOrder(ctx, userID, req, ordermodel.StatusPendingPayment)
	if err != nil {
		return nil, err
	}

	unpaid := ordermodel.PaymentStatusUnpaid
	order.PaymentStatus = &unpaid

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Pending payment order created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    money.FormatCents(order.TotalCents),
	})
	return order, nil
}

// buildOrder validates the request and prices every line against the
// catalog. Pricing is all or nothing: any unresolvable key fails the
// whole order with a PricingError naming the offending keys.
func (s *orderService) buildOrder(ctx context.Context, userID int64, req ordermodel.CreateOrderRequest, status string) (*ordermodel.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, ordermodel.ErrEmptyOrder
	}

	keys := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if item.Quantity < 1 {
			return nil, ordermodel.ErrInvalidQuantity
		}
		keys = append(keys, item.Key)
	}

	products, err := s.productRepo.GetByKeys(ctx, keys)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, item := range req.Items {
		if _, ok := products[item.Key]; !ok {
			unknown = append(unknown, item.Key)
		}
	}
	if len(unknown) > 0 {
		return nil, &ordermodel.PricingError{UnknownKeys: unknown}
	}

	items := make([]ordermodel.OrderItem, 0, len(req.Items))
	var totalCents int64
	for _, reqItem := range req.Items {
		p := products[reqItem.Key]
		lineTotal := p.PriceCents * reqItem.Quantity
		items = append(items, ordermodel.OrderItem{
			Key:            reqItem.Key,
			Type:           p.Type,
			Title:          p.Title,
			Image:          p.Image,
			PriceCents:     p.PriceCents,
			Quantity:       reqItem.Quantity,
			LineTotalCents: lineTotal,
		})
		totalCents += lineTotal
	}

	return &ordermodel.Order{
		UserID:     userID,
		TotalCents: totalCents,
		Status:     status,
		Address:    req.Address,
		Items:      items,
	}, nil
}

func (s *orderService) GetForUser(ctx context.Context, orderID, userID int64) (*ordermodel.Order, error) {
	return s.orderRepo.GetByIDAndUserID(ctx, orderID, userID)
}

func (s *orderService) ListForUser(ctx context.Context, userID int64) ([]ordermodel.OrderResponse, error) {
	orders, err := s.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]ordermodel.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ordermodel.ToOrderResponse(&orders[i]))
	}
	return responses, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]ordermodel.OrderResponse, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ordermodel.OrderResponse, 0, len(orders))
	for i := range orders {
		resp := ordermodel.ToOrderResponse(&orders[i].Order)
		resp.UserEmail = orders[i].UserEmail
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *orderService) AttachPaymentRef(ctx context.Context, orderID int64, provider, ref string) error {
	return s.orderRepo.AttachPaymentRef(ctx, orderID, provider, ref)
}

// MarkPaid finalizes an order after a confirmed payment. The paid
// transition happens at most once no matter how many confirmation
// paths race, and the confirmation email is queued only by the call
// that performed the transition.
func (s *orderService) MarkPaid(ctx context.Context, orderID int64, provider, ref string) (bool, error) {
	transitioned, err := s.orderRepo.MarkPaid(ctx, orderID, provider, ref)
	if err != nil {
		return false, err
	}
	if !transitioned {
		return false, nil
	}

	logger.Info("Order marked paid", map[string]interface{}{
		"order_id": orderID,
		"provider": provider,
		"ref":      ref,
	})

	s.enqueueConfirmation(ctx, orderID)
	return true, nil
}

// enqueueConfirmation is best effort: a queue failure never unwinds a
// completed payment
func (s *orderService) enqueueConfirmation(ctx context.Context, orderID int64) {
	if s.queueClient == nil {
		return
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("Failed to load order for confirmation task", err)
		return
	}

	user, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		logger.Error("Failed to load user for confirmation task", err)
		return
	}

	err = s.queueClient.EnqueueOrderConfirmation(queue.OrderConfirmationPayload{
		OrderID: order.ID,
		UserID:  user.ID,
		Email:   user.Email,
		Total:   money.FormatCents(order.TotalCents),
	})
	if err != nil {
		logger.Error("Failed to enqueue order confirmation", err)
	}
}
