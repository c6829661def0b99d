package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
	bookingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

// UseCase use case бронирования слота: резервирование + открытие платежа
type UseCase struct {
	users        UserRepository
	booking      BookingService
	catalog      CatalogService
	payments     PaymentRepository
	invoices     InvoiceProvider
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	users UserRepository,
	booking BookingService,
	catalog CatalogService,
	payments PaymentRepository,
	invoices InvoiceProvider,
	txManager TransactionManager,
	collector *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		users:        users,
		booking:      booking,
		catalog:      catalog,
		payments:     payments,
		invoices:     invoices,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      collector,
		logger:       logger,
	}
}

// Execute выполняет use case бронирования слота.
//
// Резервирование и открытие платежа идут одной сериализуемой
// транзакцией: из N конкурентных запросов на один слот до платежа
// доходит максимум один. Верифицированный пользователь платит тариф
// своей категории, остальные - гостевую цену слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: user=%d, slot=%d", req.UserID, req.SlotID)

	// 1. Получаем пользователя
	user, err := uc.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("BookSlot: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("BookSlot: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.Active {
		uc.logger.Warn("BookSlot: user id=%d is inactive", req.UserID)
		return nil, ErrUserInactive
	}

	var (
		payment *domain.Payment
		slot    *domain.Slot
	)

	// 2. Резервируем слот и открываем платёж в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err = uc.booking.GetSlot(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, bookingSvc.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.1. Считаем сумму до захвата слота
		amount := slot.Cost
		if user.PaysCategoryRate() {
			amount, err = uc.catalog.RateFor(txCtx, user.Category)
			if err != nil {
				return fmt.Errorf("%w: failed to get category rate: %v", ErrInternal, err)
			}
		}

		// 2.2. Захватываем слот (compare-and-swap в репозитории)
		if err := uc.booking.Reserve(txCtx, req.SlotID, req.UserID); err != nil {
			switch {
			case errors.Is(err, bookingSvc.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, bookingSvc.ErrSlotUnavailable):
				return ErrSlotUnavailable
			case errors.Is(err, bookingSvc.ErrSlotConflict):
				return ErrSlotConflict
			default:
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		// 2.3. Открываем платёж в ожидании подтверждения провайдера
		payment, err = uc.payments.Create(txCtx, &domain.Payment{
			ID:     uuid.New(),
			SlotID: req.SlotID,
			UserID: req.UserID,
			Amount: amount,
			Status: domain.PaymentPending,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) && uc.metrics != nil {
			uc.metrics.ReserveConflicts.Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SlotsReserved.Inc()
	}

	// 3. Открываем инвойс (best-effort: резерв уже зафиксирован,
	// оплату можно переоткрыть из списка платежей)
	if err := uc.invoices.OpenInvoice(ctx, req.UserID, payment.ID.String(), slot, payment.Amount); err != nil {
		uc.logger.Warn("BookSlot: failed to open invoice for payment=%s: %v", payment.ID, err)
	}

	uc.logger.Info("BookSlot: slot=%d reserved by user=%d, payment=%s amount=%d",
		req.SlotID, req.UserID, payment.ID, payment.Amount)

	return &Response{
		PaymentID: payment.ID,
		SlotID:    slot.ID,
		Date:      slot.Date,
		Window:    slot.Window,
		Amount:    payment.Amount,
		Status:    payment.Status,
	}, nil
}
