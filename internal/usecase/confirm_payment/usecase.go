package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/payment"
	bookingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

// UseCase use case подтверждения платежа провайдером
type UseCase struct {
	payments     PaymentRepository
	booking      BookingService
	publisher    EventPublisher
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	payments PaymentRepository,
	booking BookingService,
	publisher EventPublisher,
	notifier Notifier,
	txManager TransactionManager,
	collector *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		payments:     payments,
		booking:      booking,
		publisher:    publisher,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      collector,
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения платежа.
//
// Переход pending -> verified и перевод слота в booked фиксируются одной
// транзакцией. Повторный вебхук по тому же платежу - ErrInvalidState,
// данные при этом не меняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: payment=%s", req.PaymentID)

	var (
		payment *domain.Payment
		slot    *domain.Slot
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		payment, err = uc.payments.GetByID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		err = uc.payments.UpdateStatus(txCtx, payment.ID, domain.PaymentPending, domain.PaymentVerified, req.ExternalRef)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrInvalidState) {
				return ErrInvalidState
			}
			return fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
		}

		if err := uc.booking.Confirm(txCtx, payment.SlotID); err != nil {
			if errors.Is(err, bookingSvc.ErrInvalidTransition) {
				return ErrSlotNotReserved
			}
			return fmt.Errorf("%w: failed to confirm slot: %v", ErrInternal, err)
		}

		slot, err = uc.booking.GetSlot(txCtx, payment.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) || errors.Is(err, ErrInvalidState) {
			uc.logger.Warn("ConfirmPayment: payment=%s rejected: %v", req.PaymentID, err)
		} else {
			uc.logger.Error("ConfirmPayment: payment=%s failed: %v", req.PaymentID, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsVerified.Inc()
	}

	now := uc.timeProvider.Now()
	uc.publish(ctx, domain.NewPaymentVerified(payment, now))
	uc.publish(ctx, domain.NewSlotBooked(slot, payment.UserID, now))

	uc.notify(ctx, payment.UserID, fmt.Sprintf(
		"Бронь подтверждена: %s %s", slot.Date.Format(domain.DateFormat), slot.Window))

	uc.logger.Info("ConfirmPayment: payment=%s verified, slot=%d booked", payment.ID, slot.ID)

	return &Response{
		PaymentID: payment.ID,
		SlotID:    slot.ID,
		Amount:    payment.Amount,
		Status:    domain.PaymentVerified,
	}, nil
}

// publish отправляет событие в брокер, ошибки только логируются
func (uc *UseCase) publish(ctx context.Context, event domain.Event) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to publish %s: %v", event.Type, err)
		return
	}
	if uc.metrics != nil {
		uc.metrics.EventsPublished.WithLabelValues(event.Type).Inc()
	}
}

// notify шлёт best-effort уведомление пользователю
func (uc *UseCase) notify(ctx context.Context, userID int64, text string) {
	if err := uc.notifier.SendText(ctx, userID, text); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to notify user=%d: %v", userID, err)
		if uc.metrics != nil {
			uc.metrics.NotifyFailures.Inc()
		}
	}
}
