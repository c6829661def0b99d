package reject_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

// UseCase use case отклонения платежа: провайдер отказал или оплата
// не состоялась. Слот возвращается в свободный пул.
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

// Execute выполняет use case отклонения платежа.
// Переход pending -> rejected и освобождение слота - одна транзакция.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectPayment: payment=%s reason=%q", req.PaymentID, req.Reason)

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

		err = uc.payments.UpdateStatus(txCtx, payment.ID, domain.PaymentPending, domain.PaymentRejected, nil)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrInvalidState) {
				return ErrInvalidState
			}
			return fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
		}

		if err := uc.booking.Release(txCtx, payment.SlotID); err != nil {
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		slot, err = uc.booking.GetSlot(txCtx, payment.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) || errors.Is(err, ErrInvalidState) {
			uc.logger.Warn("RejectPayment: payment=%s rejected: %v", req.PaymentID, err)
		} else {
			uc.logger.Error("RejectPayment: payment=%s failed: %v", req.PaymentID, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRejected.Inc()
	}

	reason := req.Reason
	if reason == "" {
		reason = "payment_rejected"
	}
	uc.publish(ctx, domain.NewBookingReleased(slot, payment.UserID, reason, uc.timeProvider.Now()))

	uc.notify(ctx, payment.UserID, fmt.Sprintf(
		"Оплата не прошла, бронь на %s %s снята", slot.Date.Format(domain.DateFormat), slot.Window))

	uc.logger.Info("RejectPayment: payment=%s rejected, slot=%d released", payment.ID, slot.ID)

	return &Response{
		PaymentID: payment.ID,
		SlotID:    slot.ID,
		Status:    domain.PaymentRejected,
	}, nil
}

func (uc *UseCase) publish(ctx context.Context, event domain.Event) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("RejectPayment: failed to publish %s: %v", event.Type, err)
		return
	}
	if uc.metrics != nil {
		uc.metrics.EventsPublished.WithLabelValues(event.Type).Inc()
	}
}

func (uc *UseCase) notify(ctx context.Context, userID int64, text string) {
	if err := uc.notifier.SendText(ctx, userID, text); err != nil {
		uc.logger.Warn("RejectPayment: failed to notify user=%d: %v", userID, err)
		if uc.metrics != nil {
			uc.metrics.NotifyFailures.Inc()
		}
	}
}
