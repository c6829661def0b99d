package refund_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/payment"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

// UseCase use case операторского возврата платежа
type UseCase struct {
	users        UserRepository
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
	users UserRepository,
	payments PaymentRepository,
	booking BookingService,
	publisher EventPublisher,
	notifier Notifier,
	txManager TransactionManager,
	collector *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		users:        users,
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

// Execute выполняет use case возврата платежа.
//
// Возврат доступен только оператору и только для verified платежа.
// В одной транзакции: платёж переводится в refunded, в журнал пишется
// сторнирующая запись с отрицательной суммой, слот освобождается сразу -
// он снова доступен для бронирования, не дожидаясь фактического
// перечисления средств.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RefundPayment: payment=%s operator=%d", req.PaymentID, req.OperatorID)

	// 1. Проверяем права инициатора
	operator, err := uc.users.GetByID(ctx, req.OperatorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("RefundPayment: operator id=%d not found", req.OperatorID)
			return nil, ErrOperatorNotFound
		}
		uc.logger.Error("RefundPayment: failed to get operator id=%d: %v", req.OperatorID, err)
		return nil, fmt.Errorf("%w: failed to get operator: %v", ErrInternal, err)
	}
	if !operator.IsOperator() {
		uc.logger.Warn("RefundPayment: user id=%d is not an operator", req.OperatorID)
		return nil, ErrNotOperator
	}

	var (
		payment *domain.Payment
		refund  *domain.Payment
		slot    *domain.Slot
	)

	// 2. Возврат и освобождение слота в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		payment, err = uc.payments.GetByID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		err = uc.payments.UpdateStatus(txCtx, payment.ID, domain.PaymentVerified, domain.PaymentRefunded, nil)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrInvalidState) {
				return ErrInvalidState
			}
			return fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
		}

		// Сторнирующая запись: история платежей пользователя показывает
		// и оплату, и возврат
		refund, err = uc.payments.Create(txCtx, &domain.Payment{
			ID:       uuid.New(),
			SlotID:   payment.SlotID,
			UserID:   payment.UserID,
			Amount:   -payment.Amount,
			Status:   domain.PaymentRefunded,
			RefundOf: &payment.ID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create refund entry: %v", ErrInternal, err)
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
			uc.logger.Warn("RefundPayment: payment=%s rejected: %v", req.PaymentID, err)
		} else {
			uc.logger.Error("RefundPayment: payment=%s failed: %v", req.PaymentID, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRefunded.Inc()
	}

	uc.publish(ctx, domain.NewBookingReleased(slot, payment.UserID, "refund", uc.timeProvider.Now()))

	uc.notify(ctx, payment.UserID, fmt.Sprintf(
		"Оформлен возврат %d за %s %s, бронь снята",
		payment.Amount, slot.Date.Format(domain.DateFormat), slot.Window))

	uc.logger.Info("RefundPayment: payment=%s refunded by operator=%d, slot=%d released",
		payment.ID, req.OperatorID, slot.ID)

	return &Response{
		PaymentID:    payment.ID,
		RefundID:     refund.ID,
		SlotID:       slot.ID,
		RefundAmount: refund.Amount,
		Status:       domain.PaymentRefunded,
	}, nil
}

func (uc *UseCase) publish(ctx context.Context, event domain.Event) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("RefundPayment: failed to publish %s: %v", event.Type, err)
		return
	}
	if uc.metrics != nil {
		uc.metrics.EventsPublished.WithLabelValues(event.Type).Inc()
	}
}

func (uc *UseCase) notify(ctx context.Context, userID int64, text string) {
	if err := uc.notifier.SendText(ctx, userID, text); err != nil {
		uc.logger.Warn("RefundPayment: failed to notify user=%d: %v", userID, err)
		if uc.metrics != nil {
			uc.metrics.NotifyFailures.Inc()
		}
	}
}
