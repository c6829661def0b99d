// Package telegram внешний коллаборатор ядра: уведомления, инвойсы
// платёжного провайдера и отложенная очистка сообщений.
//
// Ядро не знает про telegram: оно потребляет узкие интерфейсы
// (Notifier, InvoiceProvider), которые реализует этот пакет.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client обёртка над telegram bot API
type Client struct {
	bot           *tgbotapi.BotAPI
	providerToken string
	currency      string
	logger        Logger
}

// NewClient создает клиента telegram
func NewClient(token, providerToken, currency string, logger Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create bot: %w", err)
	}

	logger.Info("Telegram bot authorized as @%s", bot.Self.UserName)

	return &Client{
		bot:           bot,
		providerToken: providerToken,
		currency:      currency,
		logger:        logger,
	}, nil
}

// SendText доставляет текст пользователю по его ID. Best-effort:
// ошибка доставки логируется вызывающим и не откатывает состояние.
func (c *Client) SendText(ctx context.Context, userID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(userID, text)
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: user=%d: %v", ErrSendFailed, userID, err)
	}

	return nil
}

// OpenInvoice выставляет пользователю счёт за слот
func (c *Client) OpenInvoice(ctx context.Context, userID int64, paymentID string, slot *domain.Slot, amount int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := fmt.Sprintf("Session %s %s", slot.Date.Format(domain.DateFormat), slot.Window)
	invoice := tgbotapi.NewInvoice(
		userID,
		title,
		"Field session booking",
		paymentID, // payload: по нему колбэк провайдера находит платёж
		c.providerToken,
		"",
		c.currency,
		[]tgbotapi.LabeledPrice{{Label: title, Amount: int(amount)}},
	)

	if _, err := c.bot.Request(invoice); err != nil {
		return fmt.Errorf("%w: user=%d payment=%s: %v", ErrInvoiceFailed, userID, paymentID, err)
	}

	return nil
}

// OnPreCheckout отвечает на pre-checkout запрос провайдера.
// ok=false с причиной отклоняет оплату до списания средств.
func (c *Client) OnPreCheckout(queryID string, ok bool, errorMessage string) error {
	answer := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: queryID,
		OK:                 ok,
		ErrorMessage:       errorMessage,
	}

	if _, err := c.bot.Request(answer); err != nil {
		return fmt.Errorf("telegram: failed to answer pre-checkout %s: %w", queryID, err)
	}

	return nil
}

// ListenPreCheckout читает апдейты бота и подтверждает pre-checkout
// запросы, пока контекст не отменён. Итоговый вердикт по платежу
// выносят вебхуки confirm/reject, здесь только разрешается списание.
func (c *Client) ListenPreCheckout(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.PreCheckoutQuery == nil {
				continue
			}
			if err := c.OnPreCheckout(update.PreCheckoutQuery.ID, true, ""); err != nil {
				c.logger.Error("Pre-checkout answer failed: %v", err)
			}
		}
	}
}

// DeleteMessage удаляет сообщение диалога (очистка онбординга)
func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	if _, err := c.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("telegram: failed to delete message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}
