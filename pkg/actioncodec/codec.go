// Package actioncodec кодирует действия пользователя в компактные токены
// вида <ACTION_TAG>:<payload>.
//
// Payload - это urlsafe base64 от zlib-сжатого JSON. Декодирование строго
// обратно кодированию; любой испорченный токен возвращает типизированную
// ошибку, а не панику, и до бизнес-логики не доходит.
package actioncodec

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Tag тип действия, закодированного в callback
type Tag string

const (
	TagShowSessions Tag = "SHOW_SESSIONS"
	TagSessionDate  Tag = "SESSION_DATE"
	TagBookSlot     Tag = "BOOK_SLOT"
	TagConfirmSlot  Tag = "CONFIRM_SLOT"
	TagAccountType  Tag = "ACCOUNT_TYPE"

	TagAdminViewUsers     Tag = "ADMIN_VIEW_USERS"
	TagAdminViewSessions  Tag = "ADMIN_VIEW_SESSIONS"
	TagAdminManageSlot    Tag = "ADMIN_MANAGE_SLOT"
	TagAdminToggleSlot    Tag = "ADMIN_TOGGLE_SLOT"
	TagAdminRefund        Tag = "ADMIN_REFUND"
	TagAdminGenerateSlots Tag = "ADMIN_GENERATE_SLOTS"
)

var knownTags = map[Tag]struct{}{
	TagShowSessions:       {},
	TagSessionDate:        {},
	TagBookSlot:           {},
	TagConfirmSlot:        {},
	TagAccountType:        {},
	TagAdminViewUsers:     {},
	TagAdminViewSessions:  {},
	TagAdminManageSlot:    {},
	TagAdminToggleSlot:    {},
	TagAdminRefund:        {},
	TagAdminGenerateSlots: {},
}

var (
	// ErrUnknownTag возвращается для тега, отсутствующего в реестре
	ErrUnknownTag = errors.New("actioncodec: unknown action tag")

	// ErrMalformedToken возвращается для любого токена, который не
	// проходит base64/zlib/json декодирование
	ErrMalformedToken = errors.New("actioncodec: malformed action token")

	// ErrEncode возвращается при ошибке кодирования payload
	ErrEncode = errors.New("actioncodec: failed to encode payload")
)

// Распакованный payload не может быть больше этого размера:
// защита от zlib-бомбы в callback данных
const maxPayloadBytes = 4096

// Payload данные действия
type Payload struct {
	SlotID      int64  `json:"slot_id,omitempty"`
	SessionDate string `json:"session_date,omitempty"` // YYYY-MM-DD
	PaymentID   string `json:"payment_id,omitempty"`
	Category    string `json:"category,omitempty"`
	Page        int    `json:"page,omitempty"`
}

// Action типизированное действие пользователя
type Action struct {
	Tag     Tag
	Payload Payload
}

// Encode сериализует действие в строку <TAG>:<token>
func Encode(a Action) (string, error) {
	if _, ok := knownTags[a.Tag]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, a.Tag)
	}

	raw, err := json.Marshal(a.Payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal: %v", ErrEncode, err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("%w: compress: %v", ErrEncode, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("%w: compress: %v", ErrEncode, err)
	}

	token := base64.URLEncoding.EncodeToString(buf.Bytes())
	return string(a.Tag) + ":" + token, nil
}

// Decode разбирает строку <TAG>:<token> обратно в действие.
// Точная инверсия Encode: Decode(Encode(a)) == a для любого валидного a.
func Decode(s string) (Action, error) {
	tagStr, token, found := strings.Cut(s, ":")
	if !found || tagStr == "" {
		return Action{}, fmt.Errorf("%w: missing tag separator", ErrMalformedToken)
	}

	tag := Tag(tagStr)
	if _, ok := knownTags[tag]; !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownTag, tagStr)
	}

	compressed, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Action{}, fmt.Errorf("%w: base64: %v", ErrMalformedToken, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return Action{}, fmt.Errorf("%w: zlib: %v", ErrMalformedToken, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(io.LimitReader(zr, maxPayloadBytes+1))
	if err != nil {
		return Action{}, fmt.Errorf("%w: decompress: %v", ErrMalformedToken, err)
	}
	if len(raw) > maxPayloadBytes {
		return Action{}, fmt.Errorf("%w: payload too large", ErrMalformedToken)
	}

	var payload Payload
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return Action{}, fmt.Errorf("%w: json: %v", ErrMalformedToken, err)
	}

	return Action{Tag: tag, Payload: payload}, nil
}
