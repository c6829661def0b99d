package actioncodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	actions := []Action{
		{Tag: TagShowSessions},
		{Tag: TagSessionDate, Payload: Payload{SessionDate: "2026-09-01"}},
		{Tag: TagBookSlot, Payload: Payload{SlotID: 42, SessionDate: "2026-09-01"}},
		{Tag: TagConfirmSlot, Payload: Payload{SlotID: 42}},
		{Tag: TagAccountType, Payload: Payload{Category: "STUDENT"}},
		{Tag: TagAdminRefund, Payload: Payload{PaymentID: "7b9a4c1e-0000-4000-8000-000000000001"}},
		{Tag: TagAdminViewUsers, Payload: Payload{Page: 3}},
	}

	for _, a := range actions {
		encoded, err := Encode(a)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, string(a.Tag)+":"))

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, a, decoded)
	}
}

func TestEncode_UnknownTag(t *testing.T) {
	_, err := Encode(Action{Tag: "WHATEVER"})
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestDecode_UnknownTag(t *testing.T) {
	encoded, err := Encode(Action{Tag: TagBookSlot, Payload: Payload{SlotID: 1}})
	require.NoError(t, err)

	_, token, _ := strings.Cut(encoded, ":")
	_, err = Decode("NOT_A_TAG:" + token)
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestDecode_MalformedInput(t *testing.T) {
	cases := []string{
		"",
		":",
		"BOOK_SLOT",
		"BOOK_SLOT:",
		"BOOK_SLOT:!!!not-base64!!!",
		"BOOK_SLOT:AAAA",                 // валидный base64, невалидный zlib
		"BOOK_SLOT:eNrLSM3JyQcABiwCFQ==", // zlib от не-JSON
	}

	for _, in := range cases {
		_, err := Decode(in)
		assert.Error(t, err, "input %q", in)
		assert.NotErrorIs(t, err, ErrUnknownTag, "input %q", in)
	}
}

func TestDecode_CorruptedToken(t *testing.T) {
	encoded, err := Encode(Action{Tag: TagBookSlot, Payload: Payload{SlotID: 99}})
	require.NoError(t, err)

	corrupted := encoded[:len(encoded)-4] + "0000"
	_, err = Decode(corrupted)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
