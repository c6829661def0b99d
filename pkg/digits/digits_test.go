package digits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold_PersianNumerals(t *testing.T) {
	assert.Equal(t, "0123456789", Fold("۰۱۲۳۴۵۶۷۸۹"))
}

func TestFold_ArabicNumerals(t *testing.T) {
	assert.Equal(t, "0123456789", Fold("٠١٢٣٤٥٦٧٨٩"))
}

func TestFold_MixedText(t *testing.T) {
	assert.Equal(t, "card 42", Fold("card ۴٢"))
}

func TestOnly_StripsEverythingButDigits(t *testing.T) {
	assert.Equal(t, "12345", Only(" ۱2-3 4ире5 "))
}

func TestOnly_NoDigits(t *testing.T) {
	assert.Equal(t, "", Only("abc"))
}
