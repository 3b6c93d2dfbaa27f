package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"123.456", "$123.46"},
		{"123.4", "$123.40"},
		{"-50", "$-50.00"},
		{"1999999.99", "$1999999.99"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(decimal.RequireFromString(tc.in)), tc.in)
	}
}

func TestDebtStatus(t *testing.T) {
	assert.Equal(t, StatusOutstanding, DebtStatus(decimal.NewFromInt(1)))
	assert.Equal(t, StatusOverpaid, DebtStatus(decimal.NewFromInt(-1)))
	assert.Equal(t, StatusPaidInFull, DebtStatus(decimal.Zero))
	assert.Equal(t, StatusOutstanding, DebtStatus(decimal.RequireFromString("0.01")))
}

func TestSum(t *testing.T) {
	assert.True(t, Sum(nil).IsZero())

	got := Sum([]decimal.Decimal{
		decimal.RequireFromString("10.10"),
		decimal.RequireFromString("0.90"),
		decimal.RequireFromString("-1.00"),
	})
	assert.True(t, got.Equal(decimal.NewFromInt(10)))
}

func TestAverage(t *testing.T) {
	assert.True(t, Average(decimal.NewFromInt(100), 0).IsZero())

	got := Average(decimal.NewFromInt(400), 3)
	assert.Equal(t, "133.33", got.StringFixed(2))

	got = Average(decimal.NewFromInt(100), 4)
	assert.True(t, got.Equal(decimal.NewFromInt(25)))
}
