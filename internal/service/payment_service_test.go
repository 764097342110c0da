package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepositCentsRoundsToWholeCents(t *testing.T) {
	full := &PaymentService{depositPercent: 100}

	cases := []struct {
		valor float64
		want  int64
	}{
		{19.99, 1999},
		{29.90, 2990},
		{49.99, 4999},
		{82.35, 8235},
		{99.99, 9999},
		{0.01, 1},
		{50, 5000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, full.DepositCents(tc.valor), "valor %.2f", tc.valor)
	}
}

func TestDepositCentsAppliesPercentage(t *testing.T) {
	half := &PaymentService{depositPercent: 50}
	assert.Equal(t, int64(999), half.DepositCents(19.99))

	none := &PaymentService{depositPercent: 0}
	assert.Equal(t, int64(0), none.DepositCents(19.99))
}
