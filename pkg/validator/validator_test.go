package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priced struct {
	Name  string          `validate:"required"`
	Price decimal.Decimal `validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&priced{Name: "Mug", Price: decimal.NewFromInt(3)}))

	err := Validate(&priced{Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "priced.Name")

	err = Validate(&priced{Name: "Mug", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "gte")
}
