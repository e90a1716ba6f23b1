package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleInput struct {
	ProductID uuid.UUID        `validate:"uuid_required"`
	Quantity  int              `validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `validate:"omitempty,dec_gte0"`
	Price     decimal.Decimal  `validate:"dec_gte0"`
}

type priceInput struct {
	Price     decimal.Decimal  `validate:"dec_gte0,dec_cents"`
	UnitPrice *decimal.Decimal `validate:"omitempty,dec_gte0,dec_cents"`
}

func TestValidateStruct(t *testing.T) {
	neg := decimal.NewFromInt(-2)

	errs := ValidateStruct(saleInput{ProductID: uuid.New(), Quantity: 1})
	assert.Empty(t, errs)

	errs = ValidateStruct(saleInput{Quantity: 0, UnitPrice: &neg, Price: neg})
	require.Len(t, errs, 4)

	tags := map[string]string{}
	for _, e := range errs {
		tags[e.FailedField] = e.Tag
	}
	assert.Equal(t, "uuid_required", tags["saleInput.ProductID"])
	assert.Equal(t, "required", tags["saleInput.Quantity"])
	assert.Equal(t, "dec_gte0", tags["saleInput.UnitPrice"])
	assert.Equal(t, "dec_gte0", tags["saleInput.Price"])

	assert.Contains(t, Summary(errs), "saleInput.Quantity failed 'required'")
}

func TestValidateStruct_Cents(t *testing.T) {
	whole := decimal.RequireFromString("19.990")
	subCent := decimal.RequireFromString("1.005")

	assert.Empty(t, ValidateStruct(priceInput{Price: decimal.RequireFromString("12.5")}))
	assert.Empty(t, ValidateStruct(&priceInput{Price: decimal.Zero, UnitPrice: &whole}))

	errs := ValidateStruct(priceInput{Price: subCent, UnitPrice: &subCent})
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, "dec_cents", e.Tag)
	}
}
