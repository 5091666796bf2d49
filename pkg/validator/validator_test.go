package validator

import (
	"testing"

	"go-order-desk/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type line struct {
	ProductID uuid.UUID `validate:"uuid_required"`
	Quantity  int       `validate:"gt=0"`
}

type sample struct {
	Email string `validate:"required,email"`
	Lines []line `validate:"required,min=1,dive"`
}

func TestCheck(t *testing.T) {
	ok := sample{Email: "a@b.co", Lines: []line{{ProductID: uuid.New(), Quantity: 1}}}
	assert.NoError(t, Check(&ok))

	bad := sample{Email: "a@b.co", Lines: []line{{ProductID: uuid.Nil, Quantity: 1}}}
	err := Check(&bad)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "uuid_required")
}

func TestValidateStructCollectsAll(t *testing.T) {
	errs := ValidateStruct(&sample{Email: "nope", Lines: []line{{ProductID: uuid.New(), Quantity: 0}}})
	if assert.Len(t, errs, 2) {
		assert.Equal(t, "email", errs[0].Tag)
		assert.Equal(t, "sample.Lines[0].Quantity", errs[1].FailedField)
		assert.Equal(t, "0", errs[1].Value)
	}
}
