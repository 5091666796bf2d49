package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOfWrapped(t *testing.T) {
	base := New(KindValidation, "insufficient stock")
	err := fmt.Errorf("%w: product X", base)

	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, Is(err, KindValidation))
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindInternal))
}

func TestFromStorage(t *testing.T) {
	notFound := New(KindNotFound, "order not found")

	assert.Nil(t, FromStorage(nil, notFound))
	assert.Same(t, notFound, FromStorage(gorm.ErrRecordNotFound, notFound))
	assert.Equal(t, KindNotFound, KindOf(FromStorage(gorm.ErrRecordNotFound, nil)))
	assert.Equal(t, KindConflict, KindOf(FromStorage(gorm.ErrDuplicatedKey, nil)))
	assert.Equal(t, KindConflict, KindOf(FromStorage(gorm.ErrForeignKeyViolated, nil)))
	assert.Equal(t, KindTransient, KindOf(FromStorage(errors.New("connection refused"), nil)))

	typed := Validationf("bad %s", "input")
	assert.Same(t, typed, FromStorage(typed, notFound))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, KindNotFound.HTTPStatus())
	assert.Equal(t, 422, KindValidation.HTTPStatus())
	assert.Equal(t, 409, KindConflict.HTTPStatus())
	assert.Equal(t, 503, KindTransient.HTTPStatus())
	assert.Equal(t, 500, KindInternal.HTTPStatus())
	assert.Equal(t, "conflict", KindConflict.String())
}

func TestTranslateConstraintMessages(t *testing.T) {
	fk := Translate(errors.New("FOREIGN KEY constraint failed (1811)"))
	assert.ErrorIs(t, fk, gorm.ErrForeignKeyViolated)
	assert.Equal(t, KindConflict, KindOf(FromStorage(errors.New("FOREIGN KEY constraint failed (1811)"), nil)))

	assert.ErrorIs(t, Translate(errors.New("UNIQUE constraint failed: products.sku (2067)")), gorm.ErrDuplicatedKey)

	plain := errors.New("disk I/O error")
	assert.Same(t, plain, Translate(plain))
	assert.Nil(t, Translate(nil))
}
