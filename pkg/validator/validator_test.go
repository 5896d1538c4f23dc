package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Ref      uuid.UUID `validate:"uuid_required"`
	Quantity int       `validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sample{Ref: uuid.New(), Quantity: 1}))

	errs := ValidateStruct(sample{Quantity: 0})
	assert.Len(t, errs, 2)
	assert.Equal(t, "uuid_required", errs[0].Tag)
	assert.Equal(t, "gt", errs[1].Tag)
}
