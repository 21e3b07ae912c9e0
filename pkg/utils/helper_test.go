package utils_test

import (
	"math"
	"testing"

	"customer-reviews/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, utils.ParseInt("3", 1))
	assert.Equal(t, 1, utils.ParseInt("", 1))
	assert.Equal(t, 10, utils.ParseInt("abc", 10))
	assert.Equal(t, 10, utils.ParseInt("-2", 10))
}

func TestParseID(t *testing.T) {
	id, err := utils.ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := utils.ParseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 0, utils.CalculateOffset(1, 10))
	assert.Equal(t, 20, utils.CalculateOffset(3, 10))
	assert.Equal(t, 0, utils.CalculateOffset(0, 10))
	assert.Equal(t, math.MaxInt, utils.CalculateOffset(math.MaxInt, 10), "offset saturates instead of wrapping")
	assert.Equal(t, math.MaxInt, utils.CalculateOffset(math.MaxInt/2, 100))

	assert.Equal(t, 3, utils.CalculateTotalPages(21, 10))
	assert.Equal(t, 0, utils.CalculateTotalPages(0, 10))
}

func TestValidateStruct(t *testing.T) {
	type body struct {
		Name  string  `json:"name" validate:"required,max=5"`
		Price float64 `json:"price" validate:"gte=0"`
	}

	assert.Nil(t, utils.ValidateStruct(body{Name: "Mug"}))

	errs := utils.ValidateStruct(body{Price: -1})
	assert.Equal(t, map[string]string{
		"name":  "This field is required",
		"price": "Must be greater than or equal to 0",
	}, errs)

	assert.Equal(t,
		"name: This field is required; price: Must be greater than or equal to 0",
		utils.FormatValidationErrors(errs))
}
