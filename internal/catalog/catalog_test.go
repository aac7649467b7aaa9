package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "R$ 0,00"},
		{12.5, "R$ 12,50"},
		{1999.999, "R$ 2000,00"},
		{3.14159, "R$ 3,14"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price))
	}
}

func TestProductCode(t *testing.T) {
	assert.Equal(t, "10", Product{ID: 10}.Code())
}

func TestMaxID(t *testing.T) {
	assert.Equal(t, 0, MaxID(nil))
	assert.Equal(t, 7, MaxID([]Product{{ID: 3}, {ID: 7}, {ID: 2}}))
}

func validValues() map[string]string {
	return map[string]string{
		FieldName:        "  Caneca  ",
		FieldDescription: "Caneca de cerâmica",
		FieldPrice:       "19,90",
		FieldCategory:    "Cozinha",
		FieldPictureURL:  "https://example.com/caneca.png",
	}
}

func TestParseDraft_Valid(t *testing.T) {
	d, err := ParseDraft(validValues())
	require.NoError(t, err)

	assert.Equal(t, "Caneca", d.Name)
	assert.InDelta(t, 19.90, d.Price, 0.0001)

	p := d.Product(4)
	assert.Equal(t, 4, p.ID)
	assert.Equal(t, "Cozinha", p.Category)
}

func TestParseDraft_DotDecimal(t *testing.T) {
	values := validValues()
	values[FieldPrice] = "7.25"

	d, err := ParseDraft(values)
	require.NoError(t, err)
	assert.InDelta(t, 7.25, d.Price, 0.0001)
}

func TestParseDraft_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
		fields []string
	}{
		{
			name:   "missing name",
			mutate: func(v map[string]string) { v[FieldName] = "   " },
			fields: []string{FieldName},
		},
		{
			name:   "zero price",
			mutate: func(v map[string]string) { v[FieldPrice] = "0" },
			fields: []string{FieldPrice},
		},
		{
			name:   "unparseable price",
			mutate: func(v map[string]string) { v[FieldPrice] = "abc" },
			fields: []string{FieldPrice},
		},
		{
			name:   "NaN price",
			mutate: func(v map[string]string) { v[FieldPrice] = "NaN" },
			fields: []string{FieldPrice},
		},
		{
			name: "several fields",
			mutate: func(v map[string]string) {
				delete(v, FieldCategory)
				delete(v, FieldPictureURL)
			},
			fields: []string{FieldCategory, FieldPictureURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			tt.mutate(values)

			_, err := ParseDraft(values)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		FieldPrice: "preço deve ser maior que zero",
		FieldName:  "campo obrigatório",
	}}
	assert.Equal(t, "invalid product: name: campo obrigatório; price: preço deve ser maior que zero", err.Error())
}
