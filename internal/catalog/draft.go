package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Form field names, shared by the TUI form and the CLI flags.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldPictureURL  = "pictureUrl"
)

// Draft is the payload of a product that does not exist yet.
type Draft struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required"`
	PictureURL  string  `json:"pictureUrl" validate:"required"`
}

// Product turns the draft into a product with the given ID.
func (d Draft) Product(id int) Product {
	return Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		PictureURL:  d.PictureURL,
	}
}

// ValidationError lists the offending fields of a draft, keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid product: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func draftValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return jsonName(f.Tag.Get("json"))
		})
	})
	return validate
}

// Validate checks the draft; the returned error is a *ValidationError.
func (d Draft) Validate() error {
	if math.IsNaN(d.Price) || math.IsInf(d.Price, 0) {
		return &ValidationError{Fields: map[string]string{FieldPrice: "preço inválido"}}
	}

	err := draftValidator().Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe.Field(), fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(field, tag string) string {
	switch {
	case field == FieldPrice:
		return "preço deve ser maior que zero"
	case tag == "required":
		return "campo obrigatório"
	default:
		return "valor inválido"
	}
}

// ParseDraft builds a draft from raw form values. Values are trimmed and the
// price accepts either "." or "," as decimal separator. An unparseable price is
// reported by Validate, not here, so the caller gets every field error at once.
func ParseDraft(values map[string]string) (Draft, error) {
	get := func(key string) string { return strings.TrimSpace(values[key]) }

	d := Draft{
		Name:        get(FieldName),
		Description: get(FieldDescription),
		Category:    get(FieldCategory),
		PictureURL:  get(FieldPictureURL),
	}

	if raw := get(FieldPrice); raw != "" {
		price, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err == nil {
			d.Price = price
		}
	}

	return d, d.Validate()
}

func jsonName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}
