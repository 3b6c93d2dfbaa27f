package handler

import (
	"errors"
	"net/http"
	"reflect"

	"garagedesk/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal must register as numeric or tags like min=0 and gt=0
	// panic with "Bad field type decimal.Decimal".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate binds the JSON body and runs validator tags. On failure it
// writes the error response and returns false; the caller must not write
// another one.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		} else {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return false
	}
	return true
}
