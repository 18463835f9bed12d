package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"smartstock/internal/apierror"
	"smartstock/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses the named uint path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional uint query parameter.
func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

// writeError maps the typed error taxonomy onto HTTP responses. Anything
// outside the taxonomy is treated as an internal error and logged upstream by
// the ErrorHandler middleware.
func writeError(c *gin.Context, err error) {
	var (
		validation   *apperr.ValidationError
		notFound     *apperr.NotFoundError
		capacity     *apperr.CapacityExceededError
		insufficient *apperr.InsufficientStockError
		invariant    *apperr.InvariantViolationError
	)
	switch {
	case errors.As(err, &validation):
		resp := apierror.New(validation.Error())
		resp.Field = validation.Field
		c.JSON(http.StatusBadRequest, resp)
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &capacity):
		c.JSON(http.StatusConflict, apierror.NewQuantities(capacity.Error(), capacity.Available, capacity.Requested))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.NewQuantities(insufficient.Error(), insufficient.Available, insufficient.Requested))
	case errors.As(err, &invariant):
		c.JSON(http.StatusInternalServerError, apierror.New(invariant.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
