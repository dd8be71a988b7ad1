package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupValidatorOnce sync.Once

// setupValidator reports JSON/form field names in validation errors and
// registers the vehicle year rules on gin's validator.
func setupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("minvehicleyear", minVehicleYear)
		_ = v.RegisterValidation("notfutureyear", notFutureYear)
	})
}

func minVehicleYear(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return field.Int() >= domain.MinVehicleYear
	default:
		return false
	}
}

// notFutureYear allows at most next calendar year, so upcoming model years
// can be entered ahead of time.
func notFutureYear(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return field.Int() <= int64(time.Now().Year()+1)
	default:
		return false
	}
}

// writeBindError renders validator failures field by field; malformed input
// gets a single generic message.
func writeBindError(c *gin.Context, err error, malformed string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": malformed})
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = reason(fe)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": errValidationFailed, "fields": fields})
}

func reason(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "minvehicleyear":
		return fmt.Sprintf("must be at least %d", domain.MinVehicleYear)
	case "notfutureyear":
		return fmt.Sprintf("must not be later than %d", time.Now().Year()+1)
	default:
		return "is invalid"
	}
}
