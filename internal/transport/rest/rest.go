package rest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const msgInvalidBody = "Invalid request body"

var registerOnce sync.Once

// RegisterValidation makes validation errors report JSON field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// BindJSON decodes and validates the request body into req. A missing
// required field yields requiredMsg. Other failures name the field.
func BindJSON(c *gin.Context, req any, requiredMsg string) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(apperror.KindValidation, msgInvalidBody, err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperror.Validation(requiredMsg)
		}
	}
	return apperror.Validation(fieldMessage(verrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be empty", fe.Field())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// WriteError answers with the status and message of a classified error.
// Unclassified errors are logged and answered with fallback.
func WriteError(c *gin.Context, log logger.ZapLogger, err error, fallback string) {
	status := apperror.HTTPStatus(err)
	if apperror.KindOf(err) == apperror.KindUnknown {
		log.Error(fallback,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, v1.ErrorResponse{Error: apperror.Message(err, fallback)})
}
