package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/layout"
	"github.com/rpupo63/portfolio-studio-backend/models"
)

const maxJSONBody = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("size_tag", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || layout.Size(s).Valid()
	})
	v.RegisterValidation("media_type", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := models.ParseMediaType(s)
		return err == nil
	})
	v.RegisterValidation("layout_mode", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := models.ParseLayoutMode(s)
		return err == nil
	})

	return v
}

// validationErrors returns a message per failing field, or nil.
func validationErrors(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "email":
			out[field] = "Invalid email format"
		case "min", "gte":
			out[field] = "Value must be at least " + fe.Param()
		case "max", "lte":
			out[field] = "Value must be at most " + fe.Param()
		case "url", "http_url":
			out[field] = "Invalid URL format"
		case "hexcolor":
			out[field] = "Invalid colour, expected #rgb or #rrggbb"
		case "size_tag":
			out[field] = "Invalid size. Must be: square, wide, tall, or big"
		case "media_type":
			out[field] = "Invalid media type. Must be: image or video"
		case "layout_mode":
			out[field] = "Invalid layout mode. Must be: collage or stacked"
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure
// it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, responder Responder, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
		case errors.Is(err, io.EOF):
			responder.WriteError(w, errs.NewBadRequestError("request body is required"))
		default:
			responder.WriteError(w, errs.NewInvalidJSONError(err))
		}
		return false
	}

	if fields := validationErrors(dst); fields != nil {
		responder.WriteValidationError(w, fields)
		return false
	}
	return true
}
