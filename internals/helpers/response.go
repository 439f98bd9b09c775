package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationFieldErrors mengubah validator.ValidationErrors → map[field][]pesan.
// Key field memakai nama json (lihat RegisterJSONTagName).
func ValidationFieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		if err != nil {
			out["_"] = []string{err.Error()}
		}
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "min", "gte":
		return "minimal " + fe.Param()
	case "max", "lte":
		return "maksimal " + fe.Param()
	case "oneof":
		return "harus salah satu dari: " + fe.Param()
	case "uuid", "uuid4":
		return "harus UUID valid"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}

// NewValidator: validator dengan nama field diambil dari tag json.
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterJSONTagName(v)
	return v
}

func RegisterJSONTagName(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// BodyParseError: body JSON rusak → 400 seragam
func BodyParseError(c *fiber.Ctx) error {
	return JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
}
