package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"leonine/shared/constant"
	"leonine/shared/failure"

	val "github.com/go-playground/validator/v10"
)

// request bodies are small JSON documents
const maxBodyBytes = 1 << 20

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// report fields by their JSON names, which is what clients send
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	mustRegister("rfc3339", func(fl val.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		_, err := time.Parse(constant.DateFormat, value)

		return err == nil
	})
	mustRegister("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
}

func mustRegister(tag string, fn val.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate decodes one JSON document from r into data and validates it.
// Both decode and validation problems come back as 400 failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(io.LimitReader(r, maxBodyBytes)).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
