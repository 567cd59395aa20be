package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"venuebook/shared/constant"
	"venuebook/shared/failure"

	"github.com/gabriel-vasile/mimetype"
	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerMimetypeValidation sniffs uploaded files rather than trusting the
// part header. Plain strings are compared as content types.
func registerMimetypeValidation(field val.FieldLevel) bool {
	allowedTypes := strings.Split(field.Param(), " ")

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return fileMatches(&v, allowedTypes)
	case string:
		return v != constant.Empty && slices.Contains(allowedTypes, v)
	}

	return false
}

func fileMatches(header *multipart.FileHeader, allowedTypes []string) bool {
	file, err := header.Open()
	if err != nil {
		return false
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return false
	}

	return slices.ContainsFunc(allowedTypes, detected.Is)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = int(v.Size)
	case string:
		fileSize = len(v)
	case int64:
		fileSize = int(v)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

// registerISODateValidation accepts a calendar date or a full RFC 3339 date-time.
func registerISODateValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if _, err := time.Parse(constant.ReservationLayout, str); err == nil {
		return true
	}

	_, err := time.Parse(time.RFC3339, str)

	return err == nil
}

func tagName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return fld.Name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(tagName)

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("mimetypes", registerMimetypeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("maxfilesize", registerFileSizeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("isodate", registerISODateValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, a bad request failure listing every violation is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		return failure.Validation(fieldErrors(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		return failure.Validation(fieldErrors(err)) //nolint:wrapcheck
	}

	return nil
}
