package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
)

const maxBodyBytes = 1 << 16

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads one JSON object from the body into dst and validates it.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.CodeRequestMalformed, "decode request body", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return apperrors.New(apperrors.CodeRequestMalformed, "request body must hold a single JSON object")
	}
	if err := h.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "validate request", err)
	}
	first := fieldErrs[0]
	if first.Field() == "counts" && first.Tag() == "len" {
		got := 0
		if v := reflect.ValueOf(first.Value()); v.Kind() == reflect.Slice {
			got = v.Len()
		}
		return apperrors.WrapWithMetadata(
			apperrors.CodeRodCountInvalidLength,
			fmt.Sprintf("counts has %d entries", got),
			map[string]string{"Got": strconv.Itoa(got)},
			err,
		)
	}
	return apperrors.WrapWithMetadata(
		apperrors.CodeInvalidArgument,
		fmt.Sprintf("field %s failed %s", first.Namespace(), first.Tag()),
		map[string]string{"Field": first.Field()},
		err,
	)
}
