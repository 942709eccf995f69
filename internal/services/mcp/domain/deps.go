package domain

import (
	"errors"
	"strings"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
	platformi18n "github.com/louisbranch/abacus/internal/platform/i18n"
	"github.com/louisbranch/abacus/internal/platform/id"
	"github.com/louisbranch/abacus/internal/platform/otel"
	"github.com/louisbranch/abacus/internal/platform/telemetry/metrics"
	"github.com/louisbranch/abacus/internal/random"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
)

// Deps carries the collaborators shared by every tool handler. Zero values
// select production defaults.
type Deps struct {
	DefaultCap int
	Seeds      func() (int64, error)
	IDs        func() (string, error)
	// Metrics may be nil.
	Metrics *metrics.Collectors
}

func (d Deps) withDefaults() Deps {
	if d.DefaultCap == 0 {
		d.DefaultCap = placevalue.DefaultCap
	}
	d.DefaultCap = placevalue.ClampCap(d.DefaultCap)
	if d.Seeds == nil {
		d.Seeds = random.NewSeed
	}
	if d.IDs == nil {
		d.IDs = id.NewID
	}
	return d
}

func (d Deps) capOrDefault(value *int) int {
	if value == nil {
		return d.DefaultCap
	}
	return placevalue.ClampCap(*value)
}

var tracer trace.Tracer = otel.Tracer("mcp/domain")

// resolveLocale maps an optional locale argument to a supported tag.
func resolveLocale(value string) language.Tag {
	if strings.TrimSpace(value) == "" {
		return platformi18n.DefaultTag()
	}
	if tag, ok := platformi18n.ParseTag(value); ok {
		return tag
	}
	return platformi18n.DefaultTag()
}

// toolError carries a localized message to the client while keeping the
// domain error in the chain.
type toolError struct {
	message string
	cause   error
}

func (e *toolError) Error() string { return e.message }
func (e *toolError) Unwrap() error { return e.cause }

func localize(err error, tag language.Tag) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return err
	}
	return &toolError{
		message: string(appErr.Code) + ": " + appErr.LocalizedMessage(tag.String()),
		cause:   err,
	}
}
