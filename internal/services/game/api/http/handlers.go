package httpapi

import (
	"net/http"
	"strings"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	"github.com/louisbranch/abacus/internal/abacus/task"
	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
	platformi18n "github.com/louisbranch/abacus/internal/platform/i18n"
	"github.com/louisbranch/abacus/internal/random"
	"github.com/louisbranch/abacus/internal/services/shared/httpx"
	"github.com/louisbranch/abacus/internal/services/shared/i18nhttp"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) handlePlaceValues(w http.ResponseWriter, r *http.Request) error {
	tag := i18nhttp.ResolveTag(r)
	places := platformi18n.PlaceValues(tag)
	resp := placeValuesResponse{Locale: tag.String(), PlaceValues: make([]placeValueJSON, len(places))}
	for i, place := range places {
		resp.PlaceValues[i] = placeValueJSON{
			Name:      place.Name,
			LocalName: place.LocalName,
			Magnitude: place.Magnitude,
			Label:     place.Label,
		}
	}
	return httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleEncode(w http.ResponseWriter, r *http.Request) error {
	_, span := h.tracer.Start(r.Context(), "abacus.encode")
	defer span.End()

	var req encodeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		return err
	}
	maxPerRod := h.capOrDefault(req.Cap)
	result := placevalue.EncodeDetailed(*req.Value, maxPerRod)
	span.SetAttributes(
		attribute.Int("abacus.cap", maxPerRod),
		attribute.Bool("abacus.overflow", result.Overflow()),
	)
	if result.Overflow() {
		h.metrics.EncodeOverflowed()
	}
	return httpx.WriteJSON(w, http.StatusOK, encodeResponse{
		Counts:   result.Counts.Slice(),
		Value:    placevalue.Decode(result.Counts),
		Dropped:  result.Dropped,
		Overflow: result.Overflow(),
		Cap:      maxPerRod,
		Capacity: placevalue.Capacity(maxPerRod),
		Beads:    splitBeads(result.Counts),
	})
}

func (h *Handler) handleDecode(w http.ResponseWriter, r *http.Request) error {
	_, span := h.tracer.Start(r.Context(), "abacus.decode")
	defer span.End()

	var req decodeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		return err
	}
	counts, _ := placevalue.FromSlice(req.Counts)
	value := placevalue.Decode(counts)
	return httpx.WriteJSON(w, http.StatusOK, decodeResponse{Value: value, Formatted: placevalue.Format(value)})
}

func (h *Handler) handleTask(w http.ResponseWriter, r *http.Request) error {
	_, span := h.tracer.Start(r.Context(), "abacus.new_task")
	defer span.End()

	var req taskRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		return err
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		return err
	}
	seed, source, err := random.ResolveSeed(req.Seed, h.seeds)
	if err != nil {
		return err
	}
	taskID, err := h.ids()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "assign task id", err)
	}

	generated := task.GenerateWithSeed(mode, seed)
	generated.ID = taskID
	span.SetAttributes(attribute.String("abacus.mode", mode.String()), attribute.String("abacus.seed_source", source))
	h.metrics.TaskGenerated(mode.String())

	guide := platformi18n.Instruction(i18nhttp.ResolveTag(r), mode)
	inputs := generated.Inputs
	if inputs == nil {
		inputs = []float64{}
	}
	return httpx.WriteJSON(w, http.StatusCreated, taskResponse{
		ID:             generated.ID,
		Mode:           generated.Mode.String(),
		Operand1:       generated.Operand1,
		Operand2:       generated.Operand2,
		ExpectedAnswer: generated.ExpectedAnswer,
		Prompt:         generated.Prompt,
		Seed:           generated.Seed,
		SeedSource:     source,
		Inputs:         inputs,
		Instruction:    instructionJSON{Heading: guide.Heading, Hint: guide.Hint},
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) error {
	_, span := h.tracer.Start(r.Context(), "abacus.verify")
	defer span.End()

	var req verifyRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		return err
	}

	mode := task.ModeUnspecified
	var feedback task.Feedback
	// A task reference wins over a bare expected value.
	if req.Task != nil {
		parsed, err := parseMode(req.Task.Mode)
		if err != nil {
			return err
		}
		seed, _, err := random.ResolveSeed(req.Task.Seed, h.seeds)
		if err != nil {
			return err
		}
		mode = parsed
		feedback = task.Check(task.GenerateWithSeed(mode, seed), *req.Answer)
	} else {
		feedback = task.CheckExpected(*req.Answer, *req.Expected)
	}

	span.SetAttributes(attribute.String("abacus.mode", mode.String()), attribute.Bool("abacus.correct", feedback.Correct))
	h.metrics.Verified(mode.String(), feedback.Correct)
	return httpx.WriteJSON(w, http.StatusOK, verifyResponse{
		Correct:   feedback.Correct,
		Expected:  feedback.Expected,
		Submitted: feedback.Submitted,
		Message:   platformi18n.FeedbackMessage(i18nhttp.ResolveTag(r), feedback),
	})
}

func (h *Handler) handleBeads(w http.ResponseWriter, r *http.Request) error {
	op, ok := placevalue.ParseOperation(r.PathValue("op"))
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeBeadOperationUnsupported, "unsupported bead operation",
			map[string]string{"Operation": r.PathValue("op"), "Operations": strings.Join(placevalue.OperationNames(), ", ")})
	}
	_, span := h.tracer.Start(r.Context(), "abacus.beads."+string(op))
	defer span.End()

	var req beadRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		return err
	}
	maxPerRod := h.capOrDefault(req.Cap)
	counts, _ := placevalue.FromSlice(req.Counts)
	next := placevalue.Edit(counts, op, *req.Rod, req.Count, maxPerRod)
	span.SetAttributes(attribute.Int("abacus.rod", *req.Rod), attribute.Int("abacus.cap", maxPerRod))
	return httpx.WriteJSON(w, http.StatusOK, beadResponse{
		Counts:   next.Slice(),
		Value:    placevalue.Decode(next),
		Cap:      maxPerRod,
		Capacity: placevalue.Capacity(maxPerRod),
		Beads:    splitBeads(next),
	})
}

func splitBeads(counts placevalue.RodCount) []rodBeadsJSON {
	split := placevalue.Split(counts)
	out := make([]rodBeadsJSON, len(split))
	for i, bead := range split {
		out[i] = rodBeadsJSON{Upper: bead.Upper, Lower: bead.Lower}
	}
	return out
}

func parseMode(value string) (task.Mode, error) {
	mode, err := task.ParseMode(value)
	if err != nil {
		return task.ModeUnspecified, apperrors.WrapWithMetadata(apperrors.CodeTaskInvalidMode, "parse task mode",
			map[string]string{"Mode": value, "Modes": strings.Join(task.ModeNames(), ", ")}, err)
	}
	return mode, nil
}
