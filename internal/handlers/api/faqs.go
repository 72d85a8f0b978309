package api

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"edunex/internal/db"
	"edunex/internal/models"
	"edunex/internal/validation"
)

// FAQStore is the FAQ table as seen by the API.
type FAQStore interface {
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	GetFAQByID(ctx context.Context, id int64) (*models.FAQ, error)
	CreateFAQ(ctx context.Context, f *models.FAQ) error
	UpdateFAQ(ctx context.Context, f *models.FAQ) error
	DeleteFAQ(ctx context.Context, id int64) error
}

// FAQHandler serves FAQ answers to the chat and FAQ CRUD to admins.
type FAQHandler struct {
	db     FAQStore
	logger *zap.Logger
}

// NewFAQHandler creates a new API FAQ handler.
func NewFAQHandler(database FAQStore, logger *zap.Logger) *FAQHandler {
	return &FAQHandler{db: database, logger: logger}
}

// Answer handles POST /api/faq/get {id}. It answers {"answer": null} for a
// missing row.
func (h *FAQHandler) Answer(c fiber.Ctx) error {
	var body struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	faq, err := h.db.GetFAQByID(c.Context(), body.ID)
	if err != nil {
		if errors.Is(err, db.ErrFAQNotFound) {
			return c.JSON(models.FAQAnswerResponse{})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(models.FAQAnswerResponse{Answer: &faq.Answer})
}

// List returns every FAQ, most recently updated first.
func (h *FAQHandler) List(c fiber.Ctx) error {
	faqs, err := h.db.ListFAQs(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch FAQs")
	}
	return jsonSuccess(c, faqs)
}

// Create adds an FAQ.
func (h *FAQHandler) Create(c fiber.Ctx) error {
	var in validation.FAQInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	faq, msg := validation.NormalizeFAQ(in)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if err := h.db.CreateFAQ(c.Context(), faq); err != nil {
		h.logger.Error("failed to create FAQ", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to create FAQ")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   faq,
	})
}

// Update replaces the keywords and answer of an FAQ.
func (h *FAQHandler) Update(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid FAQ id")
	}

	var in validation.FAQInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	faq, msg := validation.NormalizeFAQ(in)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	faq.ID = id

	if err := h.db.UpdateFAQ(c.Context(), faq); err != nil {
		if errors.Is(err, db.ErrFAQNotFound) {
			return jsonError(c, fiber.StatusNotFound, "FAQ not found")
		}
		h.logger.Error("failed to update FAQ", zap.Int64("id", id), zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to update FAQ")
	}

	return jsonSuccess(c, faq)
}

// Delete removes an FAQ.
func (h *FAQHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid FAQ id")
	}

	if err := h.db.DeleteFAQ(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrFAQNotFound) {
			return jsonError(c, fiber.StatusNotFound, "FAQ not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete FAQ")
	}

	return jsonSuccess(c, nil)
}
