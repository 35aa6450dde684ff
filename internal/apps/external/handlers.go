// Package external exposes the sentiment and quote integrations. Both fall
// back to local data when the remote provider is absent or failing.
package external

import (
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/quotes"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/sentiment"
	"github.com/gofiber/fiber/v2"
)

const maxTextLen = 5000

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type AnalyzeResponse struct {
	Sentiment sentiment.Result `json:"sentiment"`
	Source    sentiment.Source `json:"source"`
}

type QuotesResponse struct {
	Quotes []quotes.Quote `json:"quotes"`
	Source quotes.Source  `json:"source"`
}

type ExternalHandler struct {
	analyzer *sentiment.Analyzer
	quotes   *quotes.Service
}

func NewExternalHandler(analyzer *sentiment.Analyzer, q *quotes.Service) *ExternalHandler {
	return &ExternalHandler{analyzer: analyzer, quotes: q}
}

func (h *ExternalHandler) Analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Text is required for sentiment analysis"))
	}
	if utf8.RuneCountInString(req.Text) > maxTextLen {
		var verr dto.ValidationError
		verr.Add("text", "Text cannot be more than 5000 characters")
		_, werr := dto.AsValidation(c, &verr)
		return werr
	}

	result, source := h.analyzer.Analyze(c.UserContext(), req.Text)
	return c.JSON(dto.OK(AnalyzeResponse{Sentiment: result, Source: source}))
}

func (h *ExternalHandler) Quotes(c *fiber.Ctx) error {
	list, source := h.quotes.ForMood(c.UserContext(), c.Query("mood"), c.Query("sentiment"))
	return c.JSON(dto.OK(QuotesResponse{Quotes: list, Source: source}))
}
