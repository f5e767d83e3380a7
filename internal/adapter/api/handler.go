package api

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"seedrec/internal/domain/entity"
	"seedrec/internal/domain/repository"
	"seedrec/internal/logging"
	"seedrec/internal/metrics"
	"seedrec/internal/usecase"
)

const (
	msgRateLimited      = "Rate limit exceeded. Please try again later."
	msgInvalidJSON      = "Invalid JSON in request body"
	msgMethodNotAllowed = "Method not allowed. Use POST."
	msgUnexpected       = "An unexpected error occurred. Please try again."
)

// ErrorResponse is the body of every failed call.
type ErrorResponse struct {
	Error     string           `json:"error"`
	Code      entity.ErrorCode `json:"code"`
	ResetTime int64            `json:"resetTime,omitempty"`
}

type RecommendHandler struct {
	orchestrator *usecase.Orchestrator
	limiter      repository.RateLimiter
	log          zerolog.Logger
}

func NewRecommendHandler(orch *usecase.Orchestrator, limiter repository.RateLimiter) *RecommendHandler {
	return &RecommendHandler{orchestrator: orch, limiter: limiter, log: logging.Component("api")}
}

func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	// 1. Rate limit
	status, err := h.limiter.Check(c.UserContext(), ClientKey(c))
	if err != nil {
		return err
	}
	setRateLimitHeaders(c, status)
	if !status.Allowed {
		retryAfter := int(math.Ceil(time.Until(status.ResetTime).Seconds()))
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(max(retryAfter, 1)))
		metrics.APIErrorsTotal.WithLabelValues(string(entity.CodeRateLimit)).Inc()
		return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
			Error:     msgRateLimited,
			Code:      entity.CodeRateLimit,
			ResetTime: status.ResetTime.UnixMilli(),
		})
	}

	// 2. Parse body
	var decoded any
	if err := json.Unmarshal(c.Body(), &decoded); err != nil {
		h.log.Debug().Err(err).Str("request_id", requestID(c)).Msg("rejecting malformed body")
		return h.respondError(c, entity.BadRequest(msgInvalidJSON))
	}
	body, _ := decoded.(map[string]any)
	if body == nil {
		body = map[string]any{}
	}

	// 3. Validate, generate, post-process
	resp, err := h.orchestrator.Execute(c.UserContext(), body)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// MethodNotAllowed answers every non-POST call on the recommend route.
func (h *RecommendHandler) MethodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, fiber.MethodPost)
	return c.Status(fiber.StatusMethodNotAllowed).JSON(ErrorResponse{
		Error: msgMethodNotAllowed,
		Code:  entity.CodeBadRequest,
	})
}

func (h *RecommendHandler) HandleSamples(c *fiber.Ctx) error {
	domain, ok := entity.ParseDomain(c.Params("domain"))
	if !ok {
		return h.respondError(c, entity.BadRequest(`Domain must be one of "songs", "movies" or "tvshows"`))
	}
	return c.JSON(fiber.Map{
		"domain": domain,
		"seeds":  domain.SampleSeeds(),
	})
}

// ClientKey derives the rate limit key: first X-Forwarded-For entry, then
// X-Real-IP, then "unknown". Header values alias fasthttp's request buffer,
// so the key is copied before it outlives the request.
func ClientKey(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.Clone(strings.TrimSpace(first))
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return strings.Clone(realIP)
	}
	return "unknown"
}

func setRateLimitHeaders(c *fiber.Ctx, st entity.RateLimitStatus) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(st.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(st.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(st.ResetTime.UnixMilli(), 10))
}

// respondError maps a business error to its status and safe message. Only
// *entity.Error messages reach the client.
func (h *RecommendHandler) respondError(c *fiber.Ctx, err error) error {
	var appErr *entity.Error
	if !errors.As(err, &appErr) {
		return err
	}
	metrics.APIErrorsTotal.WithLabelValues(string(appErr.Code)).Inc()
	return c.Status(appErr.Code.HTTPStatus()).JSON(ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}
