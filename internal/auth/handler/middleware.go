package handler

import (
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/account-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireToken authenticates the bearer token and stores its subject in
// c.Locals(constant.LocalsRequesterEmail). The subject and the email claim
// must agree.
func (h *AccountHandler) RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return h.unauthorized(c)
		}

		subject, err := h.tokens.DecodeSubject(token)
		if err != nil {
			h.l.Debug("bearer token rejected", zap.Error(err))
			return h.unauthorized(c)
		}
		email, err := h.tokens.DecodeClaim(token, constant.EmailClaim)
		if err != nil || email != subject {
			return h.unauthorized(c)
		}

		c.Locals(constant.LocalsRequesterEmail, subject)
		return c.Next()
	}
}

func (h *AccountHandler) unauthorized(c *fiber.Ctx) error {
	return outcome(c, fiber.StatusUnauthorized, constant.StatusError, constant.MsgFail, constant.MsgUnauthorized)
}

// RequestLogger logs one line per request. It expects the requestid
// middleware to run first.
func RequestLogger(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("ip", c.IP()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		if status >= fiber.StatusInternalServerError {
			l.Error("request", fields...)
		} else {
			l.Info("request", fields...)
		}
		return err
	}
}
