package handler

import (
	"errors"
	"strconv"

	"github.com/AnthoniusHendriyanto/account-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/account-service/internal/errors"
	"github.com/AnthoniusHendriyanto/account-service/internal/metrics"
	"github.com/AnthoniusHendriyanto/account-service/pkg/constant"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	opRegister = "register"
	opLogin    = "login"
	opDelete   = "delete"
	opList     = "list"

	resultSuccess            = "success"
	resultInvalidInput       = "invalid_input"
	resultDuplicate          = "duplicate_email"
	resultInvalidCredentials = "invalid_credentials"
	resultForbidden          = "forbidden"
	resultNotFound           = "not_found"
	resultError              = "error"
)

type AccountHandler struct {
	accounts *service.AccountService
	tokens   service.TokenGenerator
	validate *validator.Validate
	metrics  *metrics.Metrics
	l        *zap.Logger
}

func NewAccountHandler(accounts *service.AccountService, tokens service.TokenGenerator, m *metrics.Metrics, l *zap.Logger) *AccountHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AccountHandler{
		accounts: accounts,
		tokens:   tokens,
		validate: validator.New(),
		metrics:  m,
		l:        l,
	}
}

func outcome(c *fiber.Ctx, code, status int, message string, data any) error {
	return c.Status(code).JSON(dto.Outcome{Status: status, Message: message, Data: data})
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		h.metrics.Observe(opRegister, resultInvalidInput)
		return outcome(c, fiber.StatusBadRequest, constant.StatusFail, constant.MsgFailLower, constant.MsgInvalidInput)
	}
	if err := h.validate.Struct(input); err != nil {
		h.metrics.Observe(opRegister, resultInvalidInput)
		return outcome(c, fiber.StatusBadRequest, constant.StatusFail, constant.MsgFailLower, validationMessages(err))
	}

	input.IPAddress = c.IP()

	if _, err := h.accounts.Register(c.UserContext(), input); err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			h.metrics.Observe(opRegister, resultDuplicate)
			return outcome(c, fiber.StatusBadRequest, constant.StatusFail, constant.MsgFailLower, constant.MsgEmailInUse)
		}
		h.metrics.Observe(opRegister, resultError)
		h.l.Error("register failed", zap.Error(err))
		return outcome(c, fiber.StatusInternalServerError, constant.StatusError, constant.MsgFail, constant.MsgRegisterError)
	}

	h.metrics.Observe(opRegister, resultSuccess)
	return outcome(c, fiber.StatusOK, constant.StatusSuccess, constant.MsgSuccessLower, constant.MsgRegistered)
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		h.metrics.Observe(opLogin, resultInvalidInput)
		return outcome(c, fiber.StatusBadRequest, constant.StatusFail, constant.MsgFail, constant.MsgInvalidInput)
	}
	if err := h.validate.Struct(input); err != nil {
		h.metrics.Observe(opLogin, resultInvalidInput)
		return outcome(c, fiber.StatusBadRequest, constant.StatusFail, constant.MsgFail, validationMessages(err))
	}

	resp, err := h.accounts.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			h.metrics.Observe(opLogin, resultInvalidCredentials)
			return outcome(c, fiber.StatusUnauthorized, constant.StatusError, constant.MsgFail, constant.MsgInvalidLogin)
		}
		h.metrics.Observe(opLogin, resultError)
		h.l.Error("login failed", zap.Error(err))
		return outcome(c, fiber.StatusInternalServerError, constant.StatusError, constant.MsgFail, constant.MsgLoginError)
	}

	h.metrics.Observe(opLogin, resultSuccess)
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AccountHandler) DeleteUser(c *fiber.Ctx) error {
	targetID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		h.metrics.Observe(opDelete, resultInvalidInput)
		return outcome(c, fiber.StatusBadRequest, constant.StatusFail, constant.MsgFail, constant.MsgInvalidInput)
	}

	requester, ok := requesterEmail(c)
	if !ok {
		h.metrics.Observe(opDelete, resultForbidden)
		return outcome(c, fiber.StatusForbidden, constant.StatusFail, constant.MsgFail, constant.MsgDeleteDenied)
	}

	err = h.accounts.DeleteAccount(c.UserContext(), targetID, requester)
	switch {
	case err == nil:
		h.metrics.Observe(opDelete, resultSuccess)
		return outcome(c, fiber.StatusOK, constant.StatusSuccess, constant.MsgSuccess, constant.MsgUserDeleted)
	case errors.Is(err, autherror.ErrForbidden):
		h.metrics.Observe(opDelete, resultForbidden)
		return outcome(c, fiber.StatusForbidden, constant.StatusFail, constant.MsgFail, constant.MsgDeleteDenied)
	case errors.Is(err, autherror.ErrUserNotFound):
		h.metrics.Observe(opDelete, resultNotFound)
		return outcome(c, fiber.StatusNotFound, constant.StatusFail, constant.MsgFail, constant.MsgUserNotFound)
	default:
		h.metrics.Observe(opDelete, resultError)
		h.l.Error("delete failed", zap.Int64("id", targetID), zap.Error(err))
		return outcome(c, fiber.StatusInternalServerError, constant.StatusError, constant.MsgFail, constant.MsgDeleteError)
	}
}

func (h *AccountHandler) ListUsers(c *fiber.Ctx) error {
	requester, ok := requesterEmail(c)
	if !ok {
		h.metrics.Observe(opList, resultForbidden)
		return outcome(c, fiber.StatusForbidden, constant.StatusFail, constant.MsgFail, constant.MsgListDenied)
	}

	users, err := h.accounts.ListAccounts(c.UserContext(), requester)
	if err != nil {
		if errors.Is(err, autherror.ErrForbidden) {
			h.metrics.Observe(opList, resultForbidden)
			return outcome(c, fiber.StatusForbidden, constant.StatusFail, constant.MsgFail, constant.MsgListDenied)
		}
		h.metrics.Observe(opList, resultError)
		h.l.Error("list failed", zap.Error(err))
		return outcome(c, fiber.StatusInternalServerError, constant.StatusError, constant.MsgFail, constant.MsgListError)
	}

	h.metrics.Observe(opList, resultSuccess)
	return outcome(c, fiber.StatusOK, constant.StatusSuccess, constant.MsgSuccess, dto.NewUserOutputs(users))
}

func (h *AccountHandler) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// requesterEmail returns the token subject set by RequireToken. A
// requestingUserEmail query parameter, when present, must name the same
// account.
func requesterEmail(c *fiber.Ctx) (string, bool) {
	subject, _ := c.Locals(constant.LocalsRequesterEmail).(string)
	if subject == "" {
		return "", false
	}
	if claimed := c.Query("requestingUserEmail"); claimed != "" && claimed != subject {
		return "", false
	}
	return subject, true
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{constant.MsgInvalidInput}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field()+": failed "+fe.Tag())
	}
	return out
}
