package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Eursukkul/campsite-reservation/internal/dto"
	"github.com/Eursukkul/campsite-reservation/internal/httputil"
	"github.com/labstack/echo/v4"
)

// ErrorHandler writes every failure as {"message": ...}. Errors raised by
// echo itself keep their status; everything else goes through mapper.
func ErrorHandler(mapper *httputil.ErrorMapper, log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var code int
		var msg string

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = fmt.Sprint(he.Message)
			}
		} else {
			info := mapper.Map(err)
			code, msg = info.Status, info.Message
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"status", code,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, dto.ErrorResponse{Message: msg})
	}
}
