package api

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"cleanplan/internal/errors"
)

// statusFor maps error types to HTTP status codes
var statusFor = map[errors.Type]int{
	errors.TypeInput:    http.StatusBadRequest,
	errors.TypeConfig:   http.StatusUnprocessableEntity,
	errors.TypeNotFound: http.StatusNotFound,
	errors.TypeStorage:  http.StatusServiceUnavailable,
	errors.TypeInternal: http.StatusInternalServerError,
}

func httpErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		body.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)

		if status >= http.StatusInternalServerError {
			logger.Error("request error", zap.String("request_id", body.RequestID), zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("write error response", zap.Error(err))
		}
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	if e, ok := errors.As(err); ok {
		status, known := statusFor[e.Type]
		if !known {
			status = http.StatusInternalServerError
		}
		msg := e.Message
		if e.Cause != nil && e.Type == errors.TypeInput {
			msg = msg + ": " + e.Cause.Error()
		}
		return status, ErrorResponse{Code: string(e.Type), Message: msg}
	}

	var he *echo.HTTPError
	if stderrors.As(err, &he) {
		code := errors.TypeInput
		switch {
		case he.Code == http.StatusNotFound:
			code = errors.TypeNotFound
		case he.Code >= http.StatusInternalServerError:
			code = errors.TypeInternal
		}
		return he.Code, ErrorResponse{Code: string(code), Message: http.StatusText(he.Code)}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Code:    string(errors.TypeInternal),
		Message: "internal error",
	}
}

// recoverPanics turns a handler panic into an INTERNAL_ERROR response
func recoverPanics(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			return errors.Internal("panic recovered", err)
		},
	})
}
