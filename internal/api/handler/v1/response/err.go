package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"status_code"`
	Msg        string `json:"msg"`

	err error
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        msg,
	}
}

// RenderErr writes the error as JSON. Internal errors are logged with the
// underlying cause but never leak it to the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.StatusCode == http.StatusInternalServerError {
		zap.L().Error("internal server error",
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(e.err),
		)
	}

	ctx.JSON(e.StatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        "wrong credentials",
		err:        err,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Msg:        err.Error(),
	}
}

func ErrNotFound(object, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Msg:        fmt.Sprintf("%v with %v (%v) is not found", object, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Msg:        err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        "internal server error",
		err:        err,
	}
}
