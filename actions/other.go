package actions

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gitlab.com/missiondax-platform/ledger_api/logger"
)

// RequestError is the error envelope every failed request returns
type RequestError struct {
	Error string `json:"error"`
}

// Ping godoc
// swagger:route GET /ping misc ping
// Ping
//
// Ping the server
//
//	Responses:
//	  200: StringResp
func Ping(c *gin.Context) {
	c.JSON(200, "pong")
}

func getlog(c *gin.Context) zerolog.Logger {
	return logger.GetLogger(c)
}

func abortWithError(c *gin.Context, code int, message string) {
	l := getlog(c)
	l.Debug().Int("resp_code", code).Msg(message)
	c.AbortWithStatusJSON(code, RequestError{Error: message})
}

func getQueryAsInt(c *gin.Context, name string, def int) int {
	value := c.Query(name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func getParamAsUint64(c *gin.Context, name string) (uint64, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func getQueryAsUint64(c *gin.Context, name string) (uint64, bool) {
	value := c.Query(name)
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
