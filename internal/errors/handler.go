package errors

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Handler returns the echo error handler that writes every failure as
// {"error": message}. In development mode the response also carries a stack
// trace; in production it never does, whatever the channel.
func Handler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		classified, channel := Classify(err)

		if channel == ChannelFatal {
			log.Printf("ERROR %d %s %s: %s\n%s",
				classified.StatusCode, c.Request().Method, c.Request().RequestURI, classified.Message, debug.Stack())
		} else {
			log.Printf("INFO %d %s %s: %s",
				classified.StatusCode, c.Request().Method, c.Request().RequestURI, classified.Message)
		}

		body := echo.Map{"error": classified.Message}
		if development {
			body["stack"] = string(debug.Stack())
		}

		if c.Request().Method == http.MethodHead {
			if writeErr := c.NoContent(classified.StatusCode); writeErr != nil {
				log.Printf("write error response: %v", writeErr)
			}
			return
		}
		if writeErr := c.JSON(classified.StatusCode, body); writeErr != nil {
			log.Printf("write error response: %v", writeErr)
		}
	}
}
