package middleware

import (
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const maxLoggedText = 64

// Logger logs every update with its sender, kind and handling time.
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			err := next(c)

			kind, text := describeUpdate(c)
			fields := []zap.Field{
				zap.String("type", kind),
				zap.String("text", text),
				zap.Duration("duration", time.Since(start)),
			}
			if user := c.Sender(); user != nil {
				fields = append(fields,
					zap.Int64("user_id", user.ID),
					zap.String("username", user.Username),
				)
			}

			if err != nil {
				logger.Error("handler error", append(fields, zap.Error(err))...)
			} else {
				logger.Info("request handled", fields...)
			}

			return err
		}
	}
}

// describeUpdate reports whether the update is a callback or a message and
// a shortened copy of its payload.
func describeUpdate(c tele.Context) (kind, text string) {
	switch {
	case c.Callback() != nil:
		kind, text = "callback", c.Callback().Data
	case c.Message() != nil:
		kind, text = "message", c.Message().Text
	default:
		return "other", ""
	}

	if utf8.RuneCountInString(text) > maxLoggedText {
		text = string([]rune(text)[:maxLoggedText]) + "…"
	}
	return kind, text
}
