package handlers

import (
	"jobplanner/internal/bot/utils"
	"jobplanner/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		userID := sender.ID

		ctx.Logger.Info("user started bot",
			zap.Int64("user_id", userID),
			zap.String("username", sender.Username),
		)

		dbCtx, cancel := dbContext()
		defer cancel()

		user, err := ctx.Store.GetOrCreateUser(dbCtx, &models.User{
			ID:        userID,
			Username:  stringPtr(sender.Username),
			FirstName: stringPtr(sender.FirstName),
			LastName:  stringPtr(sender.LastName),
		})
		if err != nil {
			ctx.Logger.Error("get or create user failed", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if refreshUserMeta(user, sender) {
			if err := ctx.Store.UpdateUser(dbCtx, user); err != nil {
				ctx.Logger.Warn("failed to update user meta", zap.Int64("user_id", userID), zap.Error(err))
			}
		}

		if err := clearUserState(ctx, userID); err != nil {
			ctx.Logger.Warn("failed to clear user state", zap.Error(err))
		}

		return c.Send(
			utils.FormatWelcomeMessage(sender.FirstName),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}

// refreshUserMeta copies the sender's current names onto user and reports
// whether anything changed.
func refreshUserMeta(user *models.User, sender *tele.User) bool {
	changed := false
	for _, f := range []struct {
		dst   **string
		value string
	}{
		{&user.Username, sender.Username},
		{&user.FirstName, sender.FirstName},
		{&user.LastName, sender.LastName},
	} {
		if derefString(*f.dst) != f.value {
			*f.dst = stringPtr(f.value)
			changed = true
		}
	}
	return changed
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
