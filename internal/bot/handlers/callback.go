package handlers

import (
	"errors"
	"fmt"
	"strings"

	"jobplanner/internal/bot/utils"
	"jobplanner/internal/models"
	"jobplanner/internal/storage/postgres"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const actionFilterDelete = "filter_delete"

// HandleCallback processes all callback queries from inline buttons
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			ctx.Logger.Warn("callback is nil")
			return nil
		}

		action, arg := parseCallbackData(cb.Data)

		ctx.Logger.Debug("routing callback",
			zap.String("action", action),
			zap.String("arg", arg),
			zap.Int64("user_id", c.Sender().ID),
		)

		switch action {
		case actionFilterDelete:
			return handleFilterDelete(ctx, c, arg)
		case utils.ActionSave:
			return handleSave(ctx, c, arg)
		case utils.ActionUnsave:
			return handleUnsave(ctx, c, arg)
		case utils.ActionJobsPage:
			return handleJobsPage(ctx, c, arg)
		case utils.ActionExport:
			return handleExport(ctx, c, arg)
		case utils.ActionClearSaved:
			return handleClearSaved(ctx, c, arg)
		case utils.ActionNoop:
			return c.Respond()
		default:
			ctx.Logger.Warn("unknown callback action",
				zap.String("action", action),
				zap.String("data", cb.Data),
			)
			return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown action"})
		}
	}
}

// parseCallbackData splits "action:arg". Telebot prefixes data built with
// ReplyMarkup.Data with \f; the value may itself contain colons.
func parseCallbackData(data string) (action, arg string) {
	data = strings.TrimPrefix(data, "\f")
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

// ==================== Filter Management ====================

func handleFilterDelete(ctx *Context, c tele.Context, filterType string) error {
	if !models.IsValidFilterType(filterType) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid format"})
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	err := ctx.Store.DeleteFilter(dbCtx, c.Sender().ID, filterType)
	if err != nil && !errors.Is(err, postgres.ErrFilterNotFound) {
		ctx.Logger.Error("failed to delete filter", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Failed to delete"})
	}

	text := fmt.Sprintf("✅ Filter *%s* removed", utils.EscapeMarkdown(utils.FilterDisplayName(filterType)))
	if err := c.Edit(text, tele.ModeMarkdownV2); err != nil {
		ctx.Logger.Warn("failed to edit message", zap.Error(err))
		if err := c.Send(text, utils.FiltersMenuKeyboard(), tele.ModeMarkdownV2); err != nil {
			return err
		}
	}

	return c.Respond(&tele.CallbackResponse{Text: "✅ Removed"})
}

// InlineFiltersKeyboard has one remove button per set filter.
func InlineFiltersKeyboard(filters map[string]string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var rows []tele.Row
	for _, filterType := range models.FilterTypes {
		if _, ok := filters[filterType]; !ok {
			continue
		}
		rows = append(rows, menu.Row(menu.Data(
			"❌ "+utils.FilterDisplayName(filterType),
			utils.CallbackData(actionFilterDelete, filterType),
		)))
	}

	menu.Inline(rows...)
	return menu
}
