package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"jobplanner/internal/bot/utils"
	"jobplanner/internal/filter"
	"jobplanner/internal/models"
	"jobplanner/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	defaultJobsPerPage = 5
	cardSendDelay      = 300 * time.Millisecond
)

// /jobs
func HandleJobs(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := dbContext()
		defer cancel()

		filtersMap, err := ctx.Store.GetFiltersMap(dbCtx, userID)
		if err != nil {
			ctx.Logger.Error("failed to get user filters", zap.Error(err))
			return c.Reply("😔 Failed to load your filters")
		}

		criteria, err := buildCriteria(filtersMap)
		if err != nil {
			ctx.Logger.Warn("stored filters are invalid",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return c.Reply("⚠️ Your saved filters are invalid. Please reset them with /filters")
		}

		matched, err := criteria.Filter(ctx.Catalog.Jobs(), ctx.now())
		if err != nil {
			ctx.Logger.Warn("criteria rejected",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return c.Reply("⚠️ " + criteriaErrorMessage(err))
		}

		ctx.Logger.Info("jobs filtered",
			zap.Int64("user_id", userID),
			zap.Int("catalog", ctx.Catalog.Len()),
			zap.Time("catalog_loaded_at", ctx.Catalog.LoadedAt()),
			zap.Int("matched", len(matched)),
		)

		cacheCtx, cacheCancel := cacheContext()
		defer cacheCancel()

		if len(matched) == 0 {
			if err := ctx.Cache.DeleteResults(cacheCtx, userID); err != nil {
				ctx.Logger.Warn("failed to drop stale results", zap.Int64("user_id", userID), zap.Error(err))
			}
			return c.Send(utils.FormatNoJobsMessage(), tele.ModeMarkdownV2)
		}

		ids := jobIDs(matched)

		if err := ctx.Cache.SetResults(cacheCtx, userID, ids); err != nil {
			ctx.Logger.Warn("failed to cache results", zap.Int64("user_id", userID), zap.Error(err))
		}

		return sendJobsPage(ctx, c, ids, 0)
	}
}

func criteriaErrorMessage(err error) string {
	var rangeErr *filter.RangeError
	var parseErr *filter.ParseError
	switch {
	case errors.As(err, &rangeErr):
		return fmt.Sprintf("Invalid %s range. Please fix it with /filters", rangeErr.Field)
	case errors.As(err, &parseErr):
		return "Invalid date in your filters. Please fix it with /filters"
	default:
		return "Your filters are invalid. Please fix them with /filters"
	}
}

func jobIDs(jobs []models.JobRecord) []string {
	ids := make([]string, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
	}
	return ids
}

// pageBounds clamps page into range and returns the slice bounds for it.
func pageBounds(total, perPage, page int) (start, end, current, pages int) {
	if perPage <= 0 {
		perPage = defaultJobsPerPage
	}

	pages = (total + perPage - 1) / perPage
	if pages == 0 {
		return 0, 0, 0, 0
	}

	current = min(max(page, 0), pages-1)
	start = current * perPage
	end = min(start+perPage, total)
	return start, end, current, pages
}

// sendJobsPage replaces the previously shown page with page of ids.
func sendJobsPage(ctx *Context, c tele.Context, ids []string, page int) error {
	userID := c.Sender().ID

	start, end, page, pages := pageBounds(len(ids), ctx.Config.JobsPerPage, page)
	jobs := ctx.Catalog.Lookup(ids[start:end])

	cleanupPageMessages(ctx, c, userID)

	summary, err := c.Bot().Send(
		c.Chat(),
		utils.FormatJobsSummary(len(ids), page, pages),
		&tele.SendOptions{ParseMode: tele.ModeMarkdownV2},
	)
	if err != nil {
		ctx.Logger.Error("failed to send jobs summary", zap.Error(err))
		return c.Reply("😔 Failed to send jobs")
	}

	messageIDs := []int{summary.ID}
	messageIDs = append(messageIDs, deliverJobCards(ctx, c, jobs, savedSet(ctx, userID, jobs))...)

	if pages > 1 {
		controls, err := c.Bot().Send(
			c.Chat(),
			fmt.Sprintf("📄 Page %d of %d", page+1, pages),
			utils.InlinePaginationKeyboard(page, pages),
		)
		if err != nil {
			ctx.Logger.Warn("failed to send pagination controls", zap.Error(err))
		} else {
			messageIDs = append(messageIDs, controls.ID)
		}
	}

	rememberPageMessages(ctx, userID, messageIDs)
	return nil
}

// savedSet reports which of jobs the user has already saved.
func savedSet(ctx *Context, userID int64, jobs []models.JobRecord) map[string]bool {
	dbCtx, cancel := dbContext()
	defer cancel()

	saved := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		ok, err := ctx.Store.IsJobSaved(dbCtx, userID, job.ID)
		if err != nil {
			ctx.Logger.Warn("failed to check saved job", zap.String("job_id", job.ID), zap.Error(err))
			continue
		}
		saved[job.ID] = ok
	}
	return saved
}

func deliverJobCards(ctx *Context, c tele.Context, jobs []models.JobRecord, saved map[string]bool) []int {
	var messageIDs []int

	for i, job := range jobs {
		sent, err := c.Bot().Send(
			c.Chat(),
			utils.FormatJob(job),
			&tele.SendOptions{
				ParseMode:             tele.ModeMarkdownV2,
				ReplyMarkup:           utils.InlineJobKeyboard(job, saved[job.ID]),
				DisableWebPagePreview: true,
			},
		)
		if err != nil {
			ctx.Logger.Error("failed to send job",
				zap.Int("index", i),
				zap.Int64("user_id", c.Sender().ID),
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			continue
		}

		messageIDs = append(messageIDs, sent.ID)

		if i < len(jobs)-1 {
			time.Sleep(cardSendDelay)
		}
	}

	return messageIDs
}

func handleJobsPage(ctx *Context, c tele.Context, arg string) error {
	page, err := strconv.Atoi(arg)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid format"})
	}

	userID := c.Sender().ID

	cacheCtx, cancel := cacheContext()
	defer cancel()

	ids, err := ctx.Cache.GetResults(cacheCtx, userID)
	if errors.Is(err, redis.ErrCacheMiss) {
		return c.Respond(&tele.CallbackResponse{Text: "⌛ Results expired, run /jobs again", ShowAlert: true})
	}
	if err != nil {
		ctx.Logger.Error("failed to get cached results", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Error"})
	}

	if err := c.Respond(); err != nil {
		ctx.Logger.Warn("failed to answer callback", zap.Error(err))
	}

	return sendJobsPage(ctx, c, ids, page)
}

func rememberPageMessages(ctx *Context, userID int64, messageIDs []int) {
	if len(messageIDs) == 0 {
		return
	}

	cacheCtx, cancel := cacheContext()
	defer cancel()

	if err := ctx.Cache.SetPageMessages(cacheCtx, userID, messageIDs); err != nil {
		ctx.Logger.Warn("failed to store page messages",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func cleanupPageMessages(ctx *Context, c tele.Context, userID int64) {
	cacheCtx, cancel := cacheContext()
	defer cancel()

	messageIDs, err := ctx.Cache.PopPageMessages(cacheCtx, userID)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			ctx.Logger.Warn("failed to load page messages", zap.Int64("user_id", userID), zap.Error(err))
		}
		return
	}

	chat := c.Chat()
	if chat == nil {
		return
	}

	for _, id := range messageIDs {
		if err := c.Bot().Delete(&tele.Message{ID: id, Chat: chat}); err != nil {
			ctx.Logger.Debug("failed to delete old job message",
				zap.Int("message_id", id),
				zap.Error(err),
			)
		}
	}
}
