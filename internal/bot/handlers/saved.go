package handlers

import (
	"bytes"
	"context"
	"fmt"

	"jobplanner/internal/bot/utils"
	"jobplanner/internal/formatter"
	"jobplanner/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// maxSavedShown caps the cards /saved sends; the rest is reachable through
// /export.
const maxSavedShown = 20

// /saved
func HandleSaved(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := dbContext()
		defer cancel()

		jobs, err := ctx.Store.ListSavedJobs(dbCtx, userID)
		if err != nil {
			ctx.Logger.Error("failed to list saved jobs", zap.Int64("user_id", userID), zap.Error(err))
			return c.Reply("😔 Failed to load saved jobs")
		}

		if len(jobs) == 0 {
			return c.Send(utils.FormatNoSavedJobsMessage(), tele.ModeMarkdownV2)
		}

		header := fmt.Sprintf("⭐ *Saved jobs:* %d", len(jobs))
		if len(jobs) > maxSavedShown {
			header += fmt.Sprintf("\nShowing the first %d, use /export for the full list", maxSavedShown)
			jobs = jobs[:maxSavedShown]
		}

		if err := c.Send(header, utils.InlineSavedKeyboard(), tele.ModeMarkdownV2); err != nil {
			return err
		}

		saved := make(map[string]bool, len(jobs))
		for _, job := range jobs {
			saved[job.ID] = true
		}

		deliverJobCards(ctx, c, jobs, saved)
		return nil
	}
}

// /export
func HandleExport(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		dbCtx, cancel := dbContext()
		defer cancel()

		count, err := ctx.Store.CountSavedJobs(dbCtx, c.Sender().ID)
		if err != nil {
			ctx.Logger.Error("failed to count saved jobs", zap.Error(err))
			return c.Reply("😔 Failed to load saved jobs")
		}

		if count == 0 {
			return c.Send(utils.FormatNoSavedJobsMessage(), tele.ModeMarkdownV2)
		}

		return c.Send(
			fmt.Sprintf("📤 Export %d saved jobs as:", count),
			utils.InlineExportKeyboard(),
		)
	}
}

func handleSave(ctx *Context, c tele.Context, jobID string) error {
	userID := c.Sender().ID

	dbCtx, cancel := dbContext()
	defer cancel()

	job, ok := ctx.Catalog.Get(jobID)
	if ok {
		// saved_jobs references jobs, so the posting is stored first.
		if _, err := ctx.Store.UpsertJobs(dbCtx, []models.JobRecord{job}); err != nil {
			ctx.Logger.Error("failed to store job", zap.String("job_id", jobID), zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "😔 Failed to save"})
		}
	} else {
		stored, found, err := mirroredJob(dbCtx, ctx, ctx.Store, jobID)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "😔 Failed to save"})
		}
		if !found {
			return c.Respond(&tele.CallbackResponse{Text: "🤷 This job is no longer in the catalog", ShowAlert: true})
		}
		job = stored
	}

	added, err := ctx.Store.SaveJob(dbCtx, userID, jobID)
	if err != nil {
		ctx.Logger.Error("failed to save job", zap.String("job_id", jobID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Failed to save"})
	}

	updateJobKeyboard(ctx, c, job, true)

	text := "⭐ Saved"
	if !added {
		text = "Already saved"
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}

func handleUnsave(ctx *Context, c tele.Context, jobID string) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	removed, err := ctx.Store.RemoveSavedJob(dbCtx, c.Sender().ID, jobID)
	if err != nil {
		ctx.Logger.Error("failed to remove saved job", zap.String("job_id", jobID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Failed to remove"})
	}

	job, ok := ctx.Catalog.Get(jobID)
	if !ok {
		job = models.JobRecord{ID: jobID}
	}
	updateJobKeyboard(ctx, c, job, false)

	text := "🗑 Removed"
	if !removed {
		text = "Not in your saved jobs"
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}

type jobGetter interface {
	GetJob(ctx context.Context, jobID string) (*models.JobRecord, error)
}

// mirroredJob looks up a posting that has left the catalog in the
// PostgreSQL mirror.
func mirroredJob(dbCtx context.Context, ctx *Context, store jobGetter, jobID string) (models.JobRecord, bool, error) {
	stored, err := store.GetJob(dbCtx, jobID)
	if err != nil {
		ctx.Logger.Error("failed to get job", zap.String("job_id", jobID), zap.Error(err))
		return models.JobRecord{}, false, err
	}
	if stored == nil {
		return models.JobRecord{}, false, nil
	}
	return *stored, true, nil
}

func handleClearSaved(ctx *Context, c tele.Context, arg string) error {
	switch arg {
	case utils.ClearSavedAsk:
		if msg := c.Message(); msg != nil {
			if _, err := c.Bot().EditReplyMarkup(msg, utils.InlineClearSavedConfirmKeyboard()); err != nil {
				ctx.Logger.Debug("failed to show clear confirmation", zap.Error(err))
			}
		}
		return c.Respond(&tele.CallbackResponse{Text: "❓ Remove all saved jobs?"})

	case utils.ClearSavedConfirm:
		userID := c.Sender().ID

		dbCtx, cancel := dbContext()
		defer cancel()

		n, err := ctx.Store.ClearSavedJobs(dbCtx, userID)
		if err != nil {
			ctx.Logger.Error("failed to clear saved jobs", zap.Int64("user_id", userID), zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "😔 Failed to clear"})
		}

		if err := c.Edit(fmt.Sprintf("🗑 Removed %d saved jobs", n)); err != nil {
			ctx.Logger.Debug("failed to edit saved header", zap.Error(err))
		}
		return c.Respond(&tele.CallbackResponse{Text: "🗑 Cleared"})

	default:
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid format"})
	}
}

func updateJobKeyboard(ctx *Context, c tele.Context, job models.JobRecord, saved bool) {
	msg := c.Message()
	if msg == nil {
		return
	}

	if _, err := c.Bot().EditReplyMarkup(msg, utils.InlineJobKeyboard(job, saved)); err != nil {
		ctx.Logger.Debug("failed to update job keyboard", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func handleExport(ctx *Context, c tele.Context, arg string) error {
	format, err := formatter.ParseFormat(arg)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Unknown format"})
	}

	userID := c.Sender().ID

	dbCtx, cancel := dbContext()
	defer cancel()

	jobs, err := ctx.Store.ListSavedJobs(dbCtx, userID)
	if err != nil {
		ctx.Logger.Error("failed to list saved jobs", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Export failed"})
	}

	doc, err := exportDocument(jobs, format)
	if err != nil {
		ctx.Logger.Error("failed to export saved jobs",
			zap.Int64("user_id", userID),
			zap.String("format", format.String()),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Export failed"})
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "📤 Preparing file"}); err != nil {
		ctx.Logger.Warn("failed to answer callback", zap.Error(err))
	}

	ctx.Logger.Info("saved jobs exported",
		zap.Int64("user_id", userID),
		zap.String("format", format.String()),
		zap.Int("count", len(jobs)),
	)

	return c.Send(doc)
}

// exportDocument renders jobs in format into an in-memory file.
func exportDocument(jobs []models.JobRecord, format formatter.Format) (*tele.Document, error) {
	var buf bytes.Buffer
	if err := formatter.Write(&buf, jobs, format); err != nil {
		return nil, err
	}

	return &tele.Document{
		File:     tele.FromReader(&buf),
		FileName: "saved_jobs" + format.FileExtension(),
		MIME:     format.ContentType(),
		Caption:  fmt.Sprintf("%d saved jobs", len(jobs)),
	}, nil
}
