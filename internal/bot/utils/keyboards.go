package utils

import (
	"strconv"

	"jobplanner/internal/formatter"
	"jobplanner/internal/models"

	tele "gopkg.in/telebot.v3"
)

// Reply keyboard labels. Handlers dispatch on these.
const (
	BtnFilters = "🔧 Filters"
	BtnJobs    = "📋 Jobs"
	BtnSaved   = "⭐ Saved"
	BtnExport  = "📤 Export"
	BtnHelp    = "❓ Help"

	BtnCountry     = "🌍 Country"
	BtnCategory    = "🗂 Category"
	BtnCompany     = "🏢 Company"
	BtnSalary      = "💰 Salary"
	BtnRoleType    = "💼 Role type"
	BtnPeriod      = "🗓 Posted"
	BtnShowFilters = "📊 Show filters"
	BtnClear       = "🗑 Clear filters"
	BtnBack        = "◀️ Back"

	BtnCancel  = "❌ Cancel"
	BtnDone    = "✅ Done"
	BtnAnyTime = "Any time"
	BtnYes     = "✅ Yes"
	BtnNo      = "❌ No"
)

// Inline callback actions.
const (
	ActionSave       = "save"
	ActionUnsave     = "unsave"
	ActionJobsPage   = "jobs_page"
	ActionExport     = "export"
	ActionClearSaved = "saved_clear"
	ActionNoop       = "noop"
)

// Arguments of ActionClearSaved: the first press asks, the second clears.
const (
	ClearSavedAsk     = "ask"
	ClearSavedConfirm = "yes"
)

// CallbackData builds "action:value" callback data.
func CallbackData(action, value string) string {
	return action + ":" + value
}

func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(
		menu.Row(menu.Text(BtnFilters), menu.Text(BtnJobs)),
		menu.Row(menu.Text(BtnSaved), menu.Text(BtnExport)),
		menu.Row(menu.Text(BtnHelp)),
	)

	return menu
}

func FiltersMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(
		menu.Row(menu.Text(BtnCountry), menu.Text(BtnCategory)),
		menu.Row(menu.Text(BtnCompany), menu.Text(BtnSalary)),
		menu.Row(menu.Text(BtnRoleType), menu.Text(BtnPeriod)),
		menu.Row(menu.Text(BtnShowFilters), menu.Text(BtnClear)),
		menu.Row(menu.Text(BtnBack)),
	)

	return menu
}

// optionsKeyboard lays options out two per row, followed by extra rows.
func optionsKeyboard(options []string, extra ...string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	for i := 0; i < len(options); i += 2 {
		row := menu.Row(menu.Text(options[i]))
		if i+1 < len(options) {
			row = append(row, menu.Text(options[i+1]))
		}
		rows = append(rows, row)
	}

	for _, label := range extra {
		rows = append(rows, menu.Row(menu.Text(label)))
	}

	menu.Reply(rows...)
	return menu
}

func CategoryKeyboard() *tele.ReplyMarkup {
	return optionsKeyboard(models.CategoryOptions(), BtnCancel)
}

func RoleTypeKeyboard() *tele.ReplyMarkup {
	return optionsKeyboard(models.RoleTypeOptions(), BtnDone, BtnCancel)
}

func PeriodKeyboard() *tele.ReplyMarkup {
	return optionsKeyboard(append(models.PeriodOptions(), BtnAnyTime), BtnCancel)
}

func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(BtnCancel)))
	return menu
}

func ConfirmKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(BtnYes), menu.Text(BtnNo)))
	return menu
}

// InlineJobKeyboard shows the posting link and a save or remove button.
func InlineJobKeyboard(job models.JobRecord, saved bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var row tele.Row
	if job.RedirectURL != "" {
		row = append(row, menu.URL("🔗 Open", job.RedirectURL))
	}
	if saved {
		row = append(row, menu.Data("🗑 Remove", CallbackData(ActionUnsave, job.ID)))
	} else {
		row = append(row, menu.Data("⭐ Save", CallbackData(ActionSave, job.ID)))
	}

	menu.Inline(row)
	return menu
}

func InlinePaginationKeyboard(page, totalPages int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	if totalPages <= 1 {
		return menu
	}

	var buttons []tele.Btn

	if page > 0 {
		buttons = append(buttons, menu.Data("⬅️ Prev", CallbackData(ActionJobsPage, strconv.Itoa(page-1))))
	}

	buttons = append(buttons, menu.Data(strconv.Itoa(page+1)+"/"+strconv.Itoa(totalPages), ActionNoop))

	if page < totalPages-1 {
		buttons = append(buttons, menu.Data("Next ➡️", CallbackData(ActionJobsPage, strconv.Itoa(page+1))))
	}

	menu.Inline(menu.Row(buttons...))
	return menu
}

func InlineExportKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var row tele.Row
	for _, f := range formatter.Formats() {
		row = append(row, menu.Data(exportLabels[f], CallbackData(ActionExport, f.String())))
	}

	menu.Inline(row)
	return menu
}

// InlineSavedKeyboard is attached to the /saved header.
func InlineSavedKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data("🗑 Clear all", CallbackData(ActionClearSaved, ClearSavedAsk))))
	return menu
}

func InlineClearSavedConfirmKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("🗑 Yes, clear", CallbackData(ActionClearSaved, ClearSavedConfirm)),
		menu.Data("Keep", ActionNoop),
	))
	return menu
}

var exportLabels = map[formatter.Format]string{
	formatter.JSON:   "JSON",
	formatter.CSV:    "CSV",
	formatter.Pretty: "Text",
}
