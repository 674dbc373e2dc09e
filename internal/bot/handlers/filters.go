package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"jobplanner/internal/bot/utils"
	"jobplanner/internal/filter"
	"jobplanner/internal/models"
	"jobplanner/internal/storage/postgres"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// User states for conversation flow
const (
	StateIdle             = ""
	StateAwaitingCountry  = "awaiting_country"
	StateAwaitingCategory = "awaiting_category"
	StateAwaitingCompany  = "awaiting_company"
	StateAwaitingSalary   = "awaiting_salary"
	StateAwaitingRoleType = "awaiting_role_type"
	StateAwaitingPeriod   = "awaiting_period"
	StateConfirmClear     = "confirm_clear_filters"
)

// /filters command
func HandleFilters(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		if err := clearUserState(ctx, c.Sender().ID); err != nil {
			ctx.Logger.Warn("failed to clear user state", zap.Error(err))
		}

		return c.Send(
			"🔧 *Filters*\n\nChoose what to set up:",
			utils.FiltersMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}

// HandleText processes all text messages
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		userID := c.Sender().ID

		state, err := getUserState(ctx, userID)
		if err != nil {
			ctx.Logger.Warn("failed to get user state", zap.Error(err))
			state = StateIdle
		}

		if state != StateIdle {
			return handleStateInput(ctx, c, state)
		}

		switch text {
		// Main menu
		case utils.BtnFilters:
			return HandleFilters(ctx)(c)
		case utils.BtnJobs:
			return HandleJobs(ctx)(c)
		case utils.BtnSaved:
			return HandleSaved(ctx)(c)
		case utils.BtnExport:
			return HandleExport(ctx)(c)
		case utils.BtnHelp:
			return HandleHelp(ctx)(c)

		// Filters menu
		case utils.BtnCountry:
			return startFilter(ctx, c, StateAwaitingCountry,
				"🌍 Enter a country or a place (for example: UK, London):", utils.CancelKeyboard())
		case utils.BtnCategory:
			return startFilter(ctx, c, StateAwaitingCategory,
				"🗂 Choose a category:", utils.CategoryKeyboard())
		case utils.BtnCompany:
			return startFilter(ctx, c, StateAwaitingCompany,
				"🏢 Enter part of the company name:", utils.CancelKeyboard())
		case utils.BtnSalary:
			return startFilter(ctx, c, StateAwaitingSalary,
				"💰 Enter a salary range (30000-50000), a minimum (30000) or a maximum (-50000):", utils.CancelKeyboard())
		case utils.BtnRoleType:
			return startFilter(ctx, c, StateAwaitingRoleType,
				"💼 Pick one or more role types, then press Done:", utils.RoleTypeKeyboard())
		case utils.BtnPeriod:
			return startFilter(ctx, c, StateAwaitingPeriod,
				"🗓 How recent should postings be?", utils.PeriodKeyboard())
		case utils.BtnShowFilters:
			return showFilters(ctx, c)
		case utils.BtnClear:
			return startClearFilters(ctx, c)
		case utils.BtnBack:
			return c.Send("Main menu", utils.MainMenuKeyboard())

		case utils.BtnCancel:
			return cancelConversation(ctx, c)

		default:
			return c.Reply("Use the menu buttons or commands")
		}
	}
}

func startFilter(ctx *Context, c tele.Context, state, prompt string, keyboard *tele.ReplyMarkup) error {
	if err := setUserState(ctx, c.Sender().ID, state); err != nil {
		ctx.Logger.Error("failed to set user state", zap.String("state", state), zap.Error(err))
	}

	return c.Send(prompt, keyboard)
}

// ==================== State Management ====================

func handleStateInput(ctx *Context, c tele.Context, state string) error {
	text := strings.TrimSpace(c.Text())
	if text == utils.BtnCancel {
		return cancelConversation(ctx, c)
	}

	switch state {
	case StateAwaitingCountry:
		return saveTextFilter(ctx, c, models.FilterTypeCountry, text)
	case StateAwaitingCompany:
		return saveTextFilter(ctx, c, models.FilterTypeCompany, text)
	case StateAwaitingCategory:
		return handleCategoryInput(ctx, c, text)
	case StateAwaitingSalary:
		return handleSalaryInput(ctx, c, text)
	case StateAwaitingRoleType:
		return handleRoleTypeInput(ctx, c, text)
	case StateAwaitingPeriod:
		return handlePeriodInput(ctx, c, text)
	case StateConfirmClear:
		return handleClearFiltersConfirm(ctx, c, text)
	default:
		_ = clearUserState(ctx, c.Sender().ID)
		return c.Send("Main menu", utils.MainMenuKeyboard())
	}
}

func saveTextFilter(ctx *Context, c tele.Context, filterType, value string) error {
	if value == "" {
		return cancelConversation(ctx, c)
	}

	if err := saveFilter(ctx, c.Sender().ID, filterType, value); err != nil {
		return c.Send("😔 Failed to save the filter")
	}

	return filterSaved(ctx, c, filterType, value)
}

func handleCategoryInput(ctx *Context, c tele.Context, text string) error {
	code := models.CategoryFromString(text)
	if !code.IsKnown() {
		return c.Send("🤷 Unknown category. Pick one from the keyboard.", utils.CategoryKeyboard())
	}

	if err := saveFilter(ctx, c.Sender().ID, models.FilterTypeCategory, code.String()); err != nil {
		return c.Send("😔 Failed to save the filter")
	}

	return filterSaved(ctx, c, models.FilterTypeCategory, code.String())
}

func handleSalaryInput(ctx *Context, c tele.Context, text string) error {
	min, max, err := parseSalaryInput(text)
	if err != nil {
		return c.Send("⚠️ "+salaryErrorMessage(err), utils.CancelKeyboard())
	}

	userID := c.Sender().ID

	set := make(map[string]string, 2)
	var unset []string
	for filterType, bound := range map[string]*float64{
		models.FilterTypeSalaryMin: min,
		models.FilterTypeSalaryMax: max,
	} {
		if bound == nil {
			unset = append(unset, filterType)
			continue
		}
		set[filterType] = strconv.FormatFloat(*bound, 'f', -1, 64)
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	if err := ctx.Store.UpdateFilters(dbCtx, userID, set, unset...); err != nil {
		ctx.Logger.Error("failed to save salary filter", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("😔 Failed to save the filter")
	}

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return c.Send("✅ Salary filter set: "+text, utils.FiltersMenuKeyboard())
}

// parseSalaryInput accepts "min-max", "min", "min-" and "-max". Spaces and
// thousands separators are ignored. The result is checked the same way
// search criteria are.
func parseSalaryInput(text string) (min, max *float64, err error) {
	cleaned := strings.NewReplacer(" ", "", ",", "", "_", "").Replace(text)

	lo, hi, _ := strings.Cut(cleaned, "-")
	if lo == "" && hi == "" {
		return nil, nil, errors.New("empty salary")
	}

	if lo != "" {
		v, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("salary %q: %w", lo, err)
		}
		min = &v
	}
	if hi != "" {
		v, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("salary %q: %w", hi, err)
		}
		max = &v
	}

	criteria := filter.Criteria{SalaryMin: min, SalaryMax: max}
	if err := criteria.Validate(); err != nil {
		return nil, nil, err
	}

	return min, max, nil
}

func salaryErrorMessage(err error) string {
	var rangeErr *filter.RangeError
	if errors.As(err, &rangeErr) {
		return "The minimum must not be greater than the maximum."
	}
	return "Enter numbers only, for example 30000-50000."
}

// handleRoleTypeInput toggles the chosen role type; the conversation stays
// open until Done.
func handleRoleTypeInput(ctx *Context, c tele.Context, text string) error {
	userID := c.Sender().ID

	if text == utils.BtnDone {
		if err := clearUserState(ctx, userID); err != nil {
			ctx.Logger.Warn("failed to clear state", zap.Error(err))
		}
		return showFilters(ctx, c)
	}

	roleType := models.GetRoleTypeID(text)
	if roleType == "" {
		return c.Send("🤷 Pick a role type from the keyboard.", utils.RoleTypeKeyboard())
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	filtersMap, err := ctx.Store.GetFiltersMap(dbCtx, userID)
	if err != nil {
		ctx.Logger.Error("failed to get user filters", zap.Error(err))
		return c.Send("😔 Failed to load your filters")
	}

	selected, added := toggleListValue(utils.SplitList(filtersMap[models.FilterTypeRoleType]), roleType)

	if len(selected) == 0 {
		err = ctx.Store.DeleteFilter(dbCtx, userID, models.FilterTypeRoleType)
		if errors.Is(err, postgres.ErrFilterNotFound) {
			err = nil
		}
	} else {
		err = saveFilter(ctx, userID, models.FilterTypeRoleType, strings.Join(selected, ","))
	}
	if err != nil {
		ctx.Logger.Error("failed to update role type filter", zap.Error(err))
		return c.Send("😔 Failed to save the filter")
	}

	status := "➖ Removed"
	if added {
		status = "➕ Added"
	}

	return c.Send(fmt.Sprintf("%s: %s", status, text), utils.RoleTypeKeyboard())
}

// toggleListValue removes value from list when present and appends it
// otherwise.
func toggleListValue(list []string, value string) ([]string, bool) {
	out := make([]string, 0, len(list)+1)
	removed := false
	for _, v := range list {
		if v == value {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if removed {
		return out, false
	}
	return append(out, value), true
}

func handlePeriodInput(ctx *Context, c tele.Context, text string) error {
	userID := c.Sender().ID

	if text == utils.BtnAnyTime {
		dbCtx, cancel := dbContext()
		defer cancel()

		err := ctx.Store.DeleteFilter(dbCtx, userID, models.FilterTypePeriod)
		if err != nil && !errors.Is(err, postgres.ErrFilterNotFound) {
			ctx.Logger.Error("failed to delete period filter", zap.Error(err))
			return c.Send("😔 Failed to save the filter")
		}

		if err := clearUserState(ctx, userID); err != nil {
			ctx.Logger.Warn("failed to clear state", zap.Error(err))
		}
		return c.Send("✅ Posting date filter removed", utils.FiltersMenuKeyboard())
	}

	window, err := filter.ParseDateWindow(text)
	if err != nil || window == filter.WindowNone {
		return c.Send("🤷 Pick a period from the keyboard.", utils.PeriodKeyboard())
	}

	if err := saveFilter(ctx, userID, models.FilterTypePeriod, string(window)); err != nil {
		return c.Send("😔 Failed to save the filter")
	}

	return filterSaved(ctx, c, models.FilterTypePeriod, string(window))
}

func showFilters(ctx *Context, c tele.Context) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	filtersMap, err := ctx.Store.GetFiltersMap(dbCtx, c.Sender().ID)
	if err != nil {
		ctx.Logger.Error("failed to get user filters", zap.Error(err))
		return c.Send("😔 Failed to load your filters")
	}

	if len(filtersMap) == 0 {
		return c.Send(utils.FormatFiltersMessage(filtersMap), utils.FiltersMenuKeyboard())
	}

	if err := c.Send(utils.FormatFiltersMessage(filtersMap), tele.ModeMarkdownV2); err != nil {
		return err
	}

	return c.Send("Tap a filter to remove it:", InlineFiltersKeyboard(filtersMap))
}

func handleClearFiltersConfirm(ctx *Context, c tele.Context, text string) error {
	switch text {
	case utils.BtnYes:
		return confirmClearFilters(ctx, c)
	case utils.BtnNo:
		return cancelConversation(ctx, c)
	default:
		return c.Send("Please choose one of the options on the keyboard", utils.ConfirmKeyboard())
	}
}

func confirmClearFilters(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	dbCtx, cancel := dbContext()
	defer cancel()

	n, err := ctx.Store.ClearUserFilters(dbCtx, userID)
	if err != nil {
		ctx.Logger.Error("failed to clear filters", zap.Error(err))
		return c.Send("😔 Failed to clear filters")
	}

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return c.Send(fmt.Sprintf("✅ Filters cleared: %d", n), utils.FiltersMenuKeyboard())
}

// startClearFilters asks for confirmation only when there is something to clear.
func startClearFilters(ctx *Context, c tele.Context) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	has, err := ctx.Store.HasFilters(dbCtx, c.Sender().ID)
	if err != nil {
		ctx.Logger.Error("failed to check filters", zap.Error(err))
		return c.Send("😔 Failed to load your filters")
	}
	if !has {
		return c.Send("ℹ️ You have no filters set", utils.FiltersMenuKeyboard())
	}

	return startFilter(ctx, c, StateConfirmClear, "❓ Clear all filters?", utils.ConfirmKeyboard())
}

func saveFilter(ctx *Context, userID int64, filterType, value string) error {
	dbCtx, cancel := dbContext()
	defer cancel()

	err := ctx.Store.SaveFilter(dbCtx, &models.UserFilter{
		UserID:      userID,
		FilterType:  filterType,
		FilterValue: value,
	})
	if err != nil {
		ctx.Logger.Error("failed to save filter",
			zap.Int64("user_id", userID),
			zap.String("filter_type", filterType),
			zap.Error(err),
		)
	}
	return err
}

func filterSaved(ctx *Context, c tele.Context, filterType, value string) error {
	if err := clearUserState(ctx, c.Sender().ID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return c.Send(
		utils.FormatFilterSet(filterType, value),
		utils.FiltersMenuKeyboard(),
		tele.ModeMarkdownV2,
	)
}

func setUserState(ctx *Context, userID int64, state string) error {
	cacheCtx, cancel := cacheContext()
	defer cancel()
	return ctx.Cache.SetUserState(cacheCtx, userID, state)
}

func getUserState(ctx *Context, userID int64) (string, error) {
	cacheCtx, cancel := cacheContext()
	defer cancel()
	return ctx.Cache.GetUserState(cacheCtx, userID)
}

func clearUserState(ctx *Context, userID int64) error {
	cacheCtx, cancel := cacheContext()
	defer cancel()
	return ctx.Cache.DeleteUserState(cacheCtx, userID)
}

func cancelConversation(ctx *Context, c tele.Context) error {
	if err := clearUserState(ctx, c.Sender().ID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return c.Send("❌ Cancelled", utils.FiltersMenuKeyboard())
}

// buildCriteria turns stored user filters into search criteria. Stored
// values that no longer parse are reported rather than skipped.
func buildCriteria(filters map[string]string) (filter.Criteria, error) {
	criteria := filter.Criteria{
		Country:  filters[models.FilterTypeCountry],
		Category: filters[models.FilterTypeCategory],
		Company:  filters[models.FilterTypeCompany],
	}

	for _, bound := range []struct {
		filterType string
		dst        **float64
	}{
		{models.FilterTypeSalaryMin, &criteria.SalaryMin},
		{models.FilterTypeSalaryMax, &criteria.SalaryMax},
	} {
		raw, ok := filters[bound.filterType]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("%s filter: %w", bound.filterType, err)
		}
		*bound.dst = &v
	}

	criteria.RoleTypes = utils.SplitList(filters[models.FilterTypeRoleType])

	window, err := filter.ParseDateWindow(filters[models.FilterTypePeriod])
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("period filter: %w", err)
	}
	criteria.Window = window

	return criteria, nil
}
