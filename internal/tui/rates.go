package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/squarelake/paydesk/internal/nav"
	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
)

type rateKind int

const (
	rateBasePay rateKind = iota
	rateInsurance
	rateFund
)

// rateRow is the common projection the list renders; each kind maps its
// domain type into one.
type rateRow struct {
	id        uuid.UUID
	city      string
	detail    string
	effective string
}

type ratesLoadedMsg struct {
	gen  int
	rows []rateRow
	page domain.Page[struct{}] // paging metadata only
	err  error
}

type rateSavedMsg struct {
	err error
}

type rateDeletedMsg struct {
	err error
}

type ratesMode int

const (
	ratesBrowse ratesMode = iota
	ratesForm
	ratesConfirmDelete
)

type rateForm struct {
	values []string
	focus  int
}

// ratesModel serves the three payroll configuration tabs: statutory base
// pay, social-insurance rates, and housing-fund rates.
type ratesModel struct {
	client *api.Client

	kind   rateKind
	mode   ratesMode
	rows   []rateRow
	cursor int

	current int
	pages   int64
	total   int64

	filtering bool
	city      string
	seq       int

	form rateForm

	gen     int
	loading bool
	busy    bool
	errMsg  string
	toast   string

	width  int
	height int
}

func newRatesModel(c *api.Client) ratesModel {
	return ratesModel{client: c, current: 1}
}

func tabRateKind(tab nav.Tab) rateKind {
	switch tab {
	case nav.TabInsurance:
		return rateInsurance
	case nav.TabFundRates:
		return rateFund
	default:
		return rateBasePay
	}
}

func (m ratesModel) startFor(tab nav.Tab) (ratesModel, tea.Cmd) {
	m.kind = tabRateKind(tab)
	m.gen++
	m.mode = ratesBrowse
	m.city = ""
	m.loading = true
	m.errMsg = ""
	m.toast = ""
	return m, m.load(m.gen, 1)
}

func (m ratesModel) load(gen, current int) tea.Cmd {
	client := m.client
	kind := m.kind
	city := m.city
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		out := ratesLoadedMsg{gen: gen}
		switch kind {
		case rateBasePay:
			page, err := client.ListBasePay(ctx, city, current, pageSize)
			if err != nil {
				out.err = err
				break
			}
			for _, r := range page.Records {
				out.rows = append(out.rows, rateRow{
					id:        r.ID,
					city:      r.City,
					detail:    formatCents(r.AmountCents) + " " + r.CompanyID,
					effective: r.EffectiveOn,
				})
			}
			out.page = pageMeta(page.Total, page.Pages, page.Size, page.Current)
		case rateInsurance:
			page, err := client.ListInsuranceRates(ctx, city, current, pageSize)
			if err != nil {
				out.err = err
				break
			}
			for _, r := range page.Records {
				out.rows = append(out.rows, rateRow{
					id:        r.ID,
					city:      r.City,
					detail:    fmt.Sprintf("%-12s %.2f%% / %.2f%%  %s–%s", r.Kind, r.EmployerPct, r.EmployeePct, formatCents(r.BaseFloorCents), formatCents(r.BaseCapCents)),
					effective: r.EffectiveOn,
				})
			}
			out.page = pageMeta(page.Total, page.Pages, page.Size, page.Current)
		case rateFund:
			page, err := client.ListFundRates(ctx, city, current, pageSize)
			if err != nil {
				out.err = err
				break
			}
			for _, r := range page.Records {
				out.rows = append(out.rows, rateRow{
					id:        r.ID,
					city:      r.City,
					detail:    fmt.Sprintf("%.2f%% / %.2f%%  %s–%s", r.EmployerPct, r.EmployeePct, formatCents(r.BaseFloorCents), formatCents(r.BaseCapCents)),
					effective: r.EffectiveOn,
				})
			}
			out.page = pageMeta(page.Total, page.Pages, page.Size, page.Current)
		}
		return out
	}
}

func pageMeta(total, pages int64, size, current int) domain.Page[struct{}] {
	return domain.Page[struct{}]{Total: total, Pages: pages, Size: size, Current: current}
}

// formLabels are the typed fields per kind, in focus order.
func (m ratesModel) formLabels() []string {
	switch m.kind {
	case rateBasePay:
		return []string{"company id", "city", "amount", "effective on"}
	case rateInsurance:
		return []string{"city", "kind", "employer %", "employee %", "base floor", "base cap", "effective on"}
	default:
		return []string{"city", "employer %", "employee %", "base floor", "base cap", "effective on"}
	}
}

func (m ratesModel) save() tea.Cmd {
	client := m.client
	kind := m.kind
	v := make([]string, len(m.form.values))
	copy(v, m.form.values)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var err error
		switch kind {
		case rateBasePay:
			var amount int64
			if amount, err = parseMoney(v[2]); err == nil {
				err = client.SaveBasePay(ctx, domain.BasePay{
					CompanyID:   strings.TrimSpace(v[0]),
					City:        strings.TrimSpace(v[1]),
					AmountCents: amount,
					EffectiveOn: strings.TrimSpace(v[3]),
				})
			}
		case rateInsurance:
			row := domain.InsuranceRate{
				City:        strings.TrimSpace(v[0]),
				Kind:        strings.TrimSpace(v[1]),
				EffectiveOn: strings.TrimSpace(v[6]),
			}
			err = firstErr(
				parsePct(v[2], &row.EmployerPct),
				parsePct(v[3], &row.EmployeePct),
				parseMoneyInto(v[4], &row.BaseFloorCents),
				parseMoneyInto(v[5], &row.BaseCapCents),
			)
			if err == nil {
				err = client.SaveInsuranceRate(ctx, row)
			}
		case rateFund:
			row := domain.HousingFundRate{
				City:        strings.TrimSpace(v[0]),
				EffectiveOn: strings.TrimSpace(v[5]),
			}
			err = firstErr(
				parsePct(v[1], &row.EmployerPct),
				parsePct(v[2], &row.EmployeePct),
				parseMoneyInto(v[3], &row.BaseFloorCents),
				parseMoneyInto(v[4], &row.BaseCapCents),
			)
			if err == nil {
				err = client.SaveFundRate(ctx, row)
			}
		}
		return rateSavedMsg{err: err}
	}
}

func (m ratesModel) remove(id string) tea.Cmd {
	client := m.client
	apiKind := ""
	switch m.kind {
	case rateInsurance:
		apiKind = "insurance"
	case rateFund:
		apiKind = "fund"
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return rateDeletedMsg{err: client.DeleteRate(ctx, apiKind, id)}
	}
}

func (m ratesModel) editing() bool {
	return m.filtering || m.mode == ratesForm
}

func (m ratesModel) Update(msg tea.Msg) (ratesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ratesLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.rows = msg.rows
		m.current = msg.page.Current
		m.pages = msg.page.Pages
		m.total = msg.page.Total
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		return m, nil

	case ticketSearchTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.gen++
		m.loading = true
		return m, m.load(m.gen, 1)

	case rateSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = localOrAPIError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = ratesBrowse
		m.toast = "saved"
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.current)

	case rateDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = ratesBrowse
		m.toast = "deleted"
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.current)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m ratesModel) updateKeys(msg tea.KeyMsg) (ratesModel, tea.Cmd) {
	key := msg.String()
	if m.busy {
		return m, nil
	}

	if m.filtering {
		switch key {
		case "enter", "esc":
			m.filtering = false
			if key == "esc" {
				return m, nil
			}
		default:
			m.city = editRune(m.city, key)
		}
		m.seq++
		seq := m.seq
		return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return ticketSearchTickMsg{seq: seq}
		})
	}

	switch m.mode {
	case ratesForm:
		labels := m.formLabels()
		switch key {
		case "esc":
			m.mode = ratesBrowse
			return m, nil
		case "tab", "down":
			m.form.focus = (m.form.focus + 1) % len(labels)
			return m, nil
		case "shift+tab", "up":
			m.form.focus = (m.form.focus + len(labels) - 1) % len(labels)
			return m, nil
		case "enter":
			if m.form.focus < len(labels)-1 {
				m.form.focus++
				return m, nil
			}
			for i, v := range m.form.values {
				if strings.TrimSpace(v) == "" {
					m.errMsg = labels[i] + " is required"
					return m, nil
				}
			}
			m.busy = true
			m.errMsg = ""
			return m, m.save()
		default:
			m.form.values[m.form.focus] = editRune(m.form.values[m.form.focus], key)
			return m, nil
		}

	case ratesConfirmDelete:
		switch key {
		case "y", "enter":
			if m.cursor < len(m.rows) {
				m.busy = true
				return m, m.remove(m.rows[m.cursor].id.String())
			}
			m.mode = ratesBrowse
		case "n", "esc":
			m.mode = ratesBrowse
		}
		return m, nil
	}

	// browse
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "/":
		m.filtering = true
		m.toast = ""
	case "n":
		if int64(m.current) < m.pages {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, m.current+1)
		}
	case "p":
		if m.current > 1 {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, m.current-1)
		}
	case "r":
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.current)
	case "a":
		m.mode = ratesForm
		m.form = rateForm{values: make([]string, len(m.formLabels()))}
		m.toast = ""
		m.errMsg = ""
	case "d":
		// base pay rows are replaced, never deleted
		if m.kind != rateBasePay && m.cursor < len(m.rows) {
			m.mode = ratesConfirmDelete
			m.toast = ""
		}
	}
	return m, nil
}

// localOrAPIError prefers the parse error's own text so a bad number in
// the form reads as such rather than as a backend failure.
func localOrAPIError(err error) string {
	var parseErr *strconv.NumError
	if errors.As(err, &parseErr) {
		return "invalid number: " + parseErr.Num
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// parseMoney converts a decimal money string ("2450" or "2450.50") to
// cents, rejecting negatives.
func parseMoney(s string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("amount must not be negative")
	}
	return int64(math.Round(f * 100)), nil
}

func parseMoneyInto(s string, out *int64) error {
	v, err := parseMoney(s)
	if err != nil {
		return err
	}
	*out = v
	return nil
}

func parsePct(s string, out *float64) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	if f < 0 || f > 100 {
		return fmt.Errorf("percentage out of range")
	}
	*out = f
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (m ratesModel) title() string {
	switch m.kind {
	case rateInsurance:
		return "Insurance Rates"
	case rateFund:
		return "Housing Fund"
	default:
		return "Base Pay"
	}
}

func (m ratesModel) helpKeys() string {
	switch m.mode {
	case ratesForm:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case ratesConfirmDelete:
		return helpEntry("y", "delete") + "  " + helpEntry("n", "keep")
	}
	h := helpEntry("/", "city") + "  " + helpEntry("a", "add") + "  " + helpEntry("n/p", "page")
	if m.kind != rateBasePay {
		h += "  " + helpEntry("d", "delete")
	}
	return h
}

func (m ratesModel) View() string {
	switch m.mode {
	case ratesForm:
		return m.viewForm()
	case ratesConfirmDelete:
		return m.viewConfirm()
	}
	return m.viewBrowse()
}

func (m ratesModel) viewBrowse() string {
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render(m.title()) + "\n")

	if m.filtering {
		sb.WriteString(" " + inputPromptStyle.Render("city: ") + normalStyle.Render(m.city) + cursorBarStyle.Render("▎") + "\n")
	} else if m.city != "" {
		sb.WriteString(" " + dimStyle.Render("city: "+m.city) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.errMsg != "":
		sb.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return sb.String()
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	case len(m.rows) == 0:
		sb.WriteString(" " + dimStyle.Render("no rows") + "\n")
		return sb.String()
	}

	for i, r := range m.rows {
		marker := "  "
		style := normalStyle
		if i == m.cursor {
			marker = cursorBarStyle.Render("▌ ")
			style = selectedStyle
		}
		sb.WriteString(marker +
			style.Render(padRight(truncStr(r.city, 16), 16)) + " " +
			normalStyle.Render(padRight(truncStr(r.detail, 52), 52)) + " " +
			metaStyle.Render(r.effective) + "\n")
	}

	sb.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d · %d rows", m.current, m.pages, m.total)))
	if m.toast != "" {
		sb.WriteString("  " + toastOKStyle.Render(m.toast))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m ratesModel) viewForm() string {
	labels := m.formLabels()
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("New "+strings.ToLower(m.title())+" row") + "\n\n")
	for i, label := range labels {
		padded := padRight(label, 14)
		if i == m.form.focus {
			sb.WriteString(" " + inputPromptStyle.Render(padded) + normalStyle.Render(m.form.values[i]) + cursorBarStyle.Render("▎") + "\n")
		} else {
			sb.WriteString(" " + dimStyle.Render(padded) + normalStyle.Render(m.form.values[i]) + "\n")
		}
	}
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m ratesModel) viewConfirm() string {
	row := ""
	if m.cursor < len(m.rows) {
		row = m.rows[m.cursor].city + " " + m.rows[m.cursor].detail
	}
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Delete rate row") + "\n\n")
	sb.WriteString(" " + normalStyle.Render("Delete ") + selectedStyle.Render(truncStr(row, 60)) + normalStyle.Render("?") + "\n")
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("deleting...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}
