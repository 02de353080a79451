package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squarelake/paydesk/internal/xlsx"
	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
)

type companiesLoadedMsg struct {
	gen  int
	page domain.Page[domain.Company]
	err  error
}

type companySavedMsg struct {
	created bool
	err     error
}

type companyDisabledMsg struct {
	err error
}

type employeesImportedMsg struct {
	batch *domain.ImportBatch
	err   error
}

type companiesMode int

const (
	companiesBrowse companiesMode = iota
	companiesForm
	companiesConfirmDisable
	companiesImport
)

// companyForm holds the create/edit fields. editID is empty for create.
type companyForm struct {
	editID    string
	name      string
	taxNumber string
	contact   string
	phone     string
	franchise bool
	focus     int
}

const companyFormFields = 4

// companiesModel manages client companies: search, create, edit, disable,
// and bulk employee import from a workbook.
type companiesModel struct {
	client *api.Client

	mode   companiesMode
	page   domain.Page[domain.Company]
	cursor int

	searching bool
	search    string
	seq       int

	form       companyForm
	importPath string

	gen     int
	loading bool
	busy    bool
	errMsg  string
	toast   string

	width  int
	height int
}

func newCompaniesModel(c *api.Client) companiesModel {
	return companiesModel{client: c}
}

func (m companiesModel) start() (companiesModel, tea.Cmd) {
	m.gen++
	m.mode = companiesBrowse
	m.loading = true
	m.errMsg = ""
	m.toast = ""
	return m, m.load(m.gen, 1)
}

func (m companiesModel) load(gen, current int) tea.Cmd {
	client := m.client
	query := m.search
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		page, err := client.ListCompanies(ctx, query, current, pageSize)
		return companiesLoadedMsg{gen: gen, page: page, err: err}
	}
}

func (m companiesModel) save() tea.Cmd {
	client := m.client
	f := m.form
	req := api.CompanyRequest{
		Name:      strings.TrimSpace(f.name),
		TaxNumber: strings.TrimSpace(f.taxNumber),
		Contact:   strings.TrimSpace(f.contact),
		Phone:     strings.TrimSpace(f.phone),
		Franchise: f.franchise,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if f.editID == "" {
			_, err := client.CreateCompany(ctx, req)
			return companySavedMsg{created: true, err: err}
		}
		return companySavedMsg{err: client.UpdateCompany(ctx, f.editID, req)}
	}
}

func (m companiesModel) disable(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return companyDisabledMsg{err: client.DisableCompany(ctx, id)}
	}
}

// importEmployees validates the workbook locally before any bytes go over
// the wire, then streams it to the import endpoint.
func (m companiesModel) importEmployees(companyID, path string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := xlsx.RequireSheet(path, "employees"); err != nil {
			return employeesImportedMsg{err: err}
		}
		f, err := os.Open(path)
		if err != nil {
			return employeesImportedMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		batch, err := client.ImportEmployees(ctx, companyID, filepath.Base(path), f)
		return employeesImportedMsg{batch: batch, err: err}
	}
}

func (m companiesModel) editing() bool {
	return m.searching || m.mode == companiesForm || m.mode == companiesImport
}

func (m *companiesModel) selected() *domain.Company {
	if m.cursor < len(m.page.Records) {
		return &m.page.Records[m.cursor]
	}
	return nil
}

func (m companiesModel) Update(msg tea.Msg) (companiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case companiesLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.page = msg.page
		if m.cursor >= len(m.page.Records) {
			m.cursor = 0
		}
		return m, nil

	case ticketSearchTickMsg:
		// Shared debounce message; only ours when the seq matches.
		if msg.seq != m.seq {
			return m, nil
		}
		m.gen++
		m.loading = true
		return m, m.load(m.gen, 1)

	case companySavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = companiesBrowse
		if msg.created {
			m.toast = "company created"
		} else {
			m.toast = "company updated"
		}
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.page.Current)

	case companyDisabledMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = companiesBrowse
		m.toast = "company disabled"
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.page.Current)

	case employeesImportedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = companiesBrowse
		if msg.batch != nil {
			m.toast = fmt.Sprintf("imported %d/%d rows", msg.batch.Accepted, msg.batch.Rows)
		} else {
			m.toast = "import accepted"
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m companiesModel) updateKeys(msg tea.KeyMsg) (companiesModel, tea.Cmd) {
	key := msg.String()
	if m.busy {
		return m, nil
	}

	if m.searching {
		switch key {
		case "enter", "esc":
			m.searching = false
			if key == "esc" {
				return m, nil
			}
			m.seq++
			return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return ticketSearchTickMsg{seq: m.seq}
			})
		default:
			m.search = editRune(m.search, key)
			m.seq++
			seq := m.seq
			return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return ticketSearchTickMsg{seq: seq}
			})
		}
	}

	switch m.mode {
	case companiesForm:
		return m.updateFormKeys(key)

	case companiesConfirmDisable:
		switch key {
		case "y", "enter":
			if c := m.selected(); c != nil {
				m.busy = true
				return m, m.disable(c.ID.String())
			}
			m.mode = companiesBrowse
		case "n", "esc":
			m.mode = companiesBrowse
		}
		return m, nil

	case companiesImport:
		switch key {
		case "esc":
			m.mode = companiesBrowse
			m.importPath = ""
		case "enter":
			path := strings.TrimSpace(m.importPath)
			if path == "" {
				return m, nil
			}
			if c := m.selected(); c != nil {
				m.busy = true
				return m, m.importEmployees(c.ID.String(), path)
			}
		default:
			m.importPath = editRune(m.importPath, key)
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
		if m.cursor < len(m.page.Records)-1 {
			m.cursor++
		}
	case "/":
		m.searching = true
		m.toast = ""
	case "n":
		if m.page.HasNext() {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, m.page.Current+1)
		}
	case "p":
		if m.page.HasPrev() {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, m.page.Current-1)
		}
	case "r":
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.page.Current)
	case "a":
		m.mode = companiesForm
		m.form = companyForm{}
		m.toast = ""
		m.errMsg = ""
	case "e", "enter":
		if c := m.selected(); c != nil {
			m.mode = companiesForm
			m.form = companyForm{
				editID:    c.ID.String(),
				name:      c.Name,
				taxNumber: c.TaxNumber,
				contact:   c.Contact,
				phone:     c.Phone,
				franchise: c.Franchise,
			}
			m.toast = ""
			m.errMsg = ""
		}
	case "d":
		if m.selected() != nil {
			m.mode = companiesConfirmDisable
			m.toast = ""
		}
	case "i":
		if m.selected() != nil {
			m.mode = companiesImport
			m.importPath = ""
			m.toast = ""
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m companiesModel) updateFormKeys(key string) (companiesModel, tea.Cmd) {
	switch key {
	case "esc":
		m.mode = companiesBrowse
		return m, nil
	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % (companyFormFields + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.focus = (m.form.focus + companyFormFields) % (companyFormFields + 1)
		return m, nil
	case "enter":
		if m.form.focus < companyFormFields {
			m.form.focus++
			return m, nil
		}
		if strings.TrimSpace(m.form.name) == "" || strings.TrimSpace(m.form.taxNumber) == "" {
			m.errMsg = "name and tax number are required"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.save()
	case " ":
		if m.form.focus == companyFormFields {
			m.form.franchise = !m.form.franchise
			return m, nil
		}
	}

	switch m.form.focus {
	case 0:
		m.form.name = editRune(m.form.name, key)
	case 1:
		m.form.taxNumber = editRune(m.form.taxNumber, key)
	case 2:
		m.form.contact = editRune(m.form.contact, key)
	case 3:
		m.form.phone = editRune(m.form.phone, key)
	}
	return m, nil
}

func (m companiesModel) helpKeys() string {
	switch m.mode {
	case companiesForm:
		return helpEntry("tab", "next") + "  " + helpEntry("space", "toggle") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case companiesConfirmDisable:
		return helpEntry("y", "disable") + "  " + helpEntry("n", "keep")
	case companiesImport:
		return helpEntry("enter", "upload") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("/", "search") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "disable") + "  " + helpEntry("i", "import")
}

func (m companiesModel) View() string {
	switch m.mode {
	case companiesForm:
		return m.viewForm()
	case companiesConfirmDisable:
		return m.viewConfirm()
	case companiesImport:
		return m.viewImport()
	}
	return m.viewBrowse()
}

func (m companiesModel) viewBrowse() string {
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Companies") + "\n")

	if m.searching {
		sb.WriteString(" " + inputPromptStyle.Render("search: ") + normalStyle.Render(m.search) + cursorBarStyle.Render("▎") + "\n")
	} else if m.search != "" {
		sb.WriteString(" " + dimStyle.Render("search: "+m.search) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.errMsg != "":
		sb.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return sb.String()
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	case len(m.page.Records) == 0:
		sb.WriteString(" " + dimStyle.Render("no companies") + "\n")
		return sb.String()
	}

	for i, c := range m.page.Records {
		marker := "  "
		style := normalStyle
		if i == m.cursor {
			marker = cursorBarStyle.Render("▌ ")
			style = selectedStyle
		}
		flags := ""
		if c.Franchise {
			flags += " " + warnStyle.Render("franchise")
		}
		if c.Status == "DISABLED" || !c.DisabledAt.IsZero() {
			flags += " " + errorStyle.Render("disabled")
		}
		sb.WriteString(marker +
			style.Render(padRight(truncStr(c.Name, 32), 32)) + " " +
			dimStyle.Render(padRight(c.TaxNumber, 20)) + " " +
			metaStyle.Render(fmt.Sprintf("%4d emp", c.Employees)) +
			flags + "\n")
	}

	sb.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d · %d companies", m.page.Current, m.page.Pages, m.page.Total)))
	if m.toast != "" {
		sb.WriteString("  " + toastOKStyle.Render(m.toast))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m companiesModel) viewForm() string {
	title := "New company"
	if m.form.editID != "" {
		title = "Edit company"
	}
	fields := []struct {
		label string
		value string
	}{
		{"name", m.form.name},
		{"tax number", m.form.taxNumber},
		{"contact", m.form.contact},
		{"phone", m.form.phone},
	}

	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render(title) + "\n\n")
	for i, f := range fields {
		label := padRight(f.label, 12)
		if i == m.form.focus {
			sb.WriteString(" " + inputPromptStyle.Render(label) + normalStyle.Render(f.value) + cursorBarStyle.Render("▎") + "\n")
		} else {
			sb.WriteString(" " + dimStyle.Render(label) + normalStyle.Render(f.value) + "\n")
		}
	}
	box := "☐"
	if m.form.franchise {
		box = "☑"
	}
	line := " " + padRight("franchise", 12) + box
	if m.form.focus == companyFormFields {
		sb.WriteString(inputPromptStyle.Render(line) + "\n")
	} else {
		sb.WriteString(dimStyle.Render(line) + "\n")
	}

	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m companiesModel) viewConfirm() string {
	name := ""
	if c := m.selected(); c != nil {
		name = c.Name
	}
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Disable company") + "\n\n")
	sb.WriteString(" " + normalStyle.Render("Disable ") + selectedStyle.Render(name) + normalStyle.Render("?") + "\n")
	sb.WriteString(" " + dimStyle.Render("Disabled companies keep their history and can be re-enabled server-side.") + "\n")
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("disabling...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m companiesModel) viewImport() string {
	name := ""
	if c := m.selected(); c != nil {
		name = c.Name
	}
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Import employees") + " " + dimStyle.Render(name) + "\n\n")
	sb.WriteString(" " + dimStyle.Render("Path to an .xlsx workbook with an \"employees\" sheet.") + "\n\n")
	sb.WriteString(" " + inputPromptStyle.Render("file: ") + normalStyle.Render(m.importPath) + cursorBarStyle.Render("▎") + "\n")
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("uploading...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}
