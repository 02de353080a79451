package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/squarelake/paydesk/internal/xlsx"
	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
)

// taxSection is which of the tax tab's datasets is on screen.
type taxSection int

const (
	taxInvoices taxSection = iota
	taxQuotas
	taxBatches
	taxJobs
	taxSectionCount
)

type taxMode int

const (
	taxBrowse taxMode = iota
	taxQuotaForm
	taxQuotaConfirmDelete
	taxUploadForm
	taxSyncForm
)

// taxUploadKind selects the endpoint an upload form submits to.
type taxUploadKind int

const (
	uploadInvoices taxUploadKind = iota
	uploadNonInvoiced
	uploadTaxReport
)

type taxInvoicesMsg struct {
	gen  int
	page domain.Page[domain.Invoice]
	err  error
}

type taxQuotasMsg struct {
	gen  int
	page domain.Page[domain.InvoiceQuota]
	err  error
}

type taxBatchesMsg struct {
	gen  int
	page domain.Page[domain.ImportBatch]
	err  error
}

type taxJobsMsg struct {
	gen  int
	page domain.Page[domain.TaxSyncJob]
	err  error
}

type taxUploadedMsg struct {
	batch *domain.ImportBatch
	err   error
}

type quotaSavedMsg struct {
	err error
}

type quotaDeletedMsg struct {
	err error
}

type taxSyncStartedMsg struct {
	job *domain.TaxSyncJob
	err error
}

type quotaForm struct {
	editID    string
	companyID string
	period    string
	limit     string
	focus     int
}

type uploadForm struct {
	kind   taxUploadKind
	path   string
	period string
	focus  int
}

type syncForm struct {
	period    string
	companyID string
	focus     int
}

// taxModel is the tax and invoicing workspace: uploaded invoices, invoice
// quotas, workbook import batches, and tax-bureau sync runs.
type taxModel struct {
	client *api.Client

	section taxSection
	mode    taxMode

	invoices domain.Page[domain.Invoice]
	quotas   domain.Page[domain.InvoiceQuota]
	batches  domain.Page[domain.ImportBatch]
	jobs     domain.Page[domain.TaxSyncJob]
	cursor   int

	filtering bool
	companyID string
	seq       int

	quota  quotaForm
	upload uploadForm
	sync   syncForm

	gen     int
	loading bool
	busy    bool
	errMsg  string
	toast   string

	width  int
	height int
}

func newTaxModel(c *api.Client) taxModel {
	return taxModel{client: c}
}

func (m taxModel) start() (taxModel, tea.Cmd) {
	m.gen++
	m.mode = taxBrowse
	m.section = taxInvoices
	m.loading = true
	m.errMsg = ""
	m.toast = ""
	return m, m.load(m.gen, 1)
}

func (m taxModel) load(gen, current int) tea.Cmd {
	client := m.client
	section := m.section
	companyID := m.companyID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		switch section {
		case taxQuotas:
			page, err := client.ListQuotas(ctx, companyID, current, pageSize)
			return taxQuotasMsg{gen: gen, page: page, err: err}
		case taxBatches:
			page, err := client.ListImportBatches(ctx, "", current, pageSize)
			return taxBatchesMsg{gen: gen, page: page, err: err}
		case taxJobs:
			page, err := client.ListTaxSyncJobs(ctx, current, pageSize)
			return taxJobsMsg{gen: gen, page: page, err: err}
		default:
			page, err := client.ListInvoices(ctx, companyID, current, pageSize)
			return taxInvoicesMsg{gen: gen, page: page, err: err}
		}
	}
}

// uploadSheets names the sheet each upload kind must contain.
var uploadSheets = map[taxUploadKind]string{
	uploadInvoices:    "invoices",
	uploadNonInvoiced: "non-invoiced",
	uploadTaxReport:   "tax",
}

// doUpload validates the workbook locally, then streams it to the right
// endpoint for the form's kind.
func (m taxModel) doUpload() tea.Cmd {
	client := m.client
	f := m.upload
	path := strings.TrimSpace(f.path)
	period := strings.TrimSpace(f.period)
	return func() tea.Msg {
		if err := xlsx.RequireSheet(path, uploadSheets[f.kind]); err != nil {
			return taxUploadedMsg{err: err}
		}
		file, err := os.Open(path)
		if err != nil {
			return taxUploadedMsg{err: err}
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		name := filepath.Base(path)
		var batch *domain.ImportBatch
		switch f.kind {
		case uploadNonInvoiced:
			batch, err = client.UploadNonInvoicedBatch(ctx, name, file)
		case uploadTaxReport:
			batch, err = client.UploadTaxReport(ctx, period, name, file)
		default:
			batch, err = client.UploadInvoiceBatch(ctx, name, file)
		}
		return taxUploadedMsg{batch: batch, err: err}
	}
}

func (m taxModel) saveQuota() tea.Cmd {
	client := m.client
	f := m.quota
	return func() tea.Msg {
		limit, err := parseMoney(f.limit)
		if err != nil {
			return quotaSavedMsg{err: err}
		}
		req := api.QuotaRequest{
			CompanyID:  strings.TrimSpace(f.companyID),
			Period:     strings.TrimSpace(f.period),
			LimitCents: limit,
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if f.editID != "" {
			return quotaSavedMsg{err: client.UpdateQuota(ctx, f.editID, req)}
		}
		_, err = client.CreateQuota(ctx, req)
		return quotaSavedMsg{err: err}
	}
}

func (m taxModel) deleteQuota(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return quotaDeletedMsg{err: client.DeleteQuota(ctx, id)}
	}
}

func (m taxModel) startSync() tea.Cmd {
	client := m.client
	f := m.sync
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		job, err := client.TriggerTaxSync(ctx, strings.TrimSpace(f.period), strings.TrimSpace(f.companyID))
		return taxSyncStartedMsg{job: job, err: err}
	}
}

func (m taxModel) editing() bool {
	return m.filtering || m.mode == taxQuotaForm || m.mode == taxUploadForm || m.mode == taxSyncForm
}

// sectionLen is how many rows the current section has on screen.
func (m taxModel) sectionLen() int {
	switch m.section {
	case taxQuotas:
		return len(m.quotas.Records)
	case taxBatches:
		return len(m.batches.Records)
	case taxJobs:
		return len(m.jobs.Records)
	default:
		return len(m.invoices.Records)
	}
}

func (m taxModel) sectionPage() (current int, pages, total int64) {
	switch m.section {
	case taxQuotas:
		return m.quotas.Current, m.quotas.Pages, m.quotas.Total
	case taxBatches:
		return m.batches.Current, m.batches.Pages, m.batches.Total
	case taxJobs:
		return m.jobs.Current, m.jobs.Pages, m.jobs.Total
	default:
		return m.invoices.Current, m.invoices.Pages, m.invoices.Total
	}
}

func (m taxModel) Update(msg tea.Msg) (taxModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case taxInvoicesMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.invoices = msg.page
		m.clampCursor()
		return m, nil

	case taxQuotasMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.quotas = msg.page
		m.clampCursor()
		return m, nil

	case taxBatchesMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.batches = msg.page
		m.clampCursor()
		return m, nil

	case taxJobsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.jobs = msg.page
		m.clampCursor()
		return m, nil

	case ticketSearchTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.gen++
		m.loading = true
		return m, m.load(m.gen, 1)

	case taxUploadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = taxBrowse
		if msg.batch != nil {
			m.toast = fmt.Sprintf("uploaded %s: %d/%d rows accepted", msg.batch.Filename, msg.batch.Accepted, msg.batch.Rows)
		} else {
			m.toast = "upload accepted"
		}
		m.section = taxBatches
		m.gen++
		m.loading = true
		return m, m.load(m.gen, 1)

	case quotaSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = localOrAPIError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = taxBrowse
		m.toast = "quota saved"
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.quotas.Current)

	case quotaDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = taxBrowse
		m.toast = "quota deleted"
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.quotas.Current)

	case taxSyncStartedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = taxBrowse
		if msg.job != nil {
			m.toast = "sync started for " + msg.job.Period
		} else {
			m.toast = "sync started"
		}
		m.section = taxJobs
		m.gen++
		m.loading = true
		return m, m.load(m.gen, 1)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *taxModel) clampCursor() {
	if n := m.sectionLen(); m.cursor >= n {
		m.cursor = 0
	}
}

func (m taxModel) switchSection(s taxSection) (taxModel, tea.Cmd) {
	m.section = s
	m.cursor = 0
	m.toast = ""
	m.gen++
	m.loading = true
	return m, m.load(m.gen, 1)
}

func (m taxModel) updateKeys(msg tea.KeyMsg) (taxModel, tea.Cmd) {
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
			m.companyID = editRune(m.companyID, key)
		}
		m.seq++
		seq := m.seq
		return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return ticketSearchTickMsg{seq: seq}
		})
	}

	switch m.mode {
	case taxQuotaForm:
		return m.updateQuotaFormKeys(key)
	case taxUploadForm:
		return m.updateUploadFormKeys(key)
	case taxSyncForm:
		return m.updateSyncFormKeys(key)
	case taxQuotaConfirmDelete:
		switch key {
		case "y", "enter":
			if m.cursor < len(m.quotas.Records) {
				m.busy = true
				return m, m.deleteQuota(m.quotas.Records[m.cursor].ID.String())
			}
			m.mode = taxBrowse
		case "n", "esc":
			m.mode = taxBrowse
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
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}
	case "tab":
		return m.switchSection((m.section + 1) % taxSectionCount)
	case "shift+tab":
		return m.switchSection((m.section + taxSectionCount - 1) % taxSectionCount)
	case "/":
		if m.section == taxInvoices || m.section == taxQuotas {
			m.filtering = true
			m.toast = ""
		}
	case "n":
		current, pages, _ := m.sectionPage()
		if int64(current) < pages {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, current+1)
		}
	case "p":
		current, _, _ := m.sectionPage()
		if current > 1 {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, current-1)
		}
	case "r":
		current, _, _ := m.sectionPage()
		m.gen++
		m.loading = true
		return m, m.load(m.gen, current)
	case "u":
		m.mode = taxUploadForm
		m.upload = uploadForm{kind: uploadInvoices}
		m.toast = ""
		m.errMsg = ""
	case "o":
		m.mode = taxUploadForm
		m.upload = uploadForm{kind: uploadNonInvoiced}
		m.toast = ""
		m.errMsg = ""
	case "x":
		m.mode = taxUploadForm
		m.upload = uploadForm{kind: uploadTaxReport}
		m.toast = ""
		m.errMsg = ""
	case "s":
		m.mode = taxSyncForm
		m.sync = syncForm{}
		m.toast = ""
		m.errMsg = ""
	case "a":
		if m.section == taxQuotas {
			m.mode = taxQuotaForm
			m.quota = quotaForm{}
			m.toast = ""
			m.errMsg = ""
		}
	case "e", "enter":
		if m.section == taxQuotas && m.cursor < len(m.quotas.Records) {
			q := m.quotas.Records[m.cursor]
			m.mode = taxQuotaForm
			m.quota = quotaForm{
				editID:    q.ID.String(),
				companyID: q.CompanyID,
				period:    q.Period,
				limit:     formatCents(q.LimitCents),
			}
			m.toast = ""
			m.errMsg = ""
		}
	case "d":
		if m.section == taxQuotas && m.cursor < len(m.quotas.Records) {
			m.mode = taxQuotaConfirmDelete
			m.toast = ""
		}
	}
	return m, nil
}

func (m taxModel) updateQuotaFormKeys(key string) (taxModel, tea.Cmd) {
	const fields = 3
	switch key {
	case "esc":
		m.mode = taxBrowse
		return m, nil
	case "tab", "down":
		m.quota.focus = (m.quota.focus + 1) % fields
		return m, nil
	case "shift+tab", "up":
		m.quota.focus = (m.quota.focus + fields - 1) % fields
		return m, nil
	case "enter":
		if m.quota.focus < fields-1 {
			m.quota.focus++
			return m, nil
		}
		if strings.TrimSpace(m.quota.companyID) == "" || strings.TrimSpace(m.quota.period) == "" {
			m.errMsg = "company id and period are required"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.saveQuota()
	}
	switch m.quota.focus {
	case 0:
		m.quota.companyID = editRune(m.quota.companyID, key)
	case 1:
		m.quota.period = editRune(m.quota.period, key)
	case 2:
		m.quota.limit = editRune(m.quota.limit, key)
	}
	return m, nil
}

func (m taxModel) updateUploadFormKeys(key string) (taxModel, tea.Cmd) {
	fields := 1
	if m.upload.kind == uploadTaxReport {
		fields = 2 // path + period
	}
	switch key {
	case "esc":
		m.mode = taxBrowse
		return m, nil
	case "tab", "down", "shift+tab", "up":
		m.upload.focus = (m.upload.focus + 1) % fields
		return m, nil
	case "enter":
		if m.upload.focus < fields-1 {
			m.upload.focus++
			return m, nil
		}
		if strings.TrimSpace(m.upload.path) == "" {
			m.errMsg = "file path is required"
			return m, nil
		}
		if m.upload.kind == uploadTaxReport && strings.TrimSpace(m.upload.period) == "" {
			m.errMsg = "period is required"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.doUpload()
	}
	if m.upload.focus == 0 {
		m.upload.path = editRune(m.upload.path, key)
	} else {
		m.upload.period = editRune(m.upload.period, key)
	}
	return m, nil
}

func (m taxModel) updateSyncFormKeys(key string) (taxModel, tea.Cmd) {
	const fields = 2
	switch key {
	case "esc":
		m.mode = taxBrowse
		return m, nil
	case "tab", "down", "shift+tab", "up":
		m.sync.focus = (m.sync.focus + 1) % fields
		return m, nil
	case "enter":
		if m.sync.focus < fields-1 {
			m.sync.focus++
			return m, nil
		}
		if strings.TrimSpace(m.sync.period) == "" {
			m.errMsg = "period is required"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.startSync()
	}
	if m.sync.focus == 0 {
		m.sync.period = editRune(m.sync.period, key)
	} else {
		m.sync.companyID = editRune(m.sync.companyID, key)
	}
	return m, nil
}

func sectionTitle(s taxSection) string {
	switch s {
	case taxQuotas:
		return "Quotas"
	case taxBatches:
		return "Import Batches"
	case taxJobs:
		return "Sync Jobs"
	default:
		return "Invoices"
	}
}

func (m taxModel) helpKeys() string {
	switch m.mode {
	case taxQuotaForm, taxUploadForm, taxSyncForm:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "cancel")
	case taxQuotaConfirmDelete:
		return helpEntry("y", "delete") + "  " + helpEntry("n", "keep")
	}
	h := helpEntry("tab", "section") + "  " + helpEntry("u", "invoices") + "  " + helpEntry("o", "non-invoiced") + "  " + helpEntry("x", "tax report") + "  " + helpEntry("s", "sync")
	if m.section == taxQuotas {
		h += "  " + helpEntry("a/e/d", "quota")
	}
	return h
}

func (m taxModel) View() string {
	switch m.mode {
	case taxQuotaForm:
		return m.viewQuotaForm()
	case taxUploadForm:
		return m.viewUploadForm()
	case taxSyncForm:
		return m.viewSyncForm()
	case taxQuotaConfirmDelete:
		return m.viewConfirm()
	}
	return m.viewBrowse()
}

func (m taxModel) viewBrowse() string {
	var sb strings.Builder

	// section strip
	sb.WriteString("\n ")
	for s := taxSection(0); s < taxSectionCount; s++ {
		title := sectionTitle(s)
		if s == m.section {
			sb.WriteString(headerStyle.Render(title))
		} else {
			sb.WriteString(metaStyle.Render(title))
		}
		if s < taxSectionCount-1 {
			sb.WriteString(dimStyle.Render(" · "))
		}
	}
	sb.WriteString("\n")

	if m.filtering {
		sb.WriteString(" " + inputPromptStyle.Render("company: ") + normalStyle.Render(m.companyID) + cursorBarStyle.Render("▎") + "\n")
	} else if m.companyID != "" {
		sb.WriteString(" " + dimStyle.Render("company: "+m.companyID) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.errMsg != "":
		sb.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return sb.String()
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	case m.sectionLen() == 0:
		sb.WriteString(" " + dimStyle.Render("nothing here") + "\n")
		return sb.String()
	}

	switch m.section {
	case taxQuotas:
		for i, q := range m.quotas.Records {
			marker, style := m.rowStyle(i)
			used := fmt.Sprintf("%s / %s", formatCents(q.UsedCents), formatCents(q.LimitCents))
			usedStyle := normalStyle
			if q.UsedCents >= q.LimitCents {
				usedStyle = errorStyle
			}
			sb.WriteString(marker +
				style.Render(padRight(q.CompanyID, 24)) + " " +
				dimStyle.Render(padRight(q.Period, 9)) + " " +
				usedStyle.Render(used) + "\n")
		}
	case taxBatches:
		for i, b := range m.batches.Records {
			marker, style := m.rowStyle(i)
			sb.WriteString(marker +
				statusStyle(b.Status).Render(padRight(b.Status, 10)) + " " +
				style.Render(padRight(truncStr(b.Filename, 32), 32)) + " " +
				dimStyle.Render(padRight(b.Kind, 14)) + " " +
				normalStyle.Render(fmt.Sprintf("%d/%d ok", b.Accepted, b.Rows)) + " " +
				metaStyle.Render(formatTime(b.CreatedAt)) + "\n")
		}
	case taxJobs:
		for i, j := range m.jobs.Records {
			marker, style := m.rowStyle(i)
			msgText := j.Message
			if msgText == "" && !j.FinishedAt.IsZero() {
				msgText = "finished " + formatTime(j.FinishedAt)
			}
			sb.WriteString(marker +
				statusStyle(j.Status).Render(padRight(j.Status, 10)) + " " +
				style.Render(padRight(j.Period, 9)) + " " +
				dimStyle.Render(padRight(truncStr(j.CompanyID, 24), 24)) + " " +
				metaStyle.Render(truncStr(msgText, 32)) + "\n")
		}
	default:
		for i, inv := range m.invoices.Records {
			marker, style := m.rowStyle(i)
			sb.WriteString(marker +
				statusStyle(inv.Status).Render(padRight(inv.Status, 10)) + " " +
				style.Render(padRight(inv.Number, 18)) + " " +
				normalStyle.Render(padRight(formatCents(inv.AmountCents), 12)) + " " +
				dimStyle.Render(padRight(truncStr(inv.CompanyID, 24), 24)) + " " +
				metaStyle.Render(inv.IssuedAt.Format("2006-01-02")) + "\n")
		}
	}

	current, pages, total := m.sectionPage()
	sb.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d · %d rows", current, pages, total)))
	if m.toast != "" {
		sb.WriteString("  " + toastOKStyle.Render(m.toast))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m taxModel) rowStyle(i int) (string, lipgloss.Style) {
	if i == m.cursor {
		return cursorBarStyle.Render("▌ "), selectedStyle
	}
	return "  ", normalStyle
}

func (m taxModel) viewQuotaForm() string {
	title := "New quota"
	if m.quota.editID != "" {
		title = "Edit quota"
	}
	fields := []struct {
		label string
		value string
	}{
		{"company id", m.quota.companyID},
		{"period", m.quota.period},
		{"limit", m.quota.limit},
	}
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render(title) + "\n\n")
	for i, f := range fields {
		label := padRight(f.label, 12)
		if i == m.quota.focus {
			sb.WriteString(" " + inputPromptStyle.Render(label) + normalStyle.Render(f.value) + cursorBarStyle.Render("▎") + "\n")
		} else {
			sb.WriteString(" " + dimStyle.Render(label) + normalStyle.Render(f.value) + "\n")
		}
	}
	sb.WriteString(" " + metaStyle.Render("period is YYYY-MM; limit is a money amount, e.g. 125000.00") + "\n")
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m taxModel) uploadTitle() string {
	switch m.upload.kind {
	case uploadNonInvoiced:
		return "Upload non-invoiced income"
	case uploadTaxReport:
		return "Upload tax report"
	default:
		return "Upload invoice batch"
	}
}

func (m taxModel) viewUploadForm() string {
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render(m.uploadTitle()) + "\n\n")
	sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("Workbook must contain a %q sheet.", uploadSheets[m.upload.kind])) + "\n\n")

	if m.upload.focus == 0 {
		sb.WriteString(" " + inputPromptStyle.Render(padRight("file", 8)) + normalStyle.Render(m.upload.path) + cursorBarStyle.Render("▎") + "\n")
	} else {
		sb.WriteString(" " + dimStyle.Render(padRight("file", 8)) + normalStyle.Render(m.upload.path) + "\n")
	}
	if m.upload.kind == uploadTaxReport {
		if m.upload.focus == 1 {
			sb.WriteString(" " + inputPromptStyle.Render(padRight("period", 8)) + normalStyle.Render(m.upload.period) + cursorBarStyle.Render("▎") + "\n")
		} else {
			sb.WriteString(" " + dimStyle.Render(padRight("period", 8)) + normalStyle.Render(m.upload.period) + "\n")
		}
	}
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("uploading...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m taxModel) viewSyncForm() string {
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Tax bureau sync") + "\n\n")
	if m.sync.focus == 0 {
		sb.WriteString(" " + inputPromptStyle.Render(padRight("period", 12)) + normalStyle.Render(m.sync.period) + cursorBarStyle.Render("▎") + "\n")
	} else {
		sb.WriteString(" " + dimStyle.Render(padRight("period", 12)) + normalStyle.Render(m.sync.period) + "\n")
	}
	if m.sync.focus == 1 {
		sb.WriteString(" " + inputPromptStyle.Render(padRight("company id", 12)) + normalStyle.Render(m.sync.companyID) + cursorBarStyle.Render("▎") + "\n")
	} else {
		sb.WriteString(" " + dimStyle.Render(padRight("company id", 12)) + normalStyle.Render(m.sync.companyID) + "\n")
	}
	sb.WriteString(" " + metaStyle.Render("company id is optional; leave empty to sync every company") + "\n")
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("starting...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m taxModel) viewConfirm() string {
	row := ""
	if m.cursor < len(m.quotas.Records) {
		q := m.quotas.Records[m.cursor]
		row = q.CompanyID + " " + q.Period
	}
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Delete quota") + "\n\n")
	sb.WriteString(" " + normalStyle.Render("Delete quota ") + selectedStyle.Render(row) + normalStyle.Render("?") + "\n")
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("deleting...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}
