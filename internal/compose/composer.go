// Package compose renders RFQ email subjects and bodies.
package compose

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// DefaultCUIWarning is shown on messages to CUI-approved vendors.
const DefaultCUIWarning = "This email contains Controlled Unclassified Information (CUI) that is subject to safeguarding or dissemination controls."

//go:embed templates/rfq.html.tmpl
var templateFS embed.FS

// Options configures a Composer.
type Options struct {
	// BodyTemplate is an optional html/template file overriding the built-in body.
	BodyTemplate string
	// SampleTable is an optional CSV whose header defines the vendor-fillable table.
	SampleTable   string
	SubjectPrefix string
	Signature     string
	CUIWarning    string
	// DueIn adds a requested response date when positive.
	DueIn         time.Duration
	CUIProtection bool
}

// Composer builds outbound messages. It is safe to reuse across a run.
type Composer struct {
	now       func() time.Time
	tmpl      *template.Template
	sample    *SampleTemplate
	converter *md.Converter
	opts      Options
}

// templateData is the context handed to the body template.
type templateData struct {
	Item           model.QueueItem
	Vendor         model.Vendor
	Contact        model.Contact
	SampleTable    *SampleTable
	Greeting       string
	CUIWarning     string
	DueDate        string
	Quantities     []string
	Attachments    []string
	SignatureLines []string
}

var funcs = template.FuncMap{
	"basename": filepath.Base,
	"join":     strings.Join,
}

// New creates a composer, loading any template assets named in opts.
func New(opts Options) (*Composer, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if opts.BodyTemplate != "" {
		tmpl, err = template.New(filepath.Base(opts.BodyTemplate)).Funcs(funcs).ParseFiles(opts.BodyTemplate)
	} else {
		tmpl, err = template.New("rfq.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/rfq.html.tmpl")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse body template: %w", err)
	}

	c := &Composer{
		opts: opts,
		tmpl: tmpl,
		now:  time.Now,
	}

	if opts.SampleTable != "" {
		if _, statErr := os.Stat(opts.SampleTable); statErr == nil {
			c.sample, err = LoadSampleTemplate(opts.SampleTable)
			if err != nil {
				return nil, err
			}
		}
	}

	if c.opts.CUIWarning == "" {
		c.opts.CUIWarning = DefaultCUIWarning
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	c.converter = converter

	return c, nil
}

// Subject builds the subject line for one item and vendor.
func (c *Composer) Subject(item model.QueueItem, vendor model.Vendor) string {
	var subject string
	if item.QuoteID != "" {
		subject = fmt.Sprintf("RFQ for Quote %s - %s", item.QuoteID, item.Process)
	} else {
		subject = fmt.Sprintf("RFQ for Part %s - %s", item.PartNumber, item.Process)
	}
	if c.opts.SubjectPrefix != "" {
		subject = c.opts.SubjectPrefix + " " + subject
	}
	if c.cuiApplies(vendor) {
		subject = "[CUI] " + subject
	}
	return subject
}

// Compose renders the HTML body. Missing optional item fields render blank.
func (c *Composer) Compose(item model.QueueItem, vendor model.Vendor, contact model.Contact, attachments []string) (string, error) {
	data := templateData{
		Item:           item,
		Vendor:         vendor,
		Contact:        contact,
		Greeting:       greeting(contact, vendor),
		Quantities:     item.Quantities(),
		Attachments:    attachments,
		SignatureLines: splitLines(c.opts.Signature),
	}
	if c.cuiApplies(vendor) {
		data.CUIWarning = c.opts.CUIWarning
	}
	if c.opts.DueIn > 0 {
		data.DueDate = c.now().Add(c.opts.DueIn).Format("2006-01-02")
	}
	if c.sample != nil {
		data.SampleTable = c.sample.For(item)
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render body: %w", err)
	}
	return buf.String(), nil
}

// Message builds the complete outbound message, including a plain-text part.
func (c *Composer) Message(item model.QueueItem, vendor model.Vendor, contact model.Contact, attachments []string) (model.OutboundMessage, error) {
	body, err := c.Compose(item, vendor, contact, attachments)
	if err != nil {
		return model.OutboundMessage{}, err
	}

	text, err := c.converter.ConvertString(body)
	if err != nil {
		return model.OutboundMessage{}, fmt.Errorf("failed to build plain-text body: %w", err)
	}

	return model.OutboundMessage{
		To:          contact.Email,
		ToName:      contact.FirstName,
		Subject:     c.Subject(item, vendor),
		HTMLBody:    body,
		TextBody:    text,
		Attachments: append([]string(nil), attachments...),
	}, nil
}

func (c *Composer) cuiApplies(vendor model.Vendor) bool {
	return c.opts.CUIProtection && vendor.IsCUIApproved()
}

func greeting(contact model.Contact, vendor model.Vendor) string {
	if contact.FirstName != "" {
		return contact.FirstName
	}
	if vendor.Name != "" {
		return vendor.Name
	}
	return contact.VendorID
}

func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(s, `\n`, "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
