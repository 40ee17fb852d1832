package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/email"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/pricing"
)

// Receipt is a rendered booking confirmation.
type Receipt struct {
	Subject  string
	BodyHTML string
	BodyText string
}

type ReceiptService interface {
	BuildConfirmation(booking *entity.Booking) (*Receipt, error)
	SendConfirmation(ctx context.Context, booking *entity.Booking) error
}

type receiptService struct {
	sender email.EmailSender
	log    logger.Logger
}

// NewReceiptService accepts a nil sender; confirmations are then rendered
// but not sent.
func NewReceiptService(sender email.EmailSender, log logger.Logger) ReceiptService {
	return &receiptService{
		sender: sender,
		log:    log.Named("receipt"),
	}
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<h2>Your Shalean booking is confirmed</h2>
<p>Hi {{.Name}},</p>
<p>Thank you for booking <strong>{{.ServiceName}}</strong> on {{.Date}} at {{.Time}}.</p>
<table>
<tr><td>Address</td><td>{{.Address}}</td></tr>
{{if .Location}}<tr><td>Area</td><td>{{.Location}}</td></tr>{{end}}
{{if .Cleaner}}<tr><td>Cleaner</td><td>{{.Cleaner}}</td></tr>{{end}}
{{range .Lines}}<tr><td>{{.Label}}</td><td>{{.Amount}}</td></tr>
{{end}}<tr><td><strong>Total paid</strong></td><td><strong>{{.Total}}</strong></td></tr>
</table>
<p>Payment reference: {{.Reference}}</p>`))

type receiptLine struct {
	Label  string
	Amount string
}

type receiptData struct {
	Name        string
	ServiceName string
	Date        string
	Time        string
	Address     string
	Location    string
	Cleaner     string
	Lines       []receiptLine
	Total       string
	Reference   string
}

func newReceiptData(b *entity.Booking) receiptData {
	data := receiptData{
		Name:        b.Contact.Name,
		ServiceName: b.ServiceName,
		Date:        b.ScheduledDate.Format(entity.DateLayout),
		Time:        b.ScheduledTime,
		Address:     b.Address,
		Cleaner:     b.CleanerName,
		Total:       pricing.FormatPrice(b.Pricing.Total),
	}
	if data.Name == "" {
		data.Name = "there"
	}
	if b.SuburbName != "" {
		data.Location = strings.TrimSuffix(b.SuburbName+", "+b.RegionName, ", ")
	}
	if b.Payment != nil {
		data.Reference = b.Payment.Reference
	}

	data.Lines = append(data.Lines, receiptLine{Label: b.ServiceName, Amount: pricing.FormatPrice(b.Pricing.BasePrice)})
	if b.Pricing.BedroomPrice.IsPositive() {
		data.Lines = append(data.Lines, receiptLine{Label: fmt.Sprintf("Bedrooms (x%d)", b.Bedrooms), Amount: pricing.FormatPrice(b.Pricing.BedroomPrice)})
	}
	if b.Pricing.BathroomPrice.IsPositive() {
		data.Lines = append(data.Lines, receiptLine{Label: fmt.Sprintf("Bathrooms (x%d)", b.Bathrooms), Amount: pricing.FormatPrice(b.Pricing.BathroomPrice)})
	}
	for _, item := range b.Items {
		data.Lines = append(data.Lines, receiptLine{
			Label:  fmt.Sprintf("%s (x%d)", item.Name, item.Quantity),
			Amount: pricing.FormatPrice(item.TotalPrice),
		})
	}
	data.Lines = append(data.Lines, receiptLine{Label: "Service fee", Amount: pricing.FormatPrice(b.Pricing.ServiceFee)})
	return data
}

func (s *receiptService) BuildConfirmation(b *entity.Booking) (*Receipt, error) {
	data := newReceiptData(b)

	var html bytes.Buffer
	if err := confirmationTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render confirmation for booking %s: %w", b.ID, err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\nYour booking %s is confirmed.\n\n", data.Name, b.ID)
	fmt.Fprintf(&text, "Service: %s\nDate: %s at %s\nAddress: %s\n", data.ServiceName, data.Date, data.Time, data.Address)
	if data.Location != "" {
		fmt.Fprintf(&text, "Area: %s\n", data.Location)
	}
	if data.Cleaner != "" {
		fmt.Fprintf(&text, "Cleaner: %s\n", data.Cleaner)
	}
	text.WriteString("\n")
	for _, line := range data.Lines {
		fmt.Fprintf(&text, "- %s: %s\n", line.Label, line.Amount)
	}
	fmt.Fprintf(&text, "Total paid: %s\n", data.Total)
	if data.Reference != "" {
		fmt.Fprintf(&text, "Payment reference: %s\n", data.Reference)
	}

	return &Receipt{
		Subject:  fmt.Sprintf("Booking confirmed: %s on %s", b.ServiceName, data.Date),
		BodyHTML: html.String(),
		BodyText: text.String(),
	}, nil
}

func (s *receiptService) SendConfirmation(ctx context.Context, b *entity.Booking) error {
	if s.sender == nil {
		s.log.Debugf("No e-mail sender configured, skipping confirmation for booking %s", b.ID)
		return nil
	}
	if b.Contact.Email == "" {
		s.log.Warnf("Booking %s has no contact e-mail, skipping confirmation", b.ID)
		return nil
	}

	receipt, err := s.BuildConfirmation(b)
	if err != nil {
		s.log.Errorf("Failed to build confirmation for booking %s: %v", b.ID, err)
		return err
	}
	if err := s.sender.Send(ctx, []string{b.Contact.Email}, receipt.Subject, receipt.BodyHTML, receipt.BodyText); err != nil {
		return fmt.Errorf("failed to send confirmation for booking %s: %w", b.ID, err)
	}
	s.log.Infof("Confirmation for booking %s sent to %s", b.ID, b.Contact.Email)
	return nil
}
