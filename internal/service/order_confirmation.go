package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/orderdesk/emailer/internal/email"
	"github.com/orderdesk/emailer/internal/logger"
	"github.com/orderdesk/emailer/internal/model"
)

const (
	// orderConfirmationTemplate is the fixed template the confirmation
	// body is rendered from.
	orderConfirmationTemplate = "order_confirmation"
	// orderFormAttachmentName is the filename the fetched order form is
	// attached under.
	orderFormAttachmentName = "OrderForm.pdf"

	// Legacy placeholder values for optional display fields. These are
	// kept verbatim for parity with the previous system; "__email__" in
	// particular ends up in the recipient list when the creator has no
	// email on record.
	fallbackUserEmail = "__email__"
	fallbackBuyerName = "buyer_name"
	valueNotAvailable = "N/A"
)

// ErrMissingRequiredField is returned when the request lacks one of the
// identifiers needed to look up the order.
var ErrMissingRequiredField = errors.New("tenant_id, user_id and document_id are required")

// OrderStore looks up order records.
type OrderStore interface {
	GetByID(ctx context.Context, tenantID, userID, documentID string) (*model.Order, error)
}

// UserStore looks up users.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// BuyerStore looks up buyers.
type BuyerStore interface {
	GetByID(ctx context.Context, id string) (*model.Buyer, error)
}

// SettingsStore looks up tenant-scoped settings by key.
type SettingsStore interface {
	GetByKey(ctx context.Context, tenantID, key string) (*model.EmailerSettings, error)
}

// DocumentFetcher downloads raw document content.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Renderer renders a named template to HTML.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// SendRequest is the payload that triggers an order confirmation email.
type SendRequest struct {
	TenantID             string          `json:"tenant_id"`
	UserID               string          `json:"user_id"`
	DocumentID           string          `json:"document_id"`
	DocumentURL          string          `json:"document_url,omitempty"`
	InternalEmails       []InternalEmail `json:"internal_emails"`
	CustomerServiceEmail string          `json:"customer_service_email,omitempty"`
	SupportEmail         string          `json:"support_email"`
	BrandingImage        string          `json:"branding_image"`
	FromEmail            string          `json:"from_email"`
}

// InternalEmail is one internal staff address to CC.
type InternalEmail struct {
	Email string `json:"email"`
}

// OrderConfirmationData is the payload the confirmation template is
// rendered with.
type OrderConfirmationData struct {
	OrderNumber       string
	BuyerName         string
	OrderCreationDate string
	OrderValue        string
	TotalItems        string
	SupportEmailID    string
	BrandingImage     string
}

// OrderConfirmationNotifier composes and dispatches order confirmation
// emails. It holds no state across sends; every Send call is an
// independent, strictly sequential pipeline.
type OrderConfirmationNotifier struct {
	orders   OrderStore
	users    UserStore
	buyers   BuyerStore
	settings SettingsStore
	fetcher  DocumentFetcher
	renderer Renderer
	sender   email.Sender
	log      *logger.Logger
}

// NewOrderConfirmationNotifier creates a new OrderConfirmationNotifier.
func NewOrderConfirmationNotifier(
	orders OrderStore,
	users UserStore,
	buyers BuyerStore,
	settings SettingsStore,
	fetcher DocumentFetcher,
	renderer Renderer,
	sender email.Sender,
	log *logger.Logger,
) *OrderConfirmationNotifier {
	return &OrderConfirmationNotifier{
		orders:   orders,
		users:    users,
		buyers:   buyers,
		settings: settings,
		fetcher:  fetcher,
		renderer: renderer,
		sender:   sender,
		log:      log.WithComponent("order_confirmation"),
	}
}

// Send gathers the order, user and buyer records, renders the
// confirmation template and hands the message to the mail sender.
// There is no retry anywhere; the first failing step aborts the send
// and surfaces to the caller.
func (n *OrderConfirmationNotifier) Send(ctx context.Context, req SendRequest) error {
	if req.TenantID == "" || req.UserID == "" || req.DocumentID == "" {
		return ErrMissingRequiredField
	}

	order, err := n.orders.GetByID(ctx, req.TenantID, req.UserID, req.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to get order %s: %w", req.DocumentID, err)
	}

	user, err := n.users.GetByID(ctx, order.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to get user %s: %w", order.CreatedBy, err)
	}
	userEmail := user.EmailOrDefault(fallbackUserEmail)

	buyer, err := n.buyers.GetByID(ctx, order.BuyerID)
	if err != nil {
		return fmt.Errorf("failed to get buyer %s: %w", order.BuyerID, err)
	}
	buyerName := buyer.DisplayNameOrDefault(fallbackBuyerName)

	orderValue := valueNotAvailable
	if order.TotalValue != nil {
		orderValue = formatAmount(*order.TotalValue)
	}

	totalItems := valueNotAvailable
	if count := order.CartDetails.ItemCount(); count > 0 {
		totalItems = strconv.Itoa(count)
	}

	// The order form is fetched before composing the message; a failed
	// download aborts the whole send.
	var documentContent []byte
	if req.DocumentURL != "" {
		documentContent, err = n.fetcher.Fetch(ctx, req.DocumentURL)
		if err != nil {
			return fmt.Errorf("failed to fetch order form: %w", err)
		}
	}

	// Time of sending, not the order's actual creation time. Kept for
	// parity with the previous system.
	orderCreationDate := time.Now().Format("01/02/2006")

	recipients := make([]string, 0, len(order.NotificationEmailIDs)+2)
	recipients = append(recipients, order.NotificationEmailIDs...)
	if req.CustomerServiceEmail != "" {
		recipients = append(recipients, req.CustomerServiceEmail)
	}
	recipients = append(recipients, userEmail)
	toEmail := strings.Trim(strings.Join(recipients, ","), ",")

	adminEmails := make([]string, 0, len(req.InternalEmails))
	for _, internal := range req.InternalEmails {
		adminEmails = append(adminEmails, internal.Email)
	}
	adminList := strings.Join(adminEmails, ",")

	// Tenant emailer settings are looked up for parity with the legacy
	// flow; nothing consumes them downstream yet.
	emailerSettings, err := n.settings.GetByKey(ctx, req.TenantID, model.EmailerSettingsKey)
	if err != nil {
		return fmt.Errorf("failed to get emailer settings: %w", err)
	}
	n.log.Debug().
		Str("tenant_id", req.TenantID).
		Int("values", len(emailerSettings.Values)).
		Msg("fetched emailer settings")

	data := OrderConfirmationData{
		OrderNumber:       order.SystemID,
		BuyerName:         buyerName,
		OrderCreationDate: orderCreationDate,
		OrderValue:        orderValue,
		TotalItems:        totalItems,
		SupportEmailID:    req.SupportEmail,
		BrandingImage:     req.BrandingImage,
	}

	html, err := n.renderer.Render(orderConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation: %w", err)
	}

	msg := email.Message{
		TenantID: req.TenantID,
		From:     req.FromEmail,
		To:       toEmail,
		CC:       adminList,
		BCC:      []string{},
		Subject:  fmt.Sprintf("Order confirmation - #%s for %s", data.OrderNumber, data.BuyerName),
		HTMLBody: html,
	}
	if req.DocumentURL != "" {
		msg.Attachments = []email.Attachment{
			{Filename: orderFormAttachmentName, Content: documentContent},
		}
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to dispatch order confirmation: %w", err)
	}

	n.log.Info().
		Str("tenant_id", req.TenantID).
		Str("order_number", order.SystemID).
		Str("to", toEmail).
		Msg("order confirmation sent")

	return nil
}

// formatAmount renders an amount with standard comma grouping,
// e.g. 1234567.5 becomes "1,234,567.5".
func formatAmount(amount float64) string {
	return humanize.Commaf(amount)
}
