package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/emailer/internal/config"
	"github.com/orderdesk/emailer/internal/email"
	"github.com/orderdesk/emailer/internal/fetch"
	"github.com/orderdesk/emailer/internal/logger"
	"github.com/orderdesk/emailer/internal/model"
	"github.com/orderdesk/emailer/internal/repository"
	"github.com/orderdesk/emailer/internal/service"
)

type stubOrders struct {
	order *model.Order
	err   error
}

func (s *stubOrders) GetByID(context.Context, string, string, string) (*model.Order, error) {
	return s.order, s.err
}

type stubUsers struct{ user *model.User }

func (s *stubUsers) GetByID(context.Context, string) (*model.User, error) {
	return s.user, nil
}

type stubBuyers struct{ buyer *model.Buyer }

func (s *stubBuyers) GetByID(context.Context, string) (*model.Buyer, error) {
	return s.buyer, nil
}

type stubSettings struct{}

func (stubSettings) GetByKey(_ context.Context, tenantID, key string) (*model.EmailerSettings, error) {
	return &model.EmailerSettings{TenantID: tenantID, Key: key}, nil
}

type stubFetcher struct{ err error }

func (s *stubFetcher) Fetch(context.Context, string) ([]byte, error) {
	return []byte("pdf"), s.err
}

type stubRenderer struct{}

func (stubRenderer) Render(string, any) (string, error) {
	return "<html></html>", nil
}

func newTestHandler(orders *stubOrders, fetcher *stubFetcher) (*Handler, *email.MemorySender) {
	log := logger.New("error", "json")
	sender := email.NewMemorySender()

	userEmail := "buyer@y.com"
	buyerName := "Acme"

	notifier := service.NewOrderConfirmationNotifier(
		orders,
		&stubUsers{user: &model.User{ID: "u1", Email: &userEmail}},
		&stubBuyers{buyer: &model.Buyer{ID: "b1", DisplayName: &buyerName}},
		stubSettings{},
		fetcher,
		stubRenderer{},
		sender,
		log,
	)

	return New(nil, nil, log, &config.Config{}, notifier), sender
}

func validBody() string {
	return `{
		"tenant_id": "t1",
		"user_id": "u1",
		"document_id": "d1",
		"internal_emails": [{"email": "a@x.com"}],
		"from_email": "noreply@x.com",
		"support_email": "help@x.com",
		"branding_image": "img.png"
	}`
}

func postConfirmation(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/order-confirmation", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SendOrderConfirmation(rec, req)
	return rec
}

func TestSendOrderConfirmation_Accepted(t *testing.T) {
	h, sender := newTestHandler(
		&stubOrders{order: &model.Order{ID: "d1", TenantID: "t1", SystemID: "SO-100", CreatedBy: "u1", BuyerID: "b1"}},
		&stubFetcher{},
	)

	rec := postConfirmation(h, validBody())

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sent"`)
	require.Len(t, sender.Messages, 1)
	assert.Equal(t, "Order confirmation - #SO-100 for Acme", sender.Messages[0].Subject)
}

func TestSendOrderConfirmation_InvalidBody(t *testing.T) {
	h, sender := newTestHandler(&stubOrders{}, &stubFetcher{})

	rec := postConfirmation(h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
	assert.Empty(t, sender.Messages)
}

func TestSendOrderConfirmation_MissingIdentifiers(t *testing.T) {
	h, sender := newTestHandler(&stubOrders{}, &stubFetcher{})

	rec := postConfirmation(h, `{"tenant_id":"t1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
	assert.Empty(t, sender.Messages)
}

func TestSendOrderConfirmation_OrderNotFound(t *testing.T) {
	h, sender := newTestHandler(&stubOrders{err: repository.ErrNotFound}, &stubFetcher{})

	rec := postConfirmation(h, validBody())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
	assert.Empty(t, sender.Messages)
}

func TestSendOrderConfirmation_DocumentFetchFailed(t *testing.T) {
	h, sender := newTestHandler(
		&stubOrders{order: &model.Order{ID: "d1", TenantID: "t1", SystemID: "SO-100", CreatedBy: "u1", BuyerID: "b1"}},
		&stubFetcher{err: fmt.Errorf("%w: 404", fetch.ErrUnexpectedStatus)},
	)

	body := strings.Replace(validBody(), `"document_id": "d1",`, `"document_id": "d1", "document_url": "https://docs.example.com/f.pdf",`, 1)
	rec := postConfirmation(h, body)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "document_fetch_failed")
	assert.Empty(t, sender.Messages)
}
