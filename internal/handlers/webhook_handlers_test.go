package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"investmap/internal/config"
	"investmap/internal/models"
	"investmap/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testWebhookSecret = "whsec_test"

// fakeBilling records the billing mutations the webhook applied.
type fakeBilling struct {
	tierStartupID     uuid.UUID
	tier              string
	seatsOrgID        uuid.UUID
	seats             int
	cancelledCustomer string
}

var _ services.BillingService = (*fakeBilling)(nil)

func (f *fakeBilling) SetStartupTier(ctx context.Context, startupID uuid.UUID, tier string, actorID uuid.UUID) error {
	f.tierStartupID = startupID
	f.tier = tier
	return nil
}

func (f *fakeBilling) SetPurchasedSeats(ctx context.Context, orgID uuid.UUID, seats int) error {
	f.seatsOrgID = orgID
	f.seats = seats
	return nil
}

func (f *fakeBilling) CancelOrganizationByCustomer(ctx context.Context, stripeCustomerID string) error {
	f.cancelledCustomer = stripeCustomerID
	return nil
}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookContext(t *testing.T, body, signature string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/billing", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("X-Webhook-Signature", signature)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBillingWebhook_RejectsMissingSignature(t *testing.T) {
	h := NewWebhookHandlers(nil, config.BillingConfig{}, testWebhookSecret)
	c, _ := newWebhookContext(t, `{"type":"noop"}`, "")

	err := h.BillingWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestBillingWebhook_RejectsBadSignature(t *testing.T) {
	h := NewWebhookHandlers(nil, config.BillingConfig{}, testWebhookSecret)
	body := `{"type":"noop"}`
	c, _ := newWebhookContext(t, body, "deadbeef")

	err := h.BillingWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestBillingWebhook_AcknowledgesUnknownEvent(t *testing.T) {
	h := NewWebhookHandlers(nil, config.BillingConfig{}, testWebhookSecret)
	body := `{"type":"invoice.paid"}`
	c, rec := newWebhookContext(t, body, sign(body))

	err := h.BillingWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "processed")
}

func TestBillingWebhook_SeatCheckout(t *testing.T) {
	billing := &fakeBilling{}
	h := NewWebhookHandlers(billing, config.BillingConfig{SeatPriceID: "price_seat"}, testWebhookSecret)

	orgID := uuid.New()
	body := `{"type":"checkout.session.completed","data":{"object":{` +
		`"metadata":{"kind":"investor_seats","organization_id":"` + orgID.String() + `"},` +
		`"items":{"data":[{"price":{"id":"price_seat"},"quantity":5}]}}}}`
	c, rec := newWebhookContext(t, body, sign(body))

	err := h.BillingWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, orgID, billing.seatsOrgID)
	assert.Equal(t, 5, billing.seats)
}

func TestBillingWebhook_TierCheckout(t *testing.T) {
	billing := &fakeBilling{}
	h := NewWebhookHandlers(billing, config.BillingConfig{UltraPriceID: "price_ultra"}, testWebhookSecret)

	startupID := uuid.New()
	body := `{"type":"checkout.session.completed","data":{"object":{` +
		`"metadata":{"kind":"startup_tier","startup_id":"` + startupID.String() + `","tier":"ultra"},` +
		`"items":{"data":[{"price":{"id":"price_ultra"},"quantity":1}]}}}}`
	c, _ := newWebhookContext(t, body, sign(body))

	err := h.BillingWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, startupID, billing.tierStartupID)
	assert.Equal(t, models.TierUltra, billing.tier)
}

func TestBillingWebhook_SubscriptionDeleted(t *testing.T) {
	billing := &fakeBilling{}
	h := NewWebhookHandlers(billing, config.BillingConfig{}, testWebhookSecret)

	body := `{"type":"customer.subscription.deleted","data":{"object":{"customer":"cus_42"}}}`
	c, _ := newWebhookContext(t, body, sign(body))

	err := h.BillingWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, "cus_42", billing.cancelledCustomer)
}
