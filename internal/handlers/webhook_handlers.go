package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"investmap/internal/common"
	"investmap/internal/config"
	"investmap/internal/models"
	"investmap/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// WebhookHandlers consumes verified billing events from the payment
// provider. The service never calls the provider back; this endpoint is
// the only billing input.
type WebhookHandlers struct {
	billingService services.BillingService
	billingCfg     config.BillingConfig
	webhookSecret  string
}

// NewWebhookHandlers creates a new webhook handlers instance
func NewWebhookHandlers(
	billingService services.BillingService,
	billingCfg config.BillingConfig,
	webhookSecret string,
) *WebhookHandlers {
	return &WebhookHandlers{
		billingService: billingService,
		billingCfg:     billingCfg,
		webhookSecret:  webhookSecret,
	}
}

// billingEvent is the subset of the provider payload this service reads.
type billingEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Customer string            `json:"customer"`
			Metadata map[string]string `json:"metadata"`
			Items    struct {
				Data []struct {
					Price struct {
						ID string `json:"id"`
					} `json:"price"`
					Quantity int `json:"quantity"`
				} `json:"data"`
			} `json:"items"`
		} `json:"object"`
	} `json:"data"`
}

// verifySignature checks the HMAC-SHA256 signature over the raw body.
func (h *WebhookHandlers) verifySignature(signature string, body []byte) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	// Constant time comparison to prevent timing attacks
	return hmac.Equal([]byte(signature), []byte(expected))
}

// BillingWebhook handles POST /webhooks/billing
func (h *WebhookHandlers) BillingWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}

	signature := c.Request().Header.Get("X-Webhook-Signature")
	if signature == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing webhook signature")
	}
	if !h.verifySignature(signature, body) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid webhook signature")
	}

	var event billingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed event payload")
	}

	if err := h.processEvent(c, &event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "processed",
		"type":   event.Type,
	})
}

func (h *WebhookHandlers) processEvent(c echo.Context, event *billingEvent) error {
	ctx := c.Request().Context()

	switch event.Type {
	case "checkout.session.completed":
		return h.handleCheckoutCompleted(c, event)
	case "customer.subscription.updated":
		return h.handleSubscriptionUpdated(c, event)
	case "customer.subscription.deleted":
		return h.billingService.CancelOrganizationByCustomer(ctx, event.Data.Object.Customer)
	default:
		// Unknown events are acknowledged, not failed, so the provider
		// does not retry them forever.
		log.Printf("Ignoring unhandled billing event type %q", event.Type)
		return nil
	}
}

// handleCheckoutCompleted applies a completed checkout: either a startup
// tier purchase or an investor seat purchase, distinguished by metadata.
func (h *WebhookHandlers) handleCheckoutCompleted(c echo.Context, event *billingEvent) error {
	ctx := c.Request().Context()
	meta := event.Data.Object.Metadata

	switch meta["kind"] {
	case "startup_tier":
		startupID, err := common.ValidateUUID(meta["startup_id"], "startup_id")
		if err != nil {
			return err
		}
		tier := meta["tier"]
		if !models.ValidTier(tier) {
			tier = h.tierForPrice(firstPriceID(event))
		}
		if tier == "" {
			log.Printf("Checkout for startup %s carries no recognizable tier", startupID)
			return nil
		}
		// Billing-driven changes are attributed to the system actor.
		return h.billingService.SetStartupTier(ctx, startupID, tier, uuid.Nil)

	case "investor_seats":
		orgID, err := common.ValidateUUID(meta["organization_id"], "organization_id")
		if err != nil {
			return err
		}
		seats := firstQuantity(event)
		if seats <= 0 {
			log.Printf("Checkout for organization %s carries no seat quantity", orgID)
			return nil
		}
		return h.billingService.SetPurchasedSeats(ctx, orgID, seats)

	default:
		log.Printf("Ignoring checkout with unknown kind %q", meta["kind"])
		return nil
	}
}

// handleSubscriptionUpdated re-applies the current subscription state:
// seat quantity changes and tier up/downgrades arrive here.
func (h *WebhookHandlers) handleSubscriptionUpdated(c echo.Context, event *billingEvent) error {
	ctx := c.Request().Context()
	meta := event.Data.Object.Metadata

	for _, item := range event.Data.Object.Items.Data {
		switch item.Price.ID {
		case h.billingCfg.SeatPriceID:
			orgID, err := common.ValidateUUID(meta["organization_id"], "organization_id")
			if err != nil {
				return err
			}
			if err := h.billingService.SetPurchasedSeats(ctx, orgID, item.Quantity); err != nil {
				return err
			}
		case h.billingCfg.PlusPriceID, h.billingCfg.UltraPriceID:
			startupID, err := common.ValidateUUID(meta["startup_id"], "startup_id")
			if err != nil {
				return err
			}
			if err := h.billingService.SetStartupTier(ctx, startupID, h.tierForPrice(item.Price.ID), uuid.Nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *WebhookHandlers) tierForPrice(priceID string) string {
	switch priceID {
	case h.billingCfg.PlusPriceID:
		return models.TierPlus
	case h.billingCfg.UltraPriceID:
		return models.TierUltra
	default:
		return ""
	}
}

func firstPriceID(event *billingEvent) string {
	if len(event.Data.Object.Items.Data) == 0 {
		return ""
	}
	return event.Data.Object.Items.Data[0].Price.ID
}

func firstQuantity(event *billingEvent) int {
	if len(event.Data.Object.Items.Data) == 0 {
		return 0
	}
	return event.Data.Object.Items.Data[0].Quantity
}
