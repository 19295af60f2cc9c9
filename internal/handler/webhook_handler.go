package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mirastore/catalog_api/internal/sse"
	"github.com/mirastore/catalog_api/internal/utils"
)

// CatalogCallbackPayload is the body the upstream catalog posts when a
// record changes on its side.
type CatalogCallbackPayload struct {
	Kind     string `json:"kind"` // "product" or "category"
	RecordID int    `json:"recordId"`
	Action   string `json:"action"` // "created", "updated", "deleted"
}

// cacheInvalidator drops cached catalog entries after an upstream change.
type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// WebhookHandler handles incoming change notifications from the upstream catalog.
type WebhookHandler struct {
	cache         cacheInvalidator
	notifier      sse.CatalogNotifier
	webhookSecret string
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(cache cacheInvalidator, notifier sse.CatalogNotifier, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{cache: cache, notifier: notifier, webhookSecret: webhookSecret}
}

// HandleCatalogCallback handles POST /webhook/catalog
func (h *WebhookHandler) HandleCatalogCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid body"})
		return
	}

	signature := c.GetHeader("X-Signature")
	if !utils.VerifySignature(body, signature, h.webhookSecret) {
		log.Warn().Str("ip", c.ClientIP()).Msg("Webhook signature verification failed")
		c.JSON(401, gin.H{"error": "Invalid signature"})
		return
	}

	var payload CatalogCallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}
	if payload.Kind != "product" && payload.Kind != "category" {
		c.JSON(400, gin.H{"error": "Unknown kind"})
		return
	}

	if err := h.cache.Invalidate(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Failed to invalidate catalog cache after webhook")
	}

	h.notifier.NotifyChanged(payload.Kind, payload.RecordID, payload.Action,
		fmt.Sprintf("Upstream %s %d %s", payload.Kind, payload.RecordID, payload.Action))

	c.JSON(200, gin.H{"received": true})
}
