package sse

import "time"

// CatalogNotifier is the interface services use to emit catalog events.
type CatalogNotifier interface {
	NotifyChanged(kind string, recordID int, action, message string)
	NotifyError(kind string, message string)
	NotifyStorageAlert(message string)
}

// HubNotifier implements CatalogNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyChanged(kind string, recordID int, action, message string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&CatalogEvent{
		Event:     EventCatalogUpdated,
		Kind:      kind,
		RecordID:  recordID,
		Action:    action,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyError(kind string, message string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&CatalogEvent{
		Event:     EventCatalogError,
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// NotifyStorageAlert broadcasts a blocking storage alert. Quota failures in
// the local tier are lossy and operator-visible.
func (n *HubNotifier) NotifyStorageAlert(message string) {
	n.hub.Broadcast(&CatalogEvent{
		Event:     EventStorageAlert,
		Message:   message,
		Blocking:  true,
		Timestamp: time.Now(),
	})
}
