package models

import "time"

// Alert is a derived signal about an item, never authored directly by an
// operator. Alerts are keyed by (mabic, reason): only one active alert per
// key exists at a time.
type Alert struct {
	ID        uint          `gorm:"primary_key" json:"-"`
	AlertID   string        `gorm:"unique_index" json:"id"`
	Mabic     string        `gorm:"index" json:"mabic"`
	Severity  AlertSeverity `json:"severity"`
	Reason    AlertReason   `json:"reason"`
	Message   string        `json:"message"`
	Status    AlertStatus   `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"-"`
}

// AlertSeverity mirrors the severity tiers of the alerts view.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "CRITICAL"
	SeverityWarning  AlertSeverity = "WARNING"
	SeverityInfo     AlertSeverity = "INFO"
)

// AlertReason identifies what condition raised the alert.
type AlertReason string

const (
	ReasonLowStock             AlertReason = "LOW_STOCK"
	ReasonOutOfStockAttempt    AlertReason = "OUT_OF_STOCK_ATTEMPT"
	ReasonMaintenanceDue       AlertReason = "MAINTENANCE_DUE"
	ReasonCertificationExpired AlertReason = "CERTIFICATION_EXPIRED"
	ReasonOverdueReturn        AlertReason = "OVERDUE_RETURN"
)

// AlertStatus represents the lifecycle state of an alert.
type AlertStatus string

const (
	AlertActive   AlertStatus = "ACTIVE"
	AlertResolved AlertStatus = "RESOLVED"
)
