// Package apperr defines the typed error taxonomy of the stock ledger.
// Handlers map these to HTTP status codes; services never return raw storage
// errors across their boundary.
package apperr

import "fmt"

// ValidationError reports malformed or missing input. Recoverable by the
// caller correcting the request; never retried automatically.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string `json:"entity"`
	ID     uint   `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// CapacityExceededError reports a stock-in that would exceed zone capacity.
// Available carries the remaining headroom so the caller can suggest a smaller
// quantity or another zone.
type CapacityExceededError struct {
	ZoneID    uint `json:"zoneId"`
	Available int  `json:"available"`
	Requested int  `json:"requested"`
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("zone %d capacity exceeded: %d requested, %d available", e.ZoneID, e.Requested, e.Available)
}

// InsufficientStockError reports a stock-out that exceeds the quantity on hand.
type InsufficientStockError struct {
	ProductID uint `json:"productId"`
	ZoneID    uint `json:"zoneId"`
	Available int  `json:"available"`
	Requested int  `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d in zone %d: %d requested, %d available", e.ProductID, e.ZoneID, e.Requested, e.Available)
}

// InvariantViolationError reports internal bookkeeping drift (e.g. zone
// utilization disagrees with inventory rows). Not user-correctable: the
// operation is aborted without partial commit and the condition is logged as
// a defect.
type InvariantViolationError struct {
	Detail string `json:"detail"`
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Detail
}

func NewInvariantViolation(format string, args ...interface{}) *InvariantViolationError {
	return &InvariantViolationError{Detail: fmt.Sprintf(format, args...)}
}
