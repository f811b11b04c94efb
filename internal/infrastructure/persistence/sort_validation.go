package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"supplier_id":   true,
	"supplier_name": true,
	"status":        true,
	"total_cost":    true,
	"cancelled_at":  true,
}

// GoodsReceiptSortFields contains allowed sort fields for goods receipts
var GoodsReceiptSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"receipt_number": true,
	"order_id":       true,
	"order_number":   true,
	"supplier_id":    true,
	"supplier_name":  true,
	"status":         true,
	"total_cost":     true,
	"submitted_at":   true,
}

// PurchaseReturnSortFields contains allowed sort fields for purchase returns
var PurchaseReturnSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"return_number": true,
	"order_id":      true,
	"supplier_id":   true,
	"supplier_name": true,
	"status":        true,
	"refund_total":  true,
	"approved_at":   true,
	"completed_at":  true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"sale_number":   true,
	"customer_id":   true,
	"customer_name": true,
	"status":        true,
	"subtotal":      true,
	"grand_total":   true,
	"completed_at":  true,
}

// SalesReturnSortFields contains allowed sort fields for sales returns
var SalesReturnSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"return_number": true,
	"sale_id":       true,
	"sale_number":   true,
	"customer_id":   true,
	"customer_name": true,
	"status":        true,
	"refund_total":  true,
	"completed_at":  true,
}

// MakingChargeSortFields contains allowed sort fields for making charges
var MakingChargeSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"stage_name":        true,
	"cost_type":         true,
	"unit_name":         true,
	"cost_amount":       true,
	"normalized_amount": true,
	"effective_from":    true,
}
