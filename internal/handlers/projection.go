package handlers

import (
	"encoding/json"
	"strings"

	"github.com/rukshanl/product-order-api/internal/models"
)

// mandatoryFields are always included in a projected result, whether or not
// the caller asked for them.
var mandatoryFields = []string{"id", "@type", "state"}

// parseFields splits a comma-separated fields query parameter. An empty
// parameter means no projection was requested.
func parseFields(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// projectOrder reduces an order to the requested field set plus the mandatory
// fields. Requested fields absent on the record are silently dropped, as are
// unknown field names.
func projectOrder(order models.ProductOrder, fields []string) (map[string]any, error) {
	raw, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(fields)+len(mandatoryFields))
	for _, f := range fields {
		keep[f] = true
	}
	for _, f := range mandatoryFields {
		keep[f] = true
	}

	projected := make(map[string]any, len(keep))
	for key, value := range doc {
		if keep[key] {
			projected[key] = value
		}
	}
	return projected, nil
}

// projectOrders applies projectOrder across a result set.
func projectOrders(orders []models.ProductOrder, fields []string) ([]map[string]any, error) {
	projected := make([]map[string]any, 0, len(orders))
	for _, order := range orders {
		doc, err := projectOrder(order, fields)
		if err != nil {
			return nil, err
		}
		projected = append(projected, doc)
	}
	return projected, nil
}
