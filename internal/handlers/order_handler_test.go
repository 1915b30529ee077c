package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rukshanl/product-order-api/internal/models"
	"github.com/rukshanl/product-order-api/internal/repository"
	"github.com/rukshanl/product-order-api/internal/service"
	"github.com/rukshanl/product-order-api/pkg/logger"
)

// newTestRouter wires the order handler over an in-memory repository into a
// router with the production route layout.
func newTestRouter() (*chi.Mux, *service.OrderService) {
	repo := repository.NewInMemoryOrderRepository()
	svc := service.NewOrderService(repo)
	log := logger.New("error")
	handler := NewOrderHandler(svc, log)

	r := chi.NewRouter()
	r.Route(BasePath, func(r chi.Router) {
		r.Post("/productOrder", handler.CreateOrder)
		r.Get("/productOrder", handler.ListOrders)
		r.Get("/productOrder/{id}", handler.GetOrder)
	})
	r.NotFound(NotFoundHandler(log))
	r.MethodNotAllowed(NotFoundHandler(log))

	return r, svc
}

func TestCreateOrder_Success(t *testing.T) {
	r, _ := newTestRouter()

	body := `{"@type":"ProductOrder","productOrderItem":[{"product":{}}]}`
	req := httptest.NewRequest(http.MethodPost, BasePath+"/productOrder", strings.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created map[string]any
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	id, _ := created["id"].(string)
	if id == "" {
		t.Error("expected a generated order id")
	}
	if created["@type"] != "ProductOrder" {
		t.Errorf("@type = %v, want ProductOrder", created["@type"])
	}
	if created["state"] != "inProgress" {
		t.Errorf("state = %v, want inProgress", created["state"])
	}
	if created["creationDate"] == nil {
		t.Error("expected a creation date")
	}

	items, _ := created["productOrderItem"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(items))
	}
	item := items[0].(map[string]any)
	if item["@type"] != "ProductOrderItem" {
		t.Errorf("item @type = %v, want ProductOrderItem", item["@type"])
	}
	product := item["product"].(map[string]any)
	if product["@type"] != "UNI" {
		t.Errorf("product @type = %v, want UNI", product["@type"])
	}

	wantLocation := BasePath + "/productOrder/" + id
	if got := w.Header().Get("Location"); got != wantLocation {
		t.Errorf("Location = %q, want %q", got, wantLocation)
	}
}

func TestCreateOrder_BadPayloads(t *testing.T) {
	r, _ := newTestRouter()

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"null body", "null", "Invalid or missing JSON payload"},
		{"empty body", "", "Invalid or missing JSON payload"},
		{"non-object body", `"an order"`, "Invalid or missing JSON payload"},
		{"empty object", "{}", "missing type discriminator"},
		{"missing item list", `{"@type":"ProductOrder"}`, "missing or invalid order-item list"},
		{"item without product", `{"@type":"ProductOrder","productOrderItem":[{}]}`, "missing product in item"},
		{
			"primitive characteristic value",
			`{"@type":"ProductOrder","productOrderItem":[{"product":{"productCharacteristic":[{"name":"color","value":"red"}]}}]}`,
			"invalid characteristic value: must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, BasePath+"/productOrder", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var response map[string]string
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if response["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", response["error"], tt.wantError)
			}
		})
	}
}

func TestListOrders_Empty(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, BasePath+"/productOrder", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var orders []models.ProductOrder
	if err := json.NewDecoder(w.Body).Decode(&orders); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected empty result, got %d orders", len(orders))
	}
}

func TestListOrders_StateFilter(t *testing.T) {
	r, svc := newTestRouter()

	completed := &models.ProductOrder{
		Type:             models.TypeProductOrder,
		State:            "completed",
		ProductOrderItem: []models.ProductOrderItem{{Product: &models.Product{}}},
	}
	if _, err := svc.CreateOrder(context.Background(), completed); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	inProgress := &models.ProductOrder{
		Type:             models.TypeProductOrder,
		ProductOrderItem: []models.ProductOrderItem{{Product: &models.Product{}}},
	}
	if _, err := svc.CreateOrder(context.Background(), inProgress); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, BasePath+"/productOrder?state=completed", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var orders []models.ProductOrder
	if err := json.NewDecoder(w.Body).Decode(&orders); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].State != "completed" {
		t.Errorf("state = %q, want completed", orders[0].State)
	}
}

func TestListOrders_FieldProjection(t *testing.T) {
	r, svc := newTestRouter()

	order := &models.ProductOrder{
		Type:             models.TypeProductOrder,
		Category:         "B2B",
		Description:      "fiber access",
		ProductOrderItem: []models.ProductOrderItem{{Product: &models.Product{}}},
	}
	if _, err := svc.CreateOrder(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, BasePath+"/productOrder?fields=category", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var results []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	got := results[0]
	for _, key := range []string{"id", "@type", "state", "category"} {
		if _, ok := got[key]; !ok {
			t.Errorf("projected result missing %q", key)
		}
	}
	if _, ok := got["description"]; ok {
		t.Error("projected result should not contain description")
	}
	if _, ok := got["productOrderItem"]; ok {
		t.Error("projected result should not contain productOrderItem")
	}
}

func TestGetOrder_Success(t *testing.T) {
	r, svc := newTestRouter()

	order := &models.ProductOrder{
		Type:             models.TypeProductOrder,
		ProductOrderItem: []models.ProductOrderItem{{Product: &models.Product{}}},
	}
	created, err := svc.CreateOrder(context.Background(), order)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, BasePath+"/productOrder/"+created.ID, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var got models.ProductOrder
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id = %q, want %q", got.ID, created.ID)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, BasePath+"/productOrder/no-such-order", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(response["error"], "no-such-order") {
		t.Errorf("error %q does not name the order id", response["error"])
	}
}

func TestGetOrder_UndefinedID(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, BasePath+"/productOrder/undefined", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response["error"] != "Missing or invalid order ID in URL" {
		t.Errorf("error = %q, want invalid-id message", response["error"])
	}
}

func TestGetOrder_FieldProjection(t *testing.T) {
	r, svc := newTestRouter()

	order := &models.ProductOrder{
		Type:             models.TypeProductOrder,
		Category:         "B2C",
		ProductOrderItem: []models.ProductOrderItem{{Product: &models.Product{}}},
	}
	created, err := svc.CreateOrder(context.Background(), order)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, BasePath+"/productOrder/"+created.ID+"?fields=category", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var got map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, key := range []string{"id", "@type", "state", "category"} {
		if _, ok := got[key]; !ok {
			t.Errorf("projected result missing %q", key)
		}
	}
	if _, ok := got["productOrderItem"]; ok {
		t.Error("projected result should not contain productOrderItem")
	}
}

func TestRouteNotFound(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/foo", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response["error"] != "Route Not Found" {
		t.Errorf("error = %q, want Route Not Found", response["error"])
	}
	if response["path"] != "/foo" {
		t.Errorf("path = %q, want /foo", response["path"])
	}
}

func TestUnsupportedMethod(t *testing.T) {
	r, _ := newTestRouter()

	// No DELETE route exists; the catch-all answers instead of a bare 405
	req := httptest.NewRequest(http.MethodDelete, BasePath+"/productOrder/some-id", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response["error"] != "Route Not Found" {
		t.Errorf("error = %q, want Route Not Found", response["error"])
	}
}
