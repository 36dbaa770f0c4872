package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-stock-server/products"
	"github.com/rs/zerolog/log"
)

// productRequest keeps quantity raw so numeric strings from HTML forms are accepted
type productRequest struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
}

func (pr productRequest) toInput() products.Input {
	return products.Input{
		SKU:      pr.SKU,
		Name:     pr.Name,
		Quantity: products.ParseQuantity(pr.Quantity),
	}
}

// HealthHandler reports liveness (GET /healthz)
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ListProductsHandler returns every product in insertion order (GET /products)
func (s *Server) ListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.products.List()
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// CreateProductHandler adds a product with a server generated id (POST /products)
func (s *Server) CreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		created, err := s.products.Create(req.toInput())
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Info().Str("id", created.ID).Str("sku", created.SKU).Msg("product created")
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateProductHandler replaces the payload of an existing product (PUT /products/{id})
func (s *Server) UpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var req productRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		updated, err := s.products.Update(id, req.toInput())
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Info().Str("id", updated.ID).Msg("product updated")
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteProductHandler removes a product (DELETE /products/{id})
func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		if err := s.products.Delete(id); err != nil {
			writeError(w, r, err)
			return
		}

		log.Info().Str("id", id).Msg("product deleted")
		writeJSON(w, http.StatusOK, messageResponse{Message: "product deleted"})
	}
}
