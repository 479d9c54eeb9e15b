package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asif/userstore/internal/apperror"
	"github.com/asif/userstore/internal/service"
)

// ProductHandler exposes the product resource routes. Structurally this is
// the user surface without the registration/login semantics.
type ProductHandler struct {
	products *service.ProductService
	logger   *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// HandleList returns every product.
//
// HTTP: GET /products
//
// Same empty-store-is-404 mapping as the user list route.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if len(products) == 0 {
		writeJSON(w, http.StatusNotFound, envelope{"msg": "no products found"})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"total_product": len(products),
		"allProducts":   products,
	})
}

// HandleGetByID returns a single product.
//
// HTTP: GET /products/{id}
func (h *ProductHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"product": product})
}

// HandleCreate stores a new product.
//
// HTTP: POST /products
// BODY: {"name": ..., "description": ..., "price": ...}
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid product JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	product, err := h.products.Create(r.Context(), req.Name, req.Description, req.Price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"newProduct": product})
}

// HandleUpdate replaces all mutable fields of an existing product.
//
// HTTP: PUT /products/{id}
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid product JSON", slog.String("error", err.Error()))
		writeError(w, apperror.Unauthorized("invalid JSON body"))
		return
	}

	product, err := h.products.Update(r.Context(), r.PathValue("id"), req.Name, req.Description, req.Price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"updateProduct": product})
}

// HandleDelete removes a product.
//
// HTTP: DELETE /products/{id}
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"msg": "product deleted successfully"})
}
