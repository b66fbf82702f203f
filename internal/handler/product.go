package handler

import (
	"net/http"
	"strconv"
	"strings"

	"emeraldscents-be/internal/product"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// AdminList includes unpublished products.
func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, includeUnpublished bool) {
	q := r.URL.Query()

	filter := &product.ListFilter{
		Search:             q.Get("search"),
		CategoryID:         q.Get("category"),
		MinPrice:           queryInt64(q.Get("minPrice")),
		MaxPrice:           queryInt64(q.Get("maxPrice")),
		InStock:            q.Get("inStock") == "true",
		IncludeUnpublished: includeUnpublished,
	}
	if notes := q.Get("scentNotes"); notes != "" {
		filter.ScentNotes = strings.Split(notes, ",")
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := h.svc.List(r.Context(), filter, product.ListSort(q.Get("sort")), limit, page)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input product.ProductInput
	if !decodeBody(w, r, &input) {
		return
	}
	p, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input product.ProductInput
	if !decodeBody(w, r, &input) {
		return
	}
	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func queryInt64(raw string) int64 {
	n, _ := strconv.ParseInt(raw, 10, 64)
	return n
}
