package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"TechMart/pkg/kit"
)

const maxCreateBody = 1 << 20

type Server struct {
	Catalog   *Service
	StoreName string
	Log       *zap.Logger
}

type listResp struct {
	StoreName string `json:"store_name"`
	ListView
}

type detailResp struct {
	StoreName string `json:"store_name"`
	DetailView
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, listResp{
		StoreName: s.StoreName,
		ListView:  s.Catalog.PrepareListView(r.Context()),
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
		return
	}

	view, err := s.Catalog.PrepareDetailView(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if err != nil {
		s.log().Error("detail view failed", zap.Error(err), zap.Int64("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, detailResp{StoreName: s.StoreName, DetailView: view})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeCreateRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request body", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Catalog.ValidateAndCreate(r.Context(), raw)
	if err != nil {
		writeCreateError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/products/%d", p.ID))
	kit.WriteMessage(w, http.StatusCreated, "Product added successfully!", p.ID)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found. Unable to delete.", nil)
		return
	}

	p, err := s.Catalog.DeleteProduct(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found. Unable to delete.", map[string]any{"id": id})
		return
	}
	if err != nil {
		s.log().Error("delete product failed", zap.Error(err), zap.Int64("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteMessage(w, http.StatusOK, fmt.Sprintf("Product %q has been deleted successfully.", p.Name), p.ID)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Categories(r.Context()))
}

func (s *Server) whoami(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, PlaceholderUser())
}

func (s *Server) log() *zap.Logger { return kit.OrNop(s.Log) }

func writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	if ie, ok := AsInvalidInput(err); ok {
		kit.WriteError(w, r, http.StatusBadRequest, ie.Error(), map[string]any{"field": ie.Field})
		return
	}
	kit.WriteError(w, r, http.StatusInternalServerError, ErrInternal.Error(), nil)
}

// productID reads the {id} path segment. Anything but a positive integer
// cannot name a product.
func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// createReq accepts numbers or strings for every field so form-like JSON
// clients and typed clients both work.
type createReq struct {
	Name        flexString `json:"name"`
	Category    flexString `json:"category"`
	CategoryID  flexString `json:"category_id"`
	Price       flexString `json:"price"`
	Description flexString `json:"description"`
	Stock       flexString `json:"stock"`
	SKU         flexString `json:"sku"`
}

func (c createReq) raw() RawProduct {
	category := c.CategoryID
	if category == "" {
		category = c.Category
	}
	return RawProduct{
		Name:        string(c.Name),
		CategoryID:  string(category),
		Price:       string(c.Price),
		Description: string(c.Description),
		Stock:       string(c.Stock),
		SKU:         string(c.SKU),
	}
}

func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (RawProduct, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	defer func() { _ = r.Body.Close() }()

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/json" {
		parse := r.ParseForm
		if mt == "multipart/form-data" {
			parse = func() error { return r.ParseMultipartForm(maxCreateBody) }
		}
		if err := parse(); err != nil {
			return RawProduct{}, err
		}
		category := r.PostForm.Get("category_id")
		if category == "" {
			category = r.PostForm.Get("category")
		}
		return RawProduct{
			Name:        r.PostForm.Get("name"),
			CategoryID:  category,
			Price:       r.PostForm.Get("price"),
			Description: r.PostForm.Get("description"),
			Stock:       r.PostForm.Get("stock"),
			SKU:         r.PostForm.Get("sku"),
		}, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req createReq
	if err := dec.Decode(&req); err != nil {
		return RawProduct{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return RawProduct{}, errors.New("extra data after json object")
	}

	return req.raw(), nil
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n)
	return nil
}
