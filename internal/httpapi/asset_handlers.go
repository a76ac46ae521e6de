package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/investrack/server/internal/models"
)

type assetRequest struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Exchange string  `json:"exchange"`
}

type assetResponse struct {
	ID       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Exchange string  `json:"exchange,omitempty"`
	Active   bool    `json:"active"`
}

type priceRequest struct {
	Price float64 `json:"price"`
}

func newAssetResponse(a *models.Asset) assetResponse {
	return assetResponse{
		ID:       a.ID,
		Symbol:   a.Symbol,
		Name:     a.Name,
		Type:     string(a.Type),
		Currency: a.Currency,
		Price:    a.CurrentPrice,
		Exchange: a.Exchange,
		Active:   a.Active,
	}
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "symbol and name are required")
		return
	}

	a, err := s.assets.Create(r.Context(), &models.Asset{
		Symbol:       req.Symbol,
		Name:         req.Name,
		Type:         models.AssetType(req.Type),
		Currency:     req.Currency,
		CurrentPrice: req.Price,
		Exchange:     req.Exchange,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAssetResponse(a))
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	list, err := s.assets.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]assetResponse, 0, len(list))
	for _, a := range list {
		out = append(out, newAssetResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := s.assets.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAssetResponse(a))
}

func (s *Server) handleUpdateAssetPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "price must be positive")
		return
	}

	if err := s.assets.UpdatePrice(r.Context(), r.PathValue("id"), req.Price); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "price updated"})
}
