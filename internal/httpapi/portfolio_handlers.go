package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/investrack/server/internal/models"
	"github.com/investrack/server/internal/services"
)

type portfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type portfolioResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type holdingResponse struct {
	AssetID              string  `json:"assetId"`
	Quantity             float64 `json:"quantity"`
	AveragePurchasePrice float64 `json:"averagePurchasePrice"`
	TotalInvestment      float64 `json:"totalInvestment"`
	CurrentValue         float64 `json:"currentValue"`
	ProfitLoss           float64 `json:"profitLoss"`
	ProfitLossPercentage float64 `json:"profitLossPercentage"`
}

type transactionRequest struct {
	AssetID         string     `json:"assetId"`
	Type            string     `json:"type"`
	Quantity        float64    `json:"quantity"`
	PricePerUnit    float64    `json:"pricePerUnit"`
	TransactionFee  float64    `json:"transactionFee"`
	TransactionDate *time.Time `json:"transactionDate"`
	Notes           string     `json:"notes"`
}

type transactionResponse struct {
	ID              string    `json:"id"`
	AssetID         string    `json:"assetId"`
	Type            string    `json:"type"`
	Quantity        float64   `json:"quantity"`
	PricePerUnit    float64   `json:"pricePerUnit"`
	TotalAmount     float64   `json:"totalAmount"`
	TransactionFee  float64   `json:"transactionFee"`
	TransactionDate time.Time `json:"transactionDate"`
	Notes           string    `json:"notes,omitempty"`
}

func newPortfolioResponse(p *models.Portfolio) portfolioResponse {
	return portfolioResponse{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt}
}

func newTransactionResponse(t *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:              t.ID,
		AssetID:         t.AssetID,
		Type:            string(t.Type),
		Quantity:        t.Quantity,
		PricePerUnit:    t.PricePerUnit,
		TotalAmount:     t.TotalAmount,
		TransactionFee:  t.TransactionFee,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
	}
}

// principalID reads the verified principal attached by requireAuth.
func principalID(r *http.Request) string {
	id, _ := services.PrincipalIDFromContext(r.Context())
	return id
}

func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := s.portfolios.Create(r.Context(), principalID(r), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newPortfolioResponse(p))
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	list, err := s.portfolios.List(r.Context(), principalID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]portfolioResponse, 0, len(list))
	for _, p := range list {
		out = append(out, newPortfolioResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := s.portfolios.Get(r.Context(), principalID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newPortfolioResponse(p))
}

func (s *Server) handleUpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.portfolios.Update(r.Context(), principalID(r), r.PathValue("id"), req.Name, req.Description); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := s.portfolios.Delete(r.Context(), principalID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.portfolios.Holdings(r.Context(), principalID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]holdingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, holdingResponse{
			AssetID:              h.AssetID,
			Quantity:             h.Quantity,
			AveragePurchasePrice: h.AveragePurchasePrice,
			TotalInvestment:      h.TotalInvestment,
			CurrentValue:         h.CurrentValue,
			ProfitLoss:           h.ProfitLoss,
			ProfitLossPercentage: h.ProfitLossPercentage,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.portfolios.Transactions(r.Context(), principalID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, newTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AssetID == "" || req.Quantity <= 0 || req.PricePerUnit <= 0 {
		writeError(w, http.StatusBadRequest, "assetId, positive quantity and pricePerUnit are required")
		return
	}

	when := time.Now()
	if req.TransactionDate != nil {
		when = *req.TransactionDate
	}

	t, err := s.portfolios.RecordTransaction(r.Context(), principalID(r), &models.Transaction{
		PortfolioID:     r.PathValue("id"),
		AssetID:         req.AssetID,
		Type:            models.TransactionType(req.Type),
		Quantity:        req.Quantity,
		PricePerUnit:    req.PricePerUnit,
		TransactionFee:  req.TransactionFee,
		TransactionDate: when,
		Notes:           req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTransactionResponse(t))
}
