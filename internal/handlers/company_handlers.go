package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/service"
	"github.com/revuo/company-reviews/internal/utils"
)

type CompanyService interface {
	Create(ctx context.Context, in service.CreateCompanyInput) (*models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context, p service.ListCompaniesParams) (*service.CompanyPage, error)
}

type Publisher interface {
	Publish(ctx context.Context, body string, headers amqp.Table) error
	Close() error
}

type CompanyHandler struct {
	Svc CompanyService
	Pub Publisher
}

func NewCompanyHandler(svc CompanyService, pub Publisher) *CompanyHandler {
	return &CompanyHandler{Svc: svc, Pub: pub}
}

const requestTimeout = 5 * time.Second

// expects /api/companies/{id}
func parseIDFromPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] == "companies" && parts[2] != "" {
		return parts[2], true
	}
	return "", false
}

func parseIntParam(q string, def int) int {
	if q == "" {
		return def
	}
	if v, err := strconv.Atoi(q); err == nil && v > 0 {
		return v
	}
	return def
}

func (h *CompanyHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CompanyHandler) Companies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	case http.MethodGet:
		q := r.URL.Query()
		params := service.ListCompaniesParams{
			Page:   parseIntParam(q.Get("page"), 1),
			Limit:  parseIntParam(q.Get("limit"), 10),
			Search: q.Get("search"),
			City:   q.Get("city"),
			SortBy: q.Get("sortBy"),
			Order:  q.Get("order"),
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		page, err := h.Svc.List(ctx, params)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondOK(w, http.StatusOK, page, "Companies fetched successfully")

	case http.MethodPost:
		identity, ok := identityFromRequest(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var dto CompanyCreateDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		if err := validateCreateDTO(dto); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		addr, err := parseAddress(dto.Address)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		foundedOn, err := parseFoundedOn(dto.FoundedOn)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		c, err := h.Svc.Create(ctx, service.CreateCompanyInput{
			CompanyName: dto.CompanyName,
			Address:     addr,
			FoundedOn:   foundedOn,
			Logo:        dto.Logo,
			CreatedBy:   identity.ID,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}

		h.publishRegistered(c)
		respondOK(w, http.StatusCreated, c, "Company created successfully")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CompanyHandler) CompanyByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDFromPath(r.URL.Path)
	if !ok {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		c, err := h.Svc.Get(ctx, id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondOK(w, http.StatusOK, c, "Company fetched successfully")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// publishRegistered emits a company-registration event to the activity
// queue. Best effort: the API response does not depend on the broker.
func (h *CompanyHandler) publishRegistered(c *models.Company) {
	if h.Pub == nil || c == nil {
		return
	}
	msg := fmt.Sprintf("Company %s registered in %s", c.CompanyName, c.Address.City)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":     "registered",
		"company_id": c.ID,
		"name":       c.CompanyName,
		"city":       c.Address.City,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
