package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/repository"
)

//go:embed seeds/demo.json
var demoJSON []byte

type seedFile struct {
	Users     []models.UserPublic `json:"users"`
	Companies []seedCompany       `json:"companies"`
}

type seedCompany struct {
	ID          string         `json:"id"`
	CompanyName string         `json:"companyName"`
	Address     models.Address `json:"address"`
	FoundedOn   string         `json:"foundedOn"`
	Logo        string         `json:"logo"`
	CreatedBy   string         `json:"createdBy"`
}

// SeedDemoData loads the embedded demo users and companies. Idempotent:
// companies carry fixed ids, so a rerun hits the _id collision and skips.
func SeedDemoData(ctx context.Context, companies *repository.CompanyRepository, users *repository.UserRepository, log *slog.Logger) error {
	var f seedFile
	if err := json.Unmarshal(demoJSON, &f); err != nil {
		return err
	}

	for _, u := range f.Users {
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := users.UpsertPublic(ictx, u)
		cancel()
		if err != nil {
			return err
		}
	}

	for _, s := range f.Companies {
		foundedOn, err := time.Parse("2006-01-02", s.FoundedOn)
		if err != nil {
			log.Warn("seed_skip_bad_date", "company", s.CompanyName, "foundedOn", s.FoundedOn)
			continue
		}
		c := models.Company{
			ID:          s.ID,
			CompanyName: s.CompanyName,
			Address:     s.Address,
			FoundedOn:   foundedOn,
			Logo:        s.Logo,
			CreatedBy:   s.CreatedBy,
		}

		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err = companies.Create(ictx, &c)
		cancel()
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				log.Info("seed_company_exists", "id", s.ID)
				continue
			}
			return err
		}
		log.Info("seed_company_created", "id", s.ID, "name", s.CompanyName)
	}

	log.Info("seed_done", "users", len(f.Users), "companies", len(f.Companies))
	return nil
}
