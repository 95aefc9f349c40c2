package handlers

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/service"
)

type companySvcMock struct {
	CreateFn func(ctx context.Context, in service.CreateCompanyInput) (*models.Company, error)
	GetFn    func(ctx context.Context, id string) (*models.Company, error)
	ListFn   func(ctx context.Context, p service.ListCompaniesParams) (*service.CompanyPage, error)
}

func (m *companySvcMock) Create(ctx context.Context, in service.CreateCompanyInput) (*models.Company, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, in)
}
func (m *companySvcMock) Get(ctx context.Context, id string) (*models.Company, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *companySvcMock) List(ctx context.Context, p service.ListCompaniesParams) (*service.CompanyPage, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, p)
}

type reviewSvcMock struct {
	SubmitFn        func(ctx context.Context, in service.SubmitReviewInput) (*models.EnrichedReview, error)
	ListByCompanyFn func(ctx context.Context, p service.ListReviewsParams) (*service.ReviewPage, error)
}

func (m *reviewSvcMock) Submit(ctx context.Context, in service.SubmitReviewInput) (*models.EnrichedReview, error) {
	if m.SubmitFn == nil {
		return nil, errors.New("SubmitFn not set")
	}
	return m.SubmitFn(ctx, in)
}
func (m *reviewSvcMock) ListByCompany(ctx context.Context, p service.ListReviewsParams) (*service.ReviewPage, error) {
	if m.ListByCompanyFn == nil {
		return nil, errors.New("ListByCompanyFn not set")
	}
	return m.ListByCompanyFn(ctx, p)
}

type pubMock struct {
	PublishFn func(ctx context.Context, body string, headers amqp.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body string, headers amqp.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
