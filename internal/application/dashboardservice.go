// Package application contains use-case orchestration services.
package application

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// DashboardError reports every list read that failed while building the
// dashboard. Its message joins the individual failures with ", ".
type DashboardError struct {
	Errs []error
}

func (e *DashboardError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, ", ")
}

func (e *DashboardError) Unwrap() []error { return e.Errs }

// DashboardService merges the lists of every resource shown on the dashboard.
type DashboardService struct {
	bankAccounts      driven.RecordStore[model.BankAccount]
	creditCards       driven.RecordStore[model.CreditCard]
	generalDocuments  driven.RecordStore[model.GeneralDocument]
	insurancePolicies driven.RecordStore[model.InsurancePolicy]
	websites          driven.RecordStore[model.Website]
}

// NewDashboardService creates a DashboardService with the required dependencies.
func NewDashboardService(
	bankAccounts driven.RecordStore[model.BankAccount],
	creditCards driven.RecordStore[model.CreditCard],
	generalDocuments driven.RecordStore[model.GeneralDocument],
	insurancePolicies driven.RecordStore[model.InsurancePolicy],
	websites driven.RecordStore[model.Website],
) *DashboardService {
	return &DashboardService{
		bankAccounts:      bankAccounts,
		creditCards:       creditCards,
		generalDocuments:  generalDocuments,
		insurancePolicies: insurancePolicies,
		websites:          websites,
	}
}

// Load runs the five list reads concurrently and waits for all of them.
// If any read fails no data is returned, only a *DashboardError naming every
// failure in dashboard order.
func (s *DashboardService) Load(ctx context.Context) (*model.Dashboard, error) {
	var (
		d    model.Dashboard
		errs [5]error
		g    errgroup.Group
	)

	g.Go(func() error {
		d.BankAccounts, errs[0] = s.bankAccounts.List(ctx)
		return nil
	})
	g.Go(func() error {
		d.CreditCards, errs[1] = s.creditCards.List(ctx)
		return nil
	})
	g.Go(func() error {
		d.GeneralDocuments, errs[2] = s.generalDocuments.List(ctx)
		return nil
	})
	g.Go(func() error {
		d.InsurancePolicies, errs[3] = s.insurancePolicies.List(ctx)
		return nil
	})
	g.Go(func() error {
		d.Websites, errs[4] = s.websites.List(ctx)
		return nil
	})
	_ = g.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return nil, &DashboardError{Errs: failed}
	}

	fillEmpty(&d)
	return &d, nil
}

// fillEmpty replaces nil lists so every key serializes as [].
func fillEmpty(d *model.Dashboard) {
	if d.BankAccounts == nil {
		d.BankAccounts = []model.BankAccount{}
	}
	if d.CreditCards == nil {
		d.CreditCards = []model.CreditCard{}
	}
	if d.GeneralDocuments == nil {
		d.GeneralDocuments = []model.GeneralDocument{}
	}
	if d.InsurancePolicies == nil {
		d.InsurancePolicies = []model.InsurancePolicy{}
	}
	if d.Websites == nil {
		d.Websites = []model.Website{}
	}
}
