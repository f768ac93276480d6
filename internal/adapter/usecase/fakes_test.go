package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

// Hand-rolled fakes. Each records calls so tests can assert on the dual-write
// ordering, and exposes injectable errors for the failure paths.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fptr(v float64) *float64 { return &v }

type fakeCampaignRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*domain.Campaign
	createErr error
	updateErr error
	updates   int
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{byID: make(map[uuid.UUID]*domain.Campaign)}
}

func (f *fakeCampaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCampaignRepo) Update(_ context.Context, c *domain.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCampaignRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCampaignRepo) GetByRemoteID(_ context.Context, ownerID, remoteID string) (*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.OwnerID == ownerID && c.RemoteCampaignID == remoteID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCampaignRepo) List(_ context.Context, flt port.CampaignFilter) ([]domain.Campaign, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Campaign
	for _, c := range f.byID {
		if c.OwnerID == flt.OwnerID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeAdRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*domain.Ad
	createErr error
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{byID: make(map[uuid.UUID]*domain.Ad)}
}

func (f *fakeAdRepo) Create(_ context.Context, a *domain.Ad) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAdRepo) Update(_ context.Context, a *domain.Ad) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAdRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdRepo) GetByRemoteID(_ context.Context, ownerID, remoteAdID string) (*domain.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.OwnerID == ownerID && a.RemoteAdID == remoteAdID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAdRepo) List(_ context.Context, flt port.AdFilter) ([]domain.Ad, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Ad
	for _, a := range f.byID {
		if a.OwnerID != flt.OwnerID {
			continue
		}
		if flt.AdSetID != "" && a.AdSetID != flt.AdSetID {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

type fakeAdSetRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.AdSet
	deletes int
}

func newFakeAdSetRepo() *fakeAdSetRepo {
	return &fakeAdSetRepo{byID: make(map[uuid.UUID]*domain.AdSet)}
}

func (f *fakeAdSetRepo) Create(_ context.Context, s *domain.AdSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeAdSetRepo) Update(_ context.Context, s *domain.AdSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeAdSetRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.AdSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeAdSetRepo) GetByRemoteID(_ context.Context, ownerID, remoteID string) (*domain.AdSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byID {
		if s.OwnerID == ownerID && s.RemoteAdSetID == remoteID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAdSetRepo) ListByCampaign(_ context.Context, ownerID string, campaignID uuid.UUID) ([]domain.AdSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AdSet
	for _, s := range f.byID {
		if s.OwnerID == ownerID && s.CampaignID == campaignID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeAdSetRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	f.deletes++
	return nil
}

type fakeAdSetAPI struct {
	mu          sync.Mutex
	createCalls int
	deleteCalls int
	createErr   error
	listResult  []port.RemoteAdSet
}

func (f *fakeAdSetAPI) CreateAdSet(_ context.Context, _ string, s *domain.AdSet) (*port.RemoteAdSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &port.RemoteAdSet{ID: "7001", Name: s.Name, CampaignID: s.RemoteCampaignID, Status: string(s.Status)}, nil
}

func (f *fakeAdSetAPI) UpdateAdSet(context.Context, string, string, domain.AdSetPatch) error {
	return nil
}

func (f *fakeAdSetAPI) DeleteAdSet(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func (f *fakeAdSetAPI) ListAdSets(context.Context, string, string, string) ([]port.RemoteAdSet, error) {
	return f.listResult, nil
}

func (f *fakeAdSetAPI) GetAdSet(_ context.Context, _, remoteID string) (*port.RemoteAdSet, error) {
	return &port.RemoteAdSet{ID: remoteID}, nil
}

func (f *fakeAdSetAPI) AdSetInsights(context.Context, string, string, *domain.TimeRange) (*domain.Insights, error) {
	return &domain.Insights{}, nil
}

type fakeAccounts struct {
	accountID string
	err       error
}

func (f *fakeAccounts) RemoteAccountID(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.accountID, nil
}

// fakeCampaignAPI counts calls and fails on demand.
type fakeCampaignAPI struct {
	mu          sync.Mutex
	createCalls int
	updateCalls int
	deleteCalls int
	createErr   error
	updateErr   error
	listResult  []port.RemoteCampaign
	insights    *domain.Insights
	insightsErr error
}

func (f *fakeCampaignAPI) CreateCampaign(_ context.Context, _, _ string, c *domain.Campaign) (*port.RemoteCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &port.RemoteCampaign{ID: "9001", Name: c.Name, Status: string(c.Status)}, nil
}

func (f *fakeCampaignAPI) UpdateCampaign(context.Context, string, string, domain.CampaignPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	return f.updateErr
}

func (f *fakeCampaignAPI) DeleteCampaign(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func (f *fakeCampaignAPI) GetCampaign(_ context.Context, _, remoteID string) (*port.RemoteCampaign, error) {
	return &port.RemoteCampaign{ID: remoteID, Status: "ACTIVE", EffectiveStatus: "ACTIVE"}, nil
}

func (f *fakeCampaignAPI) ListCampaigns(context.Context, string, string) ([]port.RemoteCampaign, error) {
	return f.listResult, nil
}

func (f *fakeCampaignAPI) CampaignInsights(context.Context, string, string, *domain.TimeRange) (*domain.Insights, error) {
	if f.insightsErr != nil {
		return nil, f.insightsErr
	}
	if f.insights != nil {
		return f.insights, nil
	}
	return &domain.Insights{}, nil
}

type fakeAdAPI struct {
	mu          sync.Mutex
	createCalls int
	updateCalls int
	createErr   error
	updateErr   error
}

func (f *fakeAdAPI) CreateAd(_ context.Context, _, _ string, a *domain.Ad) (*port.RemoteAd, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &port.RemoteAd{
		ID: "5001", Name: a.Name, AdSetID: a.AdSetID, CreativeID: a.CreativeID,
		Status: string(a.Status), EffectiveStatus: "PENDING_REVIEW",
	}, nil
}

func (f *fakeAdAPI) UpdateAd(context.Context, string, string, domain.AdPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	return f.updateErr
}

func (f *fakeAdAPI) DeleteAd(context.Context, string, string) error { return nil }

func (f *fakeAdAPI) GetAd(_ context.Context, _, remoteID string) (*port.RemoteAd, error) {
	return nil, &errs.RemoteError{Message: "not wired in this fake"}
}

func (f *fakeAdAPI) AdInsights(context.Context, string, string, *domain.TimeRange) (*domain.Insights, error) {
	return &domain.Insights{Impressions: 1000, Clicks: 50, Spend: 12.5, CTR: 5}, nil
}

func (f *fakeAdAPI) AdPreview(context.Context, string, string, string) (string, error) {
	return "<iframe/>", nil
}
