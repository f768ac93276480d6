package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adbridge/internal/cache"
	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

func adSetFixture(campaignID uuid.UUID) *domain.AdSet {
	return &domain.AdSet{
		Name:             "us broad",
		CampaignID:       campaignID,
		OptimizationGoal: "LINK_CLICKS",
		BillingEvent:     "IMPRESSIONS",
		DailyBudget:      fptr(10),
		StartTime:        time.Now(),
		EndTime:          time.Now().Add(48 * time.Hour),
		Targeting: domain.Targeting{
			GeoLocations: &domain.GeoLocations{Countries: []string{"US"}},
		},
	}
}

func newAdSetService(repo *fakeAdSetRepo, campaigns *fakeCampaignRepo,
	api *fakeAdSetAPI, creds *cache.Credentials) *AdSetUseCase {
	return NewAdSetUseCase(repo, campaigns, &fakeAccounts{accountID: "42"}, creds, api, discardLogger())
}

func TestAdSetCreateRequiresExistingParent(t *testing.T) {
	svc := newAdSetService(newFakeAdSetRepo(), newFakeCampaignRepo(), &fakeAdSetAPI{}, cache.New())

	_, err := svc.Create(context.Background(), owner, adSetFixture(uuid.New()))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAdSetCreatePausedSkipsRemote(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "")
	repo := newFakeAdSetRepo()
	api := &fakeAdSetAPI{}
	svc := newAdSetService(repo, campaigns, api, cache.New())

	s, err := svc.Create(context.Background(), owner, adSetFixture(parent.ID))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaused, s.Status)
	require.Empty(t, s.RemoteAdSetID)
	require.Zero(t, api.createCalls)
}

func TestAdSetCreateActiveNeedsSyncedParent(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "") // unsynced parent
	svc := newAdSetService(newFakeAdSetRepo(), campaigns, &fakeAdSetAPI{}, credsWithToken())

	in := adSetFixture(parent.ID)
	in.Status = domain.StatusActive
	_, err := svc.Create(context.Background(), owner, in)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestAdSetCreateActiveInheritsParentRemoteID(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "9001")
	repo := newFakeAdSetRepo()
	api := &fakeAdSetAPI{}
	svc := newAdSetService(repo, campaigns, api, credsWithToken())

	in := adSetFixture(parent.ID)
	in.Status = domain.StatusActive
	s, err := svc.Create(context.Background(), owner, in)
	require.NoError(t, err)

	require.Equal(t, 1, api.createCalls)
	require.Equal(t, "9001", s.RemoteCampaignID)
	require.Equal(t, "7001", s.RemoteAdSetID)
}

func TestAdSetCreateActiveRemoteFailureDowngrades(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "9001")
	repo := newFakeAdSetRepo()
	api := &fakeAdSetAPI{createErr: &errs.RemoteError{Message: "rejected"}}
	svc := newAdSetService(repo, campaigns, api, credsWithToken())

	in := adSetFixture(parent.ID)
	in.Status = domain.StatusActive
	s, err := svc.Create(context.Background(), owner, in)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaused, s.Status)
	require.Empty(t, s.RemoteAdSetID)
}

func seedAdSet(repo *fakeAdSetRepo, campaignID uuid.UUID, remoteID string) *domain.AdSet {
	s := adSetFixture(campaignID)
	s.ID = uuid.New()
	s.OwnerID = owner
	s.Status = domain.StatusPaused
	s.BidStrategy = domain.BidLowestCost
	s.RemoteAccountID = "42"
	s.RemoteAdSetID = remoteID
	repo.byID[s.ID] = s
	return s
}

func TestAdSetDeleteRemovesRow(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "9001")
	repo := newFakeAdSetRepo()
	api := &fakeAdSetAPI{}
	svc := newAdSetService(repo, campaigns, api, credsWithToken())

	s := seedAdSet(repo, parent.ID, "7001")
	require.NoError(t, svc.Delete(context.Background(), owner, s.ID))

	require.Equal(t, 1, api.deleteCalls)
	got, _ := repo.GetByID(context.Background(), s.ID)
	require.Nil(t, got, "ad sets are hard-deleted, not tombstoned")
}

func TestAdSetPauseActivate(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "")
	repo := newFakeAdSetRepo()
	svc := newAdSetService(repo, campaigns, &fakeAdSetAPI{}, cache.New())

	s := seedAdSet(repo, parent.ID, "")

	got, err := svc.Activate(context.Background(), owner, s.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, got.Status)

	got, err = svc.Pause(context.Background(), owner, s.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaused, got.Status)
}

func TestAdSetUpdateRejectsBothBudgets(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "")
	repo := newFakeAdSetRepo()
	svc := newAdSetService(repo, campaigns, &fakeAdSetAPI{}, cache.New())

	s := seedAdSet(repo, parent.ID, "")
	_, err := svc.Update(context.Background(), owner, s.ID, domain.AdSetPatch{
		DailyBudget:    fptr(10),
		LifetimeBudget: fptr(100),
	})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestAdSetSyncWithRemote(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "9001")
	repo := newFakeAdSetRepo()
	api := &fakeAdSetAPI{listResult: []port.RemoteAdSet{
		{ID: "7001", Name: "imported", Status: "ACTIVE"},
	}}
	svc := newAdSetService(repo, campaigns, api, credsWithToken())

	n, err := svc.SyncWithRemote(context.Background(), owner, parent.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	imported, err := repo.GetByRemoteID(context.Background(), owner, "7001")
	require.NoError(t, err)
	require.NotNil(t, imported)
	require.Equal(t, "imported", imported.Name)
	require.Equal(t, domain.StatusActive, imported.Status)
}

func TestAdSetSyncUnsyncedParentIsNoop(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	parent := seedCampaign(campaigns, "")
	svc := newAdSetService(newFakeAdSetRepo(), campaigns, &fakeAdSetAPI{}, credsWithToken())

	n, err := svc.SyncWithRemote(context.Background(), owner, parent.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}
