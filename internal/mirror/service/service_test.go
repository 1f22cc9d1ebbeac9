package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	bidrepository "github.com/gigbridge/gigbridge/internal/bid/repository"
	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/mirror/domain"
	"github.com/gigbridge/gigbridge/internal/mirror/repository"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	projectrepository "github.com/gigbridge/gigbridge/internal/project/repository"
	"github.com/gigbridge/gigbridge/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeStore struct {
	projects map[string]domain.ProjectDoc
	bids     map[string]domain.BidDoc
	failBids bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: make(map[string]domain.ProjectDoc),
		bids:     make(map[string]domain.BidDoc),
	}
}

func (f *fakeStore) PutProject(ctx context.Context, doc domain.ProjectDoc) error {
	f.projects[doc.ID] = doc
	return nil
}

func (f *fakeStore) PutBid(ctx context.Context, doc domain.BidDoc) error {
	if f.failBids {
		return errors.New("store unavailable")
	}
	f.bids[doc.ID] = doc
	return nil
}

func newTestService(t *testing.T, store *fakeStore) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&projectdomain.Project{},
		&biddomain.Bid{},
		&domain.Checkpoint{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Cfg:         config.Config{Mirror: config.MirrorConfig{BatchSize: 10}},
		DB:          dbConn,
		Log:         zap.NewNop(),
		Projects:    projectrepository.Provide(),
		Bids:        bidrepository.Provide(),
		Checkpoints: repository.ProvideCheckpoints(),
		Store:       store,
	})
	return svc, dbConn, node
}

func seedProjectWithBid(t *testing.T, dbConn *gorm.DB, node *snowflake.Node) (*projectdomain.Project, *biddomain.Bid) {
	t.Helper()
	now := time.Now().UTC()
	project := &projectdomain.Project{
		ID:        node.Generate(),
		ClientID:  node.Generate(),
		Title:     "API integration",
		Slug:      "api-integration-" + node.Generate().String(),
		Status:    projectdomain.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, dbConn.Create(project).Error)

	bid := &biddomain.Bid{
		ID:           node.Generate(),
		ProjectID:    project.ID,
		FreelancerID: node.Generate(),
		Amount:       900,
		DeliveryDays: 10,
		Status:       biddomain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, dbConn.Create(bid).Error)
	return project, bid
}

func TestSyncAllMirrorsProjectsAndBids(t *testing.T) {
	store := newFakeStore()
	svc, dbConn, node := newTestService(t, store)
	project, bid := seedProjectWithBid(t, dbConn, node)

	result, err := svc.Sync(context.Background(), domain.SyncRequest{Action: domain.ActionAll})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 0, result.Failed)

	doc, ok := store.projects[project.ID.String()]
	require.True(t, ok)
	assert.Len(t, doc.Bids, 1)
	assert.Equal(t, bid.ID.String(), doc.Bids[0].ID)
	assert.Contains(t, store.bids, bid.ID.String())
}

func TestSyncIsIdempotentPerDocument(t *testing.T) {
	store := newFakeStore()
	svc, dbConn, node := newTestService(t, store)
	project, _ := seedProjectWithBid(t, dbConn, node)

	req := domain.SyncRequest{Action: domain.ActionProject, IDs: []string{project.ID.String()}}
	for i := 0; i < 3; i++ {
		result, err := svc.Sync(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Synced)
	}
	assert.Len(t, store.projects, 1)
}

func TestSyncAdvancesCheckpoint(t *testing.T) {
	store := newFakeStore()
	svc, dbConn, node := newTestService(t, store)
	seedProjectWithBid(t, dbConn, node)

	_, err := svc.Sync(context.Background(), domain.SyncRequest{Action: domain.ActionProject})
	require.NoError(t, err)

	var checkpoint domain.Checkpoint
	require.NoError(t, dbConn.First(&checkpoint, "entity = ?", "project").Error)
	assert.False(t, checkpoint.LastSyncedAt.IsZero())

	// A second incremental run has nothing left to push.
	result, err := svc.Sync(context.Background(), domain.SyncRequest{Action: domain.ActionProject})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Synced)
}

func TestSyncCountsFailuresWithoutAborting(t *testing.T) {
	store := newFakeStore()
	store.failBids = true
	svc, dbConn, node := newTestService(t, store)
	_, bid := seedProjectWithBid(t, dbConn, node)

	result, err := svc.Sync(context.Background(), domain.SyncRequest{
		Action: domain.ActionBid,
		IDs:    []string{bid.ID.String(), "not-an-id"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Synced)
	assert.Equal(t, 2, result.Failed)
}

func TestSyncUnknownAction(t *testing.T) {
	svc, _, _ := newTestService(t, newFakeStore())
	_, err := svc.Sync(context.Background(), domain.SyncRequest{Action: "purge"})
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}
