package link

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/linkdeck/core/internal/models"
)

// newTestService opens an in-memory database scoped to the running test.
// A single connection serializes concurrent writers the way the production
// pool's row locks do.
func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.LinkModel{}, &models.ClickEventModel{}))
	return NewService(db)
}

func mustCreate(t *testing.T, svc *Service, ownerID, title string) *models.LinkModel {
	t.Helper()
	l, err := svc.Create(ownerID, &CreateLinkDTO{Title: title, URL: "https://example.com/" + title})
	require.NoError(t, err)
	return l
}

func strPtr(s string) *string { return &s }

func TestCreateAppendsToEnd(t *testing.T) {
	svc := newTestService(t)

	a := mustCreate(t, svc, "u1", "a")
	b := mustCreate(t, svc, "u1", "b")
	other := mustCreate(t, svc, "u2", "theirs")

	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
	// positions are per owner
	assert.Equal(t, 0, other.Order)

	assert.True(t, a.IsActive)
	assert.False(t, a.IsPinned)
	assert.Equal(t, "link", a.Icon)
}

func TestReorderPersists(t *testing.T) {
	svc := newTestService(t)

	a := mustCreate(t, svc, "u1", "a")
	b := mustCreate(t, svc, "u1", "b")
	c := mustCreate(t, svc, "u1", "c")

	require.NoError(t, svc.Reorder("u1", []string{c.ID, a.ID, b.ID}))

	got, err := svc.ListMine("u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Order, got[1].Order, got[2].Order})
}

func TestReorderRejectsBadPermutation(t *testing.T) {
	svc := newTestService(t)

	a := mustCreate(t, svc, "u1", "a")
	b := mustCreate(t, svc, "u1", "b")
	foreign := mustCreate(t, svc, "u2", "theirs")

	var verr *ValidationError
	// foreign id
	err := svc.Reorder("u1", []string{a.ID, foreign.ID})
	require.ErrorAs(t, err, &verr)
	// missing id
	err = svc.Reorder("u1", []string{a.ID})
	require.ErrorAs(t, err, &verr)
	// duplicate id
	err = svc.Reorder("u1", []string{a.ID, a.ID})
	require.ErrorAs(t, err, &verr)

	// stored order untouched after the failures
	got, err := svc.ListMine("u1")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, []string{got[0].ID, got[1].ID})
}

func TestRecordClickConcurrent(t *testing.T) {
	svc := newTestService(t)
	l := mustCreate(t, svc, "u1", "a")

	const visitors = 25
	var wg sync.WaitGroup
	errs := make(chan error, visitors)
	for i := 0; i < visitors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordClick(l.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := svc.GetByID("u1", l.ID)
	require.NoError(t, err)
	assert.EqualValues(t, visitors, got.Clicks)
}

func TestRecordClickUnknownLink(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.RecordClick("nope")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestUpdateEmptyIconResetsDefault(t *testing.T) {
	svc := newTestService(t)

	l, err := svc.Create("u1", &CreateLinkDTO{
		Title: "a", URL: "https://example.com/a", Icon: "github",
	})
	require.NoError(t, err)
	require.Equal(t, "github", l.Icon)

	updated, err := svc.Update("u1", l.ID, &UpdateLinkDTO{Icon: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "link", updated.Icon)

	stored, err := svc.GetByID("u1", l.ID)
	require.NoError(t, err)
	assert.Equal(t, "link", stored.Icon)
}

func TestToggleActiveAlwaysFlips(t *testing.T) {
	svc := newTestService(t)
	l := mustCreate(t, svc, "u1", "a")

	off, err := svc.ToggleActive("u1", l.ID)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	on, err := svc.ToggleActive("u1", l.ID)
	require.NoError(t, err)
	assert.True(t, on.IsActive)

	stored, err := svc.GetByID("u1", l.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestOwnerScoping(t *testing.T) {
	svc := newTestService(t)
	l := mustCreate(t, svc, "u1", "a")

	_, err := svc.GetByID("u2", l.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	err = svc.Delete("u2", l.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	// still there for the owner
	_, err = svc.GetByID("u1", l.ID)
	assert.NoError(t, err)
}
