package repository

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var actionTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestRedisRepository(t *testing.T) (*RedisIncidentRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewRedisIncidentRepository(client, "sos", logger).(*RedisIncidentRepository), mr
}

func saveIncident(t *testing.T, repo *RedisIncidentRepository, lat, lng float64) *models.Incident {
	t.Helper()
	ctx := context.Background()
	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	incident := &models.Incident{
		ID:        id,
		Location:  models.Coordinates{Lat: lat, Lng: lng},
		Timestamp: actionTime,
		Status:    models.StatusPending,
	}
	require.NoError(t, repo.Save(ctx, incident))
	return incident
}

func TestRedisKeys(t *testing.T) {
	repo, _ := newTestRedisRepository(t)

	assert.Equal(t, "sos:last_id", repo.counterKey)
	assert.Equal(t, "sos:active", repo.activeKey)
	assert.Equal(t, "sos:history", repo.historyKey)
	assert.Equal(t, "sos:incident:42", repo.incidentKey(42))
}

func TestRedisSaveAndGet(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()

	// Подготовка
	saved := saveIncident(t, repo, 13.0827, 80.2707)

	// Действие
	got, err := repo.GetByID(ctx, saved.ID)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.Location, got.Location)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.True(t, mr.Exists("sos:incident:1"))

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRedisNextID_MonotonicAfterDeletes(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	first := saveIncident(t, repo, 1, 1)
	second := saveIncident(t, repo, 2, 2)
	_, err := repo.Delete(ctx, second.ID, actionTime)
	require.NoError(t, err)
	_, err = repo.Delete(ctx, first.ID, actionTime)
	require.NoError(t, err)

	next, err := repo.NextID(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), next)
}

func TestRedisUpdateStatus_AppendsHistoryAtomically(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()
	incident := saveIncident(t, repo, 13, 80)

	updated, err := repo.UpdateStatus(ctx, incident.ID, models.StatusInProgress, actionTime)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Status set to In Progress", history[0].Action)
	assert.Equal(t, models.StatusInProgress, history[0].Incident.Status)
	assert.True(t, actionTime.Equal(history[0].ActionTime))
}

func TestRedisUpdateStatus_AfterDeleteIsNoOp(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()
	incident := saveIncident(t, repo, 13, 80)
	_, err := repo.Delete(ctx, incident.ID, actionTime)
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, incident.ID, models.StatusResolved, actionTime)

	require.NoError(t, err)
	assert.Nil(t, updated)
	got, err := repo.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "инцидент не должен воскреснуть")

	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionDeleted, history[0].Action)
}

func TestRedisUpdateStation_DiscardedAfterResolved(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()
	incident := saveIncident(t, repo, 13, 80)
	_, err := repo.UpdateStatus(ctx, incident.ID, models.StatusResolved, actionTime)
	require.NoError(t, err)

	changed, err := repo.UpdateStation(ctx, incident.ID, "Adyar Police Station")

	require.NoError(t, err)
	assert.False(t, changed)
	got, err := repo.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Nil(t, got.NearestStation)
}

func TestRedisUpdateStation_OnlyWhenChanged(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()
	incident := saveIncident(t, repo, 13, 80)

	changed, err := repo.UpdateStation(ctx, incident.ID, "Adyar Police Station")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.UpdateStation(ctx, incident.ID, "Adyar Police Station")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = repo.UpdateStation(ctx, 404, "Adyar Police Station")
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, "Adyar Police Station", got.StationName())

	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history, "смена участка не пишется в журнал")
}

func TestRedisDelete_ReturnsSnapshotAndRecordsHistory(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()
	incident := saveIncident(t, repo, 13, 80)
	_, err := repo.UpdateStation(ctx, incident.ID, "T Nagar Police Station")
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, incident.ID, actionTime)

	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "T Nagar Police Station", removed.StationName())
	assert.False(t, mr.Exists("sos:incident:1"))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionDeleted, history[0].Action)
	assert.Equal(t, "T Nagar Police Station", history[0].Incident.StationName())

	again, err := repo.Delete(ctx, incident.ID, actionTime)
	require.NoError(t, err)
	assert.Nil(t, again)
	history, err = repo.ListHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRedisListActive_SortedAndSkipsCorrupt(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()

	// Подготовка
	for i := 0; i < 11; i++ {
		saveIncident(t, repo, float64(i), float64(i))
	}
	require.NoError(t, mr.Set("sos:incident:5", "{not json"))
	_, err := mr.ZAdd("sos:active", 40, "40")
	require.NoError(t, err)

	// Действие
	active, err := repo.ListActive(ctx)

	// Проверки
	require.NoError(t, err)
	require.Len(t, active, 10)
	for i := 1; i < len(active); i++ {
		assert.Less(t, active[i-1].ID, active[i].ID)
	}
	assert.Equal(t, int64(11), active[len(active)-1].ID)

	got, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisListHistory_KeepsOrderAndSkipsCorrupt(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()
	incident := saveIncident(t, repo, 13, 80)

	_, err := repo.UpdateStatus(ctx, incident.ID, models.StatusResolved, actionTime)
	require.NoError(t, err)
	_, err = mr.RPush("sos:history", "garbage")
	require.NoError(t, err)
	_, err = repo.Delete(ctx, incident.ID, actionTime.Add(time.Minute))
	require.NoError(t, err)

	history, err := repo.ListHistory(ctx)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Status set to Resolved", history[0].Action)
	assert.Equal(t, models.ActionDeleted, history[1].Action)
}

func TestRedisEmptyStore(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRedisConcurrentWritersOnDistinctIncidents(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	const writers = 16
	const rounds = 10
	ids := make([]int64, writers)
	for i := range ids {
		ids[i] = saveIncident(t, repo, float64(i), float64(i)).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, writers*rounds*2)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				status := models.StatusInProgress
				if r%2 == 1 {
					status = models.StatusPending
				}
				if _, err := repo.UpdateStatus(ctx, id, status, actionTime); err != nil {
					errs <- err
				}
				if _, err := repo.UpdateStation(ctx, id, "Station "+member(int64(r))); err != nil {
					errs <- err
				}
			}
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, writers*rounds)
}

func TestRedisConcurrentWritersOnSameIncident(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	incident := saveIncident(t, repo, 13, 80)

	const writers = 12
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.UpdateStatus(ctx, incident.ID, models.StatusInProgress, actionTime); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, writers, "каждая смена статуса попадает в журнал ровно один раз")
}
