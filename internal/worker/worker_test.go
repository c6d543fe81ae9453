package worker

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/notify"
	"github.com/shenikar/jack_navigator/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

type countingSiren struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSiren) Siren(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
}

func activeIncidents() []*models.Incident {
	return []*models.Incident{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusResolved},
		{ID: 3, Status: models.StatusPending},
		{ID: 4, Status: models.StatusInProgress},
	}
}

func TestStationRefresher_RefreshPending(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	incidents := mocks.NewMockIncidentService(ctrl)
	refresher := NewStationRefresher(incidents, 0, newTestLogger())
	ctx := context.Background()

	// Ожидания
	incidents.EXPECT().ListActive(ctx).Return(activeIncidents(), nil)
	incidents.EXPECT().RefreshStation(ctx, int64(1)).Return(true, nil)
	incidents.EXPECT().RefreshStation(ctx, int64(3)).Return(false, errors.New("nominatim down"))

	// Действие
	count := refresher.RefreshPending(ctx)

	// Проверки
	assert.Equal(t, 2, count)
}

func TestStationRefresher_RefreshPendingNothingToDo(t *testing.T) {
	ctrl := gomock.NewController(t)
	incidents := mocks.NewMockIncidentService(ctrl)
	refresher := NewStationRefresher(incidents, 0, newTestLogger())

	incidents.EXPECT().ListActive(gomock.Any()).Return([]*models.Incident{}, nil)

	assert.Equal(t, 0, refresher.RefreshPending(context.Background()))
}

func TestStationRefresher_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	incidents := mocks.NewMockIncidentService(ctrl)
	refresher := NewStationRefresher(incidents, 0, newTestLogger())

	incidents.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("redis down"))

	assert.Equal(t, 0, refresher.RefreshPending(context.Background()))
}

func TestStationRefresher_HandleEvent(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	incidents := mocks.NewMockIncidentService(ctrl)
	refresher := NewStationRefresher(incidents, 0, newTestLogger())
	ctx := context.Background()

	// Ожидания: только событие создания запускает поиск
	incidents.EXPECT().RefreshStation(ctx, int64(42)).Return(true, nil).Times(1)

	// Действие
	refresher.HandleEvent(ctx, notify.ChangeEvent{Kind: notify.KindCreated, IncidentID: 42})
	refresher.HandleEvent(ctx, notify.ChangeEvent{Kind: notify.KindStatus, IncidentID: 42})
	refresher.HandleEvent(ctx, notify.ChangeEvent{Kind: notify.KindDeleted, IncidentID: 42})
	refresher.Wait()
}

func TestStationRefresher_IgnoresEventsAfterStop(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	incidents := mocks.NewMockIncidentService(ctrl)
	refresher := NewStationRefresher(incidents, time.Hour, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())

	// Ожидания
	incidents.EXPECT().RefreshStation(gomock.Any(), gomock.Any()).Times(0)

	done := make(chan struct{})
	go func() {
		refresher.Start(ctx)
		close(done)
	}()
	cancel()
	<-done

	// Действие
	refresher.HandleEvent(context.Background(), notify.ChangeEvent{Kind: notify.KindCreated, IncidentID: 7})
	refresher.Wait()
}

func TestStationRefresher_EventsDuringStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	incidents := mocks.NewMockIncidentService(ctrl)
	refresher := NewStationRefresher(incidents, time.Hour, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())

	incidents.EXPECT().RefreshStation(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	done := make(chan struct{})
	go func() {
		refresher.Start(ctx)
		close(done)
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				refresher.HandleEvent(context.Background(), notify.ChangeEvent{Kind: notify.KindCreated, IncidentID: id})
			}
		}(int64(i))
	}
	cancel()
	<-done
	wg.Wait()
	refresher.Wait()
}

func TestSirenLoop_Tick(t *testing.T) {
	tests := []struct {
		name      string
		active    []*models.Incident
		listErr   error
		wantSiren bool
	}{
		{name: "есть Pending", active: activeIncidents(), wantSiren: true},
		{name: "нет Pending", active: []*models.Incident{{ID: 2, Status: models.StatusResolved}}},
		{name: "пусто", active: []*models.Incident{}},
		{name: "ошибка хранилища", listErr: errors.New("redis down")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			incidents := mocks.NewMockIncidentService(ctrl)
			siren := &countingSiren{}
			loop := NewSirenLoop(incidents, siren, 0, newTestLogger())

			incidents.EXPECT().ListActive(gomock.Any()).Return(tt.active, tt.listErr)

			fired := loop.Tick(context.Background())

			assert.Equal(t, tt.wantSiren, fired)
			if tt.wantSiren {
				assert.Equal(t, 1, siren.calls)
			} else {
				assert.Equal(t, 0, siren.calls)
			}
		})
	}
}
