package v1

import "github.com/shenikar/jack_navigator/internal/models"

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:             model.ID,
		Latitude:       model.Location.Lat,
		Longitude:      model.Location.Lng,
		Timestamp:      model.Timestamp,
		Status:         string(model.Status),
		NearestStation: model.NearestStation,
		MapsURL:        model.Location.MapsURL(),
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// HistoryToResponses преобразует журнал в слайс DTO
func HistoryToResponses(history []*models.HistoryEntry) []*HistoryEntryResponse {
	responses := make([]*HistoryEntryResponse, len(history))
	for i, entry := range history {
		responses[i] = &HistoryEntryResponse{
			Incident:   *ModelToIncidentResponse(&entry.Incident),
			Action:     entry.Action,
			ActionTime: entry.ActionTime,
		}
	}
	return responses
}

// StatsToResponse раскладывает счетчики по всем статусам, включая нулевые
func StatsToResponse(counts models.StatusCounts) StatsResponse {
	resp := StatsResponse{Counts: make(map[string]int, len(models.AllStatuses))}
	for _, status := range models.AllStatuses {
		resp.Counts[string(status)] = counts[status]
		resp.Total += counts[status]
	}
	return resp
}

func pointToCoordinates(p PointDTO) models.Coordinates {
	return models.Coordinates{Lat: *p.Latitude, Lng: *p.Longitude}
}

func queryToCoordinates(q LocationQuery) models.Coordinates {
	return models.Coordinates{Lat: *q.Latitude, Lng: *q.Longitude}
}
