package models

// ReferencesModel carries the routes and stops an entry mentions by id.
type ReferencesModel struct {
	Routes []Route `json:"routes"`
	Stops  []Stop  `json:"stops"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Routes: []Route{},
		Stops:  []Stop{},
	}
}

// AddStop appends s unless a stop with the same id is already present.
func (r *ReferencesModel) AddStop(s Stop) {
	for _, existing := range r.Stops {
		if existing.ID == s.ID {
			return
		}
	}
	r.Stops = append(r.Stops, s)
}

// AddRoute appends route unless a route with the same id is already present.
func (r *ReferencesModel) AddRoute(route Route) {
	for _, existing := range r.Routes {
		if existing.ID == route.ID {
			return
		}
	}
	r.Routes = append(r.Routes, route)
}
