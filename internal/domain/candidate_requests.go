package domain

type CreateCandidateRequest struct {
	Name         string            `json:"name" validate:"required,min=1,max=200"`
	Lat          float64           `json:"lat" validate:"lat"`
	Lng          float64           `json:"lng" validate:"lng"`
	Category     Category          `json:"category" validate:"required,category"`
	Availability Availability      `json:"availability" validate:"omitempty,oneof=available busy unknown"`
	Rating       float64           `json:"rating" validate:"min=0,max=5"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

type UpdateCandidateRequest struct {
	Name         *string            `json:"name" validate:"omitempty,min=1,max=200"`
	Lat          *float64           `json:"lat" validate:"omitempty,lat"`
	Lng          *float64           `json:"lng" validate:"omitempty,lng"`
	Availability *Availability      `json:"availability" validate:"omitempty,oneof=available busy unknown"`
	Rating       *float64           `json:"rating" validate:"omitempty,min=0,max=5"`
	Attributes   *map[string]string `json:"attributes"`
}

type ListCandidatesRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

type ListCandidatesResponse struct {
	Candidates []Candidate `json:"candidates"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
}
