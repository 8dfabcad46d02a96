package sheet

import "EnergyPalace/internal/entity"

type AddSheetRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	URL  string `json:"url" validate:"required,url"`
}

type SheetListResponse struct {
	Sheets []entity.Sheet `json:"sheets"`
}

type TestSheetResponse struct {
	Reachable bool   `json:"reachable"`
	Message   string `json:"message,omitempty"`
}
