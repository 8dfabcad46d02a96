package sheet

import "EnergyPalace/pkg/response"

var (
	ErrSheetNotFound      = response.NewError(404, "sheet not found")
	ErrSheetProtected     = response.NewError(403, "the main sheet cannot be removed")
	ErrSheetUnreachable   = response.NewError(502, "sheet backend is unreachable")
	ErrDuplicateSheetName = response.NewError(409, "a sheet with that name already exists")
)
