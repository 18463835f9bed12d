package dto

type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type WarehouseResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
	// ZoneCount and aggregate capacity figures back the warehouse overview page.
	ZoneCount     int `json:"zoneCount"`
	TotalCapacity int `json:"totalCapacity"`
	TotalUtilized int `json:"totalUtilized"`
}

type CreateZoneRequest struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity" validate:"min=0"`
}

type UpdateZoneRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
}

type ZoneResponse struct {
	ID          uint   `json:"id"`
	WarehouseID uint   `json:"warehouseId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	Utilized    int    `json:"utilized"`
	// Presentation contract: percentage is rounded, tier is one of
	// optimal | low | critical.
	UtilizationPct int    `json:"utilizationPct"`
	Tier           string `json:"tier"`
}
