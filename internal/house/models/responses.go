package models

// HouseEntry is the wire shape of one house in the membership listing. The
// field names are part of the client contract; clients cache the whole list
// and derive their house scope from it.
type HouseEntry struct {
	HouseID  int64  `json:"house_id"`
	Name     string `json:"house_name"`
	Address  string `json:"house_address"`
	IsOwner  bool   `json:"is_owner"`
	Role     string `json:"role_in_house,omitempty"`
	IsActive bool   `json:"is_active"`
}

// ListResponse is the wire shape of the house-membership endpoint.
type ListResponse struct {
	Houses []HouseEntry `json:"houses"`
}

// EntryOf converts a domain access row into its wire shape.
func EntryOf(a Access) HouseEntry {
	return HouseEntry{
		HouseID:  int64(a.House.ID),
		Name:     a.House.Name,
		Address:  a.House.Address,
		IsOwner:  a.IsOwner,
		Role:     a.Role,
		IsActive: a.House.IsActive,
	}
}
