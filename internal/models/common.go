package models

// Enums
type PropertyType string

const (
	PropertyTypeRooms     PropertyType = "Rooms"
	PropertyTypeTinyhouse PropertyType = "Tinyhouse"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeVilla     PropertyType = "Villa"
	PropertyTypeTownhouse PropertyType = "Townhouse"
	PropertyTypeCottage   PropertyType = "Cottage"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeRooms, PropertyTypeTinyhouse, PropertyTypeApartment,
		PropertyTypeVilla, PropertyTypeTownhouse, PropertyTypeCottage:
		return true
	}
	return false
}

type Amenity string

const (
	AmenityWasherDryer      Amenity = "WasherDryer"
	AmenityAirConditioning  Amenity = "AirConditioning"
	AmenityDishwasher       Amenity = "Dishwasher"
	AmenityHighSpeedInt     Amenity = "HighSpeedInternet"
	AmenityHardwoodFloors   Amenity = "HardwoodFloors"
	AmenityWalkInClosets    Amenity = "WalkInClosets"
	AmenityMicrowave        Amenity = "Microwave"
	AmenityRefrigerator     Amenity = "Refrigerator"
	AmenityPool             Amenity = "Pool"
	AmenityGym              Amenity = "Gym"
	AmenityParking          Amenity = "Parking"
	AmenityPetsAllowed      Amenity = "PetsAllowed"
	AmenityWiFi             Amenity = "WiFi"
)

type Highlight string

const (
	HighlightHighSpeedInternetAccess Highlight = "HighSpeedInternetAccess"
	HighlightWasherDryer             Highlight = "WasherDryer"
	HighlightAirConditioning         Highlight = "AirConditioning"
	HighlightHeating                 Highlight = "Heating"
	HighlightSmokeFree               Highlight = "SmokeFree"
	HighlightCableReady              Highlight = "CableReady"
	HighlightSatelliteTV             Highlight = "SatelliteTV"
	HighlightDoubleVanities          Highlight = "DoubleVanities"
	HighlightTubShower               Highlight = "TubShower"
	HighlightIntercom                Highlight = "Intercom"
	HighlightSprinklerSystem         Highlight = "SprinklerSystem"
	HighlightRecentlyRenovated       Highlight = "RecentlyRenovated"
	HighlightCloseToTransit          Highlight = "CloseToTransit"
	HighlightGreatView               Highlight = "GreatView"
	HighlightQuietNeighborhood       Highlight = "QuietNeighborhood"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusDenied   ApplicationStatus = "Denied"
	ApplicationStatusApproved ApplicationStatus = "Approved"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusDenied, ApplicationStatusApproved:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this status.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusDenied
}
