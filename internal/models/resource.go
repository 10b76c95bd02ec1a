// Package models holds the shared entity shapes and the application error type.
package models

// ResourceStatus is the lifecycle state of a shared resource.
type ResourceStatus string

const (
	ResourceStatusAvailable ResourceStatus = "available"
	ResourceStatusRequested ResourceStatus = "requested"
	ResourceStatusBooked    ResourceStatus = "booked"
)

// Valid reports whether s is one of the known statuses.
func (s ResourceStatus) Valid() bool {
	switch s {
	case ResourceStatusAvailable, ResourceStatusRequested, ResourceStatusBooked:
		return true
	}
	return false
}

// ResourceType is the catalog category of a resource.
type ResourceType string

const (
	ResourceTypeTools         ResourceType = "Tools"
	ResourceTypeEmergency     ResourceType = "Emergency"
	ResourceTypeFood          ResourceType = "Food"
	ResourceTypeWater         ResourceType = "Water"
	ResourceTypeSpace         ResourceType = "Space"
	ResourceTypeMedical       ResourceType = "Medical"
	ResourceTypeTraffic       ResourceType = "Traffic"
	ResourceTypePower         ResourceType = "Power"
	ResourceTypeCommunication ResourceType = "Communication"
	ResourceTypeNavigation    ResourceType = "Navigation"
	ResourceTypeLighting      ResourceType = "Lighting"
	ResourceTypeCommunity     ResourceType = "Community"
	ResourceTypeSupport       ResourceType = "Support"
	ResourceTypeSkills        ResourceType = "Skills"
	ResourceTypeNetworks      ResourceType = "Networks"
)

// ResourceTypes lists the catalog in display order.
var ResourceTypes = []ResourceType{
	ResourceTypeTools,
	ResourceTypeEmergency,
	ResourceTypeFood,
	ResourceTypeWater,
	ResourceTypeSpace,
	ResourceTypeMedical,
	ResourceTypeTraffic,
	ResourceTypePower,
	ResourceTypeCommunication,
	ResourceTypeNavigation,
	ResourceTypeLighting,
	ResourceTypeCommunity,
	ResourceTypeSupport,
	ResourceTypeSkills,
	ResourceTypeNetworks,
}

// Valid reports whether t is in the catalog.
func (t ResourceType) Valid() bool {
	for _, known := range ResourceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Resource is a shareable item or space listed by a resident or a service.
// Optional fields are pointers (or a nil slice) so that "not set" stays
// distinct from a zero value.
type Resource struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        ResourceType   `json:"type"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Owner       string         `json:"owner"`
	Status      ResourceStatus `json:"status"`
	Image       *string        `json:"image,omitempty"`
	Capacity    *int           `json:"capacity,omitempty"`
	Rate        *float64       `json:"rate,omitempty"`
	Amenities   []string       `json:"amenities,omitempty"`
	CreatedAt   int64          `json:"created_at"`
}

// Clone returns a deep copy so callers never alias store state.
func (r Resource) Clone() Resource {
	out := r
	if r.Image != nil {
		v := *r.Image
		out.Image = &v
	}
	if r.Capacity != nil {
		v := *r.Capacity
		out.Capacity = &v
	}
	if r.Rate != nil {
		v := *r.Rate
		out.Rate = &v
	}
	if r.Amenities != nil {
		out.Amenities = append([]string(nil), r.Amenities...)
	}
	return out
}

// ResourceInput carries every Resource field except the ones assigned on add.
type ResourceInput struct {
	Title       string         `json:"title" validate:"required,max=120"`
	Type        ResourceType   `json:"type" validate:"resource_type"`
	Description string         `json:"description" validate:"max=2000"`
	Location    string         `json:"location" validate:"required,max=200"`
	Owner       string         `json:"owner" validate:"required,max=120"`
	Status      ResourceStatus `json:"status" validate:"omitempty,resource_status"`
	Image       *string        `json:"image,omitempty" validate:"omitempty,max=2048"`
	Capacity    *int           `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Rate        *float64       `json:"rate,omitempty" validate:"omitempty,gte=0"`
	Amenities   []string       `json:"amenities,omitempty" validate:"omitempty,max=20,dive,max=80"`
}

// ResourcePatch is a partial update. Only non-nil fields are applied; id and
// created_at are not patchable.
type ResourcePatch struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Type        *ResourceType   `json:"type,omitempty" validate:"omitempty,resource_type"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location    *string         `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Owner       *string         `json:"owner,omitempty" validate:"omitempty,min=1,max=120"`
	Status      *ResourceStatus `json:"status,omitempty" validate:"omitempty,resource_status"`
	Image       *string         `json:"image,omitempty" validate:"omitempty,max=2048"`
	Capacity    *int            `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Rate        *float64        `json:"rate,omitempty" validate:"omitempty,gte=0"`
	Amenities   *[]string       `json:"amenities,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p ResourcePatch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Description == nil &&
		p.Location == nil && p.Owner == nil && p.Status == nil &&
		p.Image == nil && p.Capacity == nil && p.Rate == nil && p.Amenities == nil
}

// Apply merges the set fields of p over r and returns the result.
func (p ResourcePatch) Apply(r Resource) Resource {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Owner != nil {
		r.Owner = *p.Owner
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Image != nil {
		v := *p.Image
		r.Image = &v
	}
	if p.Capacity != nil {
		v := *p.Capacity
		r.Capacity = &v
	}
	if p.Rate != nil {
		v := *p.Rate
		r.Rate = &v
	}
	if p.Amenities != nil {
		r.Amenities = append([]string(nil), (*p.Amenities)...)
	}
	return r
}

// BookingRequest holds the details a resident supplies when booking a space.
type BookingRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Attendees int    `json:"attendees" validate:"gte=0"`
	Purpose   string `json:"purpose" validate:"max=500"`
}
