package models

// SignupRequest is the input of the signup use case.
type SignupRequest struct {
	Email      string
	Username   string
	Password   string
	Newsletter bool

	// Avatar holds the raw bytes of the optional avatar upload.
	Avatar []byte
}

// LoginRequest is the input of the login use case.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PublishRequest is the input of the publish use case. Price is kept as the
// raw submitted text and parsed by the service.
type PublishRequest struct {
	Title       string
	Description string
	Price       string
	Brand       string
	Size        string
	Condition   string
	Color       string
	City        string

	Picture []byte
}

// detailValues maps the submitted facet fields onto detail keys.
func detailValues(brand, size, condition, color, city string) map[string]string {
	return map[string]string{
		DetailBrand:     brand,
		DetailSize:      size,
		DetailCondition: condition,
		DetailColor:     color,
		DetailLocation:  city,
	}
}

// DetailValues returns the submitted facets keyed by detail key.
func (r PublishRequest) DetailValues() map[string]string {
	return detailValues(r.Brand, r.Size, r.Condition, r.Color, r.City)
}

// UpdateRequest is the input of the update use case. Empty fields are left
// untouched.
type UpdateRequest struct {
	Title       string
	Description string
	Price       string
	Brand       string
	Size        string
	Condition   string
	Color       string
	City        string

	Picture []byte
}

// DetailValues returns the submitted facets keyed by detail key.
func (r UpdateRequest) DetailValues() map[string]string {
	return detailValues(r.Brand, r.Size, r.Condition, r.Color, r.City)
}

// OfferUpdate is a partial update handed to the listing storage. Nil fields
// are not written.
type OfferUpdate struct {
	ID          string
	Name        *string
	Description *string
	Price       *float64
	Image       *Asset

	// Details, when non-nil, replaces the stored details sequence in full.
	// The storage adapter never diffs nested values, so a caller that changed
	// any detail must set this field.
	Details Details
}

// IsEmpty reports whether the update carries no changes.
func (u OfferUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Image == nil && u.Details == nil
}
