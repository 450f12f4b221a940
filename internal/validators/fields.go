package validators

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"

	FieldTitle   = "title"
	FieldPrice   = "price"
	FieldBrand   = "brand"
	FieldPicture = "picture"

	// FieldOptionalPrice accepts an empty price and checks it otherwise.
	FieldOptionalPrice = "optional price"
)
