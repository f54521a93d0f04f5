package entity

// ProductDraft is the fully assembled output of the product wizards,
// handed to the catalog service at commit time. Image is the raw photo
// downloaded from the chat transport; an empty Image on update keeps the
// stored one.
type ProductDraft struct {
	Name        string `validate:"required"`
	Price       int64  `validate:"required,gt=0"`
	Description string
	Image       []byte
	ImageMime   string
	CategoryID  string `validate:"required"`
	Stock       int    `validate:"gte=0"`
}
