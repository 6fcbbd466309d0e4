package playlistsdto

type PlaylistCreateInput struct {
	Name        string `json:"name" validate:"required,notblank,max=150,no_xss"`
	Description string `json:"description" validate:"max=2000,no_xss"`
}

// PlaylistUpdateInput changes only the fields that are present.
type PlaylistUpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=150,no_xss"`
	Description *string `json:"description" validate:"omitempty,max=2000,no_xss"`
}
