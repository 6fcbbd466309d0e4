package usersdto

// UserCreateInput creates a user from the admin CLI. Session issuance is handled elsewhere.
type UserCreateInput struct {
	Username  string `json:"username" validate:"required,notblank,min=3,max=30,alphanum"`
	Email     string `json:"email" validate:"omitempty,email"`
	FullName  string `json:"fullName" validate:"required,notblank,max=80,no_xss"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type ChannelParams struct {
	Username string `uri:"username" validate:"required,notblank"`
}
