package commentsdto

type CommentInput struct {
	Content string `json:"content" validate:"required,notblank,max=2000,no_xss"`
}
