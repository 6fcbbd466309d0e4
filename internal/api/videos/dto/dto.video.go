package videosdto

// SearchQuery is the query string of GET /videos.
type SearchQuery struct {
	Query       string `query:"query"`
	SortBy      string `query:"sortBy"`
	SortType    string `query:"sortType"`
	Username    string `query:"username"`
	IsPublished string `query:"isPublished"`
}

// PublishInput carries the form fields of a new video; the files travel separately.
type PublishInput struct {
	Title       string `form:"title" validate:"required,notblank,max=200,no_xss"`
	Description string `form:"description" validate:"required,notblank,max=5000,no_xss"`
}

// UpdateInput replaces title and description; a new thumbnail is optional.
type UpdateInput struct {
	Title       string `form:"title" validate:"required,notblank,max=200,no_xss"`
	Description string `form:"description" validate:"required,notblank,max=5000,no_xss"`
}
