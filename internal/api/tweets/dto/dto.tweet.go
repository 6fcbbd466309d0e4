package tweetsdto

type TweetInput struct {
	Content string `json:"content" validate:"required,notblank,max=280,no_xss"`
}
