// Package models holds the types shared by every domain: pagination results,
// embedded media references and the attachment target union.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PaginateResult is one page of a faceted aggregation.
type PaginateResult[T any] struct {
	Items      []T   `json:"items" bson:"items"`
	ItemCount  int64 `json:"itemCount" bson:"itemCount"`
	TotalCount int64 `json:"totalCount" bson:"totalCount"`
	Page       int64 `json:"page" bson:"page"`
	Limit      int64 `json:"limit" bson:"limit"`
	TotalPage  int64 `json:"totalPage" bson:"totalPage"`
}

// NewPaginateResult fills the derived counters. items is never nil in the result.
func NewPaginateResult[T any](items []T, total, page, limit int64) *PaginateResult[T] {
	if items == nil {
		items = []T{}
	}
	var totalPage int64
	if limit > 0 {
		totalPage = (total + limit - 1) / limit
	}
	return &PaginateResult[T]{
		Items:      items,
		ItemCount:  int64(len(items)),
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPage:  totalPage,
	}
}

// Media is an uploaded object reference.
type Media struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId,omitempty" bson:"publicId"`
}

// OwnerSummary is the user projection embedded into read models.
type OwnerSummary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	FullName string             `json:"fullName" bson:"fullName"`
	Avatar   *Media             `json:"avatar,omitempty" bson:"avatar,omitempty"`
}
