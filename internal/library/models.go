// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Category is the list a book lives on. It is also the state of the purchase
// lifecycle: wishlist -> pre-order -> library.
type Category string

const (
	CategoryLibrary  Category = "library"   // Owned books
	CategoryPreOrder Category = "pre-order" // Bought, not yet released or arrived
	CategoryWishlist Category = "wishlist"  // Wanted, not bought
)

// Categories lists the categories in display order.
var Categories = []Category{CategoryLibrary, CategoryPreOrder, CategoryWishlist}

// legacyCategories maps the category names written by the first version of
// the app to their canonical names.
var legacyCategories = map[string]Category{
	"bibliothek":      CategoryLibrary,
	"vorbestellungen": CategoryPreOrder,
	"wunschliste":     CategoryWishlist,
}

// ParseCategory accepts canonical and legacy category names, case-insensitively.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch Category(name) {
	case CategoryLibrary, CategoryPreOrder, CategoryWishlist:
		return Category(name), nil
	}
	if c, ok := legacyCategories[name]; ok {
		return c, nil
	}
	if name == "preorder" {
		return CategoryPreOrder, nil
	}
	return "", fmt.Errorf("unknown category %q (choose library, pre-order, wishlist)", s)
}

// Book is a single catalogued book. Field names in JSON match the storage format.
type Book struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Author      string   `json:"author" yaml:"author"`
	Price       float64  `json:"price" yaml:"price"`
	Genre       []string `json:"genre" yaml:"genre"`
	ImageURL    string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	ReleaseDate *Date    `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	ShopLink    string   `json:"shopLink,omitempty" yaml:"shopLink,omitempty"` // wishlist only
	IsRead      bool     `json:"isRead" yaml:"isRead"`                         // library only
	IsBought    bool     `json:"isBought" yaml:"isBought"`
	IsArrived   *bool    `json:"isArrived,omitempty" yaml:"isArrived,omitempty"`
	Rating      float64  `json:"rating" yaml:"rating"` // 0-5 in half steps, only when read
	Notes       string   `json:"notes" yaml:"notes"`
	Category    Category `json:"category" yaml:"category"`
}

// HasGenre reports whether label is one of the book's genres.
func (b Book) HasGenre(label string) bool {
	return slices.Contains(b.Genre, label)
}

// ReleasedAfter reports whether the book has a release date strictly after t.
func (b Book) ReleasedAfter(t time.Time) bool {
	return b.ReleaseDate != nil && b.ReleaseDate.After(t)
}

func (b Book) clone() Book {
	out := b
	out.Genre = slices.Clone(b.Genre)
	if b.ReleaseDate != nil {
		d := *b.ReleaseDate
		out.ReleaseDate = &d
	}
	if b.IsArrived != nil {
		v := *b.IsArrived
		out.IsArrived = &v
	}
	return out
}

// Draft holds the user-supplied fields of a new book. The id and category are
// assigned by Add.
type Draft struct {
	Name        string   `json:"name" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Genre       []string `json:"genre" validate:"min=1,dive,required"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
	ReleaseDate *Date    `json:"releaseDate"`
	ShopLink    string   `json:"shopLink" validate:"omitempty,url"`
	IsRead      bool     `json:"isRead"`
	IsBought    bool     `json:"isBought"`
	IsArrived   *bool    `json:"isArrived"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5,halfstep"`
	Notes       string   `json:"notes"`
}

func (d Draft) book(id string, category Category) Book {
	b := Book{
		ID:          id,
		Name:        d.Name,
		Author:      d.Author,
		Price:       d.Price,
		Genre:       slices.Clone(d.Genre),
		ImageURL:    d.ImageURL,
		ReleaseDate: d.ReleaseDate,
		ShopLink:    d.ShopLink,
		IsRead:      d.IsRead,
		IsBought:    d.IsBought,
		IsArrived:   d.IsArrived,
		Rating:      d.Rating,
		Notes:       d.Notes,
		Category:    category,
	}
	if b.Genre == nil {
		b.Genre = []string{}
	}
	return b.clone()
}

// Patch describes an edit. Nil fields are left unchanged. There is no category
// field: categories only change through MarkPurchased and MarkArrived.
type Patch struct {
	Name             *string  `json:"name" validate:"omitnil,min=1"`
	Author           *string  `json:"author" validate:"omitnil,min=1"`
	Price            *float64 `json:"price" validate:"omitnil,gte=0"`
	Genre            []string `json:"genre" validate:"omitempty,dive,required"`
	ImageURL         *string  `json:"imageUrl"`
	ReleaseDate      *Date    `json:"releaseDate"`
	ClearReleaseDate bool     `json:"-"`
	ShopLink         *string  `json:"shopLink"`
	IsRead           *bool    `json:"isRead"`
	Rating           *float64 `json:"rating" validate:"omitnil,gte=0,lte=5,halfstep"`
	Notes            *string  `json:"notes"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Author == nil && p.Price == nil && p.Genre == nil &&
		p.ImageURL == nil && p.ReleaseDate == nil && !p.ClearReleaseDate &&
		p.ShopLink == nil && p.IsRead == nil && p.Rating == nil && p.Notes == nil
}

func (p Patch) apply(b Book) Book {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Genre != nil {
		b.Genre = slices.Clone(p.Genre)
	}
	if p.ImageURL != nil {
		b.ImageURL = *p.ImageURL
	}
	if p.ClearReleaseDate {
		b.ReleaseDate = nil
	}
	if p.ReleaseDate != nil {
		d := *p.ReleaseDate
		b.ReleaseDate = &d
	}
	if p.ShopLink != nil {
		b.ShopLink = *p.ShopLink
	}
	if p.IsRead != nil {
		b.IsRead = *p.IsRead
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	return b
}

const dateLayout = "2006-01-02"

// Date is a calendar day, held as midnight UTC and stored as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t.UTC()}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
