package models

import "time"

// User represents a registered seller account
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the authenticated identity carried through a request
type Session struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListingImage is one uploaded photo referenced by a listing.
// UID and Name together form the blob path images/{uid}/{name}.
type ListingImage struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Listing represents one car for sale. Name is stored upper-cased.
// Year, KM and price are opaque strings, echoed exactly as entered.
type Listing struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Model       string         `json:"model"`
	Whatsapp    string         `json:"whatsapp"`
	City        string         `json:"city"`
	Year        string         `json:"year"`
	KM          string         `json:"km"`
	Price       string         `json:"price"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created"`
	Owner       string         `json:"owner"`
	OwnerUID    string         `json:"uid"`
	Images      []ListingImage `json:"images"`
}
