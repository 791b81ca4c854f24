package sqlite

import "time"

// User is a row of the users table
type User struct {
	ID           string
	FullName     string
	Email        string
	MobileNo     string
	Gender       string
	PasswordHash string
	CreatedAt    time.Time
}

// CompanyProfile is a row of the company_profiles table.
// SocialLinks holds the JSON-encoded link list.
type CompanyProfile struct {
	OwnerID     string
	CompanyName string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Website     string
	Industry    string
	FoundedDate *time.Time // NULL when unknown
	Description string
	LogoURL     string
	BannerURL   string
	SocialLinks string
	UpdatedAt   time.Time
}

// Task is a row of the tasks table. Position keeps insertion order.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
	Priority    string
	Category    string
	Position    int64
}
