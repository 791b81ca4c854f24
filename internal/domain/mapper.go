package domain

import (
	"encoding/json"
	"fmt"

	"company-portal/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task owned by ownerID.
func (m *TaskMapper) ToDatabase(domainTask Task, ownerID string) sqlite.Task {
	domainTask = domainTask.Clone()
	return sqlite.Task{
		ID:          domainTask.ID,
		OwnerID:     ownerID,
		Title:       domainTask.Title,
		Description: domainTask.Description,
		DueDate:     domainTask.DueDate,
		Completed:   domainTask.Completed,
		Priority:    string(domainTask.Priority),
		Category:    domainTask.Category,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	task := Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Completed:   dbTask.Completed,
		Priority:    Priority(dbTask.Priority),
		Category:    dbTask.Category,
	}
	if dbTask.DueDate != nil {
		due := DateOf(*dbTask.DueDate)
		task.DueDate = &due
	}
	return task
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, 0, len(dbTasks))
	for _, task := range dbTasks {
		if task == nil {
			continue
		}
		domainTasks = append(domainTasks, m.FromDatabase(*task))
	}
	return domainTasks
}

// CompanyProfileMapper handles conversion between domain and database profiles.
// Social links are stored as a JSON array.
type CompanyProfileMapper struct{}

// NewCompanyProfileMapper creates a new CompanyProfileMapper instance.
func NewCompanyProfileMapper() *CompanyProfileMapper {
	return &CompanyProfileMapper{}
}

// ToDatabase converts a domain CompanyProfile to a database row owned by ownerID.
func (m *CompanyProfileMapper) ToDatabase(profile CompanyProfile, ownerID string) (sqlite.CompanyProfile, error) {
	profile = profile.Clone()
	links := profile.SocialLinks
	if links == nil {
		links = []SocialLink{}
	}
	encoded, err := json.Marshal(links)
	if err != nil {
		return sqlite.CompanyProfile{}, fmt.Errorf("encode social links: %w", err)
	}

	return sqlite.CompanyProfile{
		OwnerID:     ownerID,
		CompanyName: profile.CompanyName,
		Address:     profile.Address,
		City:        profile.City,
		State:       profile.State,
		Country:     profile.Country,
		PostalCode:  profile.PostalCode,
		Website:     profile.Website,
		Industry:    profile.Industry,
		FoundedDate: profile.FoundedDate,
		Description: profile.Description,
		LogoURL:     profile.LogoURL,
		BannerURL:   profile.BannerURL,
		SocialLinks: string(encoded),
	}, nil
}

// FromDatabase converts a database row to a domain CompanyProfile.
func (m *CompanyProfileMapper) FromDatabase(row sqlite.CompanyProfile) (CompanyProfile, error) {
	profile := CompanyProfile{
		CompanyName: row.CompanyName,
		Address:     row.Address,
		City:        row.City,
		State:       row.State,
		Country:     row.Country,
		PostalCode:  row.PostalCode,
		Website:     row.Website,
		Industry:    row.Industry,
		Description: row.Description,
		LogoURL:     row.LogoURL,
		BannerURL:   row.BannerURL,
		SocialLinks: []SocialLink{},
	}
	if row.FoundedDate != nil {
		founded := DateOf(*row.FoundedDate)
		profile.FoundedDate = &founded
	}
	if row.SocialLinks != "" {
		if err := json.Unmarshal([]byte(row.SocialLinks), &profile.SocialLinks); err != nil {
			return CompanyProfile{}, fmt.Errorf("decode social links: %w", err)
		}
	}
	return profile, nil
}

// UserMapper handles conversion between domain and database users.
// The password hash never leaves the database model.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// FromDatabase converts a database User to a domain User.
func (m *UserMapper) FromDatabase(row sqlite.User) User {
	return User{
		ID:       row.ID,
		FullName: row.FullName,
		Email:    row.Email,
		MobileNo: row.MobileNo,
		Gender:   row.Gender,
	}
}

// ApplyToDatabase copies the editable fields of user onto row.
func (m *UserMapper) ApplyToDatabase(user User, row *sqlite.User) {
	row.FullName = user.FullName
	row.Email = user.Email
	row.MobileNo = user.MobileNo
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task           *TaskMapper
	CompanyProfile *CompanyProfileMapper
	User           *UserMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:           NewTaskMapper(),
		CompanyProfile: NewCompanyProfileMapper(),
		User:           NewUserMapper(),
	}
}
